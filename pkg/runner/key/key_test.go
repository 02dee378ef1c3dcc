package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tableflip.dev/mytodo/pkg/glyph"
)

func TestKeyListsEveryGlyph(t *testing.T) {
	var buf bytes.Buffer
	if err := (&Key{Out: &buf}).Do(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, g := range glyph.DefaultGlyphs() {
		if !strings.Contains(buf.String(), g.Symbol) || !strings.Contains(buf.String(), g.Meaning) {
			t.Errorf("legend is missing %q (%s):\n%s", g.Symbol, g.Meaning, buf.String())
		}
	}
}
