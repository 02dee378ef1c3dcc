// Package key prints the legend for the symbols used in task lists.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mytodo/pkg/glyph"
)

type section struct {
	name   string
	glyphs []glyph.Glyph
}

var sections = []section{
	{"Completion", []glyph.Glyph{glyph.Open, glyph.Done}},
	{"Deletion", []glyph.Glyph{glyph.Unmarked, glyph.Marked}},
	{"Archive", []glyph.Glyph{glyph.Archived}},
}

type Key struct {
	Out io.Writer
}

func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	h := color.New(color.Bold, color.Underline)
	for _, s := range sections {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow("Key", "Symbol", "Meaning")
		for _, g := range s.glyphs {
			tbl.AddRow(g.Key, g.Symbol, g.Meaning)
		}
		_, _ = h.Fprintln(out, s.name)
		_, _ = fmt.Fprintln(out, tbl)
		_, _ = fmt.Fprintln(out)
	}
	return nil
}
