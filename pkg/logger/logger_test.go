package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Format: "json", Output: &buf})
	log.WithField("op", "write").Info("saved")

	var line map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	for _, k := range []string{"ts", "level", "message", "op"} {
		if _, ok := line[k]; !ok {
			t.Fatalf("missing %q in %v", k, line)
		}
	}
}

func TestLevelFallback(t *testing.T) {
	log := New(Options{Level: "loud"})
	if log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("level = %v", log.GetLevel())
	}
	if New(Options{Level: "debug"}).GetLevel() != logrus.DebugLevel {
		t.Fatalf("debug not honoured")
	}
}
