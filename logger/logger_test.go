package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf)
	l.Infof("built %d codes", 5)
	l.Errorf("reading %s failed", "x.txt")

	out := buf.String()
	if !strings.Contains(out, "[INFO] built 5 codes") {
		t.Errorf("missing info line in %q", out)
	}
	if !strings.Contains(out, "[ERROR] reading x.txt failed") {
		t.Errorf("missing error line in %q", out)
	}
}
