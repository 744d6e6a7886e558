package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestConsole_PlainOutputWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf)
	c.Info("loading source")
	c.Warning("font missing")
	c.Error("boom")
	c.Success("done")
	c.Header("Assets")
	c.Asset("res/icon.png", 48, 48, "builtin")

	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Errorf("escape codes written to a non-terminal: %q", out)
	}
	for _, want := range []string{
		"[INFO] loading source\n",
		"[WARNING] font missing\n",
		"[ERROR] boom\n",
		"[SUCCESS] done\n",
		"=== Assets ===",
		"48x48   res/icon.png (builtin)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
