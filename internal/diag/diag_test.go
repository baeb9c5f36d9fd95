package diag

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, level LogLevel) (*Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diag.log")
	l, err := NewLogger(Config{
		Enabled:   true,
		Level:     level,
		FilePath:  path,
		MaxSizeMB: 1,
		MaxFiles:  2,
	})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l, path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestLog_FormatsActionWindowAndSortedDetails(t *testing.T) {
	l, path := newTestLogger(t, LevelDebug)

	l.Log(ActionMove, "t1", map[string]interface{}{"y": 5, "x": 10})

	out := readLog(t, path)
	if !strings.Contains(out, "[MOVE] window=t1 x=10 y=5") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestLog_LevelFiltersGestures(t *testing.T) {
	l, path := newTestLogger(t, LevelInfo)

	l.Log(ActionGesture, "t1", nil) // debug level, filtered
	l.Log(ActionOpen, "t1", nil)

	out := readLog(t, path)
	if strings.Contains(out, "GESTURE") {
		t.Fatalf("gesture entry must be filtered at info level: %q", out)
	}
	if !strings.Contains(out, "[OPEN]") {
		t.Fatalf("open entry missing: %q", out)
	}
}

func TestInvalid_RecordsOpAndReason(t *testing.T) {
	l, path := newTestLogger(t, LevelDebug)

	l.Invalid(ActionFocus, "ghost", "not found")

	out := readLog(t, path)
	if !strings.Contains(out, "[INVALID-OP]") ||
		!strings.Contains(out, `op="FOCUS"`) ||
		!strings.Contains(out, `reason="not found"`) {
		t.Fatalf("unexpected invalid entry: %q", out)
	}
}

func TestNilAndDisabledLoggersAreSafe(t *testing.T) {
	var l *Logger
	l.Log(ActionOpen, "x", nil)
	if err := l.Close(); err != nil {
		t.Fatalf("nil close: %v", err)
	}

	disabled, err := NewLogger(Config{Enabled: false})
	if err != nil {
		t.Fatalf("disabled logger: %v", err)
	}
	disabled.Log(ActionOpen, "x", nil)
	if err := disabled.Close(); err != nil {
		t.Fatalf("disabled close: %v", err)
	}
}
