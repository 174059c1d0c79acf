package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileSinkAppendsTrailLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	sink := NewFileSink(path)
	sink.now = func() time.Time {
		ts, _ := time.Parse("2006-01-02 15:04:05", "2024-03-01 10:15:00")
		return ts.UTC()
	}

	sink.Append("admin", "CREATE_BOOKING", "BK7", "CU3 -> V2")
	sink.Append("staff", "CANCEL_BOOKING", "BK7", "changed plans")

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trail: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	want := "2024-03-01 10:15:00 | admin | CREATE_BOOKING | Record: BK7 | CU3 -> V2"
	if lines[0] != want {
		t.Fatalf("line = %q, want %q", lines[0], want)
	}
	if !strings.Contains(lines[1], "CANCEL_BOOKING") {
		t.Fatalf("second line = %q", lines[1])
	}
}
