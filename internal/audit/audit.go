// Package audit appends one line per mutating operation to a trail file.
// The trail is append-only and best effort: a failed append is logged but
// never fails the operation it records.
package audit

import (
	"fmt"
	"os"
	"sync"
	"time"

	"tourmate/internal/utils"
)

// Sink records who did what to which record.
type Sink interface {
	Append(actor, operation, targetID, details string)
}

// FileSink writes pipe-delimited lines to a single trail file.
type FileSink struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewFileSink records to the file at path, creating it on first append.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path, now: utils.NowUTC}
}

// Append writes one trail line:
//
//	2024-03-01 10:15:00 | admin | CREATE_BOOKING | Record: BK7 | CU3 -> V2
func (s *FileSink) Append(actor, operation, targetID, details string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := fmt.Sprintf("%s | %s | %s | Record: %s | %s\n",
		utils.FormatDateTime(s.now()), actor, operation, targetID, details)

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		utils.LogEvent("", "AUDIT", "append", "open trail: "+err.Error())
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		utils.LogEvent("", "AUDIT", "append", "write trail: "+err.Error())
	}
}

// NopSink discards everything. Used in tests.
type NopSink struct{}

func (NopSink) Append(actor, operation, targetID, details string) {}
