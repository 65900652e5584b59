package store

import (
	"fmt"
	"sync"
	"time"
)

var runIDMu sync.Mutex
var lastBase string
var lastSeq int

// NewRunID derives a run identifier from the wall clock, formatted
// YYYYMMDD_HHMMSS. Identifiers are unique within a process: repeated
// calls inside the same second get a numeric suffix.
func NewRunID(now time.Time) string {
	runIDMu.Lock()
	defer runIDMu.Unlock()

	base := now.Format("20060102_150405")
	if base != lastBase {
		lastBase = base
		lastSeq = 0
		return base
	}

	lastSeq++
	return fmt.Sprintf("%s_%d", base, lastSeq)
}
