// Package trace appends rota operations to a JSONL file, one object per
// line, so fit and verify runs can be audited and diffed later.
package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Record kinds.
const (
	KindParse       = "parse"
	KindFitAssign   = "fit_assign"
	KindFitDone     = "fit_done"
	KindVerifyCheck = "verify_check"
)

// Record is one trace line. File names the timetable document the record
// is about; Data carries the kind-specific payload.
type Record struct {
	Timestamp time.Time `json:"ts"`
	Kind      string    `json:"kind"`
	File      string    `json:"file,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// Assign is the payload of a fit_assign record: one group moved to its
// slot position.
type Assign struct {
	Group  int    `json:"group"`
	Events int    `json:"events"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// FitSummary is the payload of a fit_done record.
type FitSummary struct {
	Groups int  `json:"groups"`
	Events int  `json:"events"`
	Fitted bool `json:"fitted"`
}

// CheckOutcome is the payload of a verify_check record.
type CheckOutcome struct {
	Check  string `json:"check"`
	Passed bool   `json:"passed"`
	Error  string `json:"error,omitempty"`
}

// ParseSummary is the payload of a parse record.
type ParseSummary struct {
	Events int    `json:"events"`
	Labels int    `json:"labels"`
	Kind   string `json:"kind"`
}

// Emitter appends records to a file. A nil *Emitter is valid and drops
// everything, so call sites don't guard.
type Emitter struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewEmitter opens path for appending, creating it if needed.
func NewEmitter(path string) (*Emitter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("trace: open %s: %w", path, err)
	}
	return &Emitter{file: f, enc: json.NewEncoder(f)}, nil
}

// Emit appends one record, stamping it if the caller didn't. Write errors
// are dropped; tracing never fails the operation it records.
func (e *Emitter) Emit(rec Record) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	_ = e.enc.Encode(rec)
}

// Close flushes and closes the underlying file.
func (e *Emitter) Close() error {
	if e == nil {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.file == nil {
		return nil
	}
	err := e.file.Close()
	e.file = nil
	return err
}
