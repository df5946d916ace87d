package slotfit

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/papapumpkin/rota/internal/timetable"
)

// ManifestError reports a slot manifest that failed to load.
type ManifestError struct {
	Path  string
	Index int    // slot index, -1 for file-level failures
	Field string // offending field, "" for file-level failures
	Err   error
}

// Error returns a human-readable string naming the file and, when known,
// the slot index and field that failed.
func (e *ManifestError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: slot %d: %s: %v", e.Path, e.Index, e.Field, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ManifestError) Unwrap() error { return e.Err }

// manifest is the TOML shape of a slot file:
//
//	[[slot]]
//	start = "0"
//	end = "30"
//	step = "10m"
type manifest struct {
	Slots []slotEntry `toml:"slot"`
}

type slotEntry struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
	Step  string `toml:"step"`
}

// LoadFile reads a TOML slot manifest. Start and end are time tokens
// parsed under f, which should be the format of the timetable being
// fitted; step is a Go duration string.
func LoadFile(path string, f timetable.Format) ([]Slot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Index: -1, Err: err}
	}
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, &ManifestError{Path: path, Index: -1, Err: err}
	}

	slots := make([]Slot, 0, len(m.Slots))
	for i, entry := range m.Slots {
		start, err := f.Parse(entry.Start)
		if err != nil {
			return nil, &ManifestError{Path: path, Index: i, Field: "start", Err: err}
		}
		end, err := f.Parse(entry.End)
		if err != nil {
			return nil, &ManifestError{Path: path, Index: i, Field: "end", Err: err}
		}
		step, err := time.ParseDuration(entry.Step)
		if err != nil {
			return nil, &ManifestError{Path: path, Index: i, Field: "step", Err: err}
		}
		slots = append(slots, Slot{Start: start, End: end, Step: step})
	}
	return slots, nil
}
