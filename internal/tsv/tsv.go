// Package tsv reads tab-separated timetable text and writes timetables
// back out. For well-formed input the two directions are inverse.
package tsv

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/papapumpkin/rota/internal/timetable"
)

// Separator splits the time token and the label keys within a row.
const Separator = "\t"

// ParseError reports the row that made parsing fail.
type ParseError struct {
	Line  int    // 1-based
	Token string // the row's time token
	Err   error
}

// Error returns a human-readable string prefixed with the failing line number.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is/As.
func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads rows of the form "time<TAB>key<TAB>key..." into a timetable.
// selector picks the time format per timetable.ParseSelector; when empty,
// the format is inferred from the first row's time token. The returned
// format is the one actually used, so callers can render output the same
// way the input was written.
func Parse(r io.Reader, selector string) (*timetable.Timetable, timetable.Format, error) {
	format, explicit := timetable.ParseSelector(selector)

	var tt *timetable.Timetable
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		cols := strings.Split(sc.Text(), Separator)
		token := cols[0]

		if tt == nil {
			if !explicit {
				inferred, err := timetable.InferFormat(token)
				if err != nil {
					return nil, timetable.Format{}, &ParseError{Line: line, Token: token, Err: err}
				}
				format = inferred
			}
			tt = timetable.New(format.Kind)
		}

		v, err := format.Parse(token)
		if err != nil {
			return nil, timetable.Format{}, &ParseError{Line: line, Token: token, Err: err}
		}
		if err := tt.Append(v, cols[1:]...); err != nil {
			return nil, timetable.Format{}, &ParseError{Line: line, Token: token, Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, timetable.Format{}, fmt.Errorf("reading timetable: %w", err)
	}

	if tt == nil {
		if !explicit {
			format = timetable.DefaultRelative()
		}
		tt = timetable.New(format.Kind)
	}
	return tt, format, nil
}

// Format writes the timetable as tab-separated rows in its current event
// order, rendering times through f and labels through their Name.
func Format(w io.Writer, tt *timetable.Timetable, f timetable.Format) error {
	bw := bufio.NewWriter(w)
	for _, e := range tt.Events() {
		bw.WriteString(f.Render(e.Time))
		for _, l := range e.Data {
			bw.WriteString(Separator)
			bw.WriteString(l.Name)
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing timetable: %w", err)
	}
	return nil
}
