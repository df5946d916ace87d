package tsv

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/papapumpkin/rota/internal/timetable"
)

func TestParseRelative(t *testing.T) {
	t.Parallel()

	in := "0\ta\tb\n10\ta\tc\n20\tb\tc\n"
	tt, f, err := Parse(strings.NewReader(in), "")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if f.Kind != timetable.Relative || f.Unit != time.Minute {
		t.Errorf("inferred format = %+v, want relative minutes", f)
	}
	if tt.Len() != 3 {
		t.Fatalf("Len = %d, want 3", tt.Len())
	}
	if !tt.At(1).Time.Equal(timetable.Rel(10 * time.Minute)) {
		t.Errorf("second row time = %v, want 10", tt.At(1).Time)
	}
	if got := tt.At(2).At(1).Key; got != "c" {
		t.Errorf("third row second label = %q, want c", got)
	}
	if tt.Labels().Len() != 3 {
		t.Errorf("registry has %d labels, want 3", tt.Labels().Len())
	}
}

func TestParseAbsolute(t *testing.T) {
	t.Parallel()

	in := "15.03.2024 09:00\talice\n15.03.2024 09:30\tbob\n"
	tt, f, err := Parse(strings.NewReader(in), "")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if f.Kind != timetable.Absolute {
		t.Fatalf("inferred format kind = %v, want absolute", f.Kind)
	}
	want := timetable.Abs(time.Date(2024, time.March, 15, 9, 30, 0, 0, time.Local))
	if !tt.At(1).Time.Equal(want) {
		t.Errorf("second row time = %v, want %v", tt.At(1).Time, want)
	}
}

func TestParseSelectorOverridesInference(t *testing.T) {
	t.Parallel()

	tt, f, err := Parse(strings.NewReader("90\ta\n"), "+S")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if f.Unit != time.Second {
		t.Errorf("unit = %v, want seconds", f.Unit)
	}
	if !tt.At(0).Time.Equal(timetable.Rel(90 * time.Second)) {
		t.Errorf("time = %v, want 90s", tt.At(0).Time)
	}
}

func TestParseCustomLayout(t *testing.T) {
	t.Parallel()

	tt, _, err := Parse(strings.NewReader("2024-03-15 09:00\ta\n"), "2006-01-02 15:04")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	want := timetable.Abs(time.Date(2024, time.March, 15, 9, 0, 0, 0, time.Local))
	if !tt.At(0).Time.Equal(want) {
		t.Errorf("time = %v, want %v", tt.At(0).Time, want)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		selector string
		line     int
		token    string
	}{
		{name: "uninferable first token", in: "lunch\ta\n", line: 1, token: "lunch"},
		{name: "bad token mid file", in: "0\ta\nten\tb\n", line: 2, token: "ten"},
		{name: "selector mismatch", in: "0\ta\n", selector: "02.01.2006 15:04", line: 1, token: "0"},
		{name: "empty line", in: "0\ta\n\n10\tb\n", line: 2, token: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse(strings.NewReader(tc.in), tc.selector)
			if err == nil {
				t.Fatal("parse succeeded, want error")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if perr.Line != tc.line {
				t.Errorf("line = %d, want %d", perr.Line, tc.line)
			}
			if perr.Token != tc.token {
				t.Errorf("token = %q, want %q", perr.Token, tc.token)
			}
			if !errors.Is(err, timetable.ErrBadToken) {
				t.Errorf("error %v does not match ErrBadToken", err)
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	tt, f, err := Parse(strings.NewReader(""), "")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if tt.Len() != 0 {
		t.Errorf("Len = %d, want 0", tt.Len())
	}
	if f.Kind != timetable.Relative {
		t.Errorf("fallback kind = %v, want relative", f.Kind)
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		in       string
		selector string
	}{
		{name: "relative minutes", in: "0\ta\tb\n10\ta\tc\n20\tb\tc\n"},
		{name: "absolute default layout", in: "15.03.2024 09:00\ta\n15.03.2024 10:30\tb\n"},
		{name: "seconds selector", in: "0\ta\n90\tb\n", selector: "+S"},
		{name: "row without labels", in: "5\n10\ta\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tt, f, err := Parse(strings.NewReader(tc.in), tc.selector)
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			var out bytes.Buffer
			if err := Format(&out, tt, f); err != nil {
				t.Fatalf("format failed: %v", err)
			}
			if out.String() != tc.in {
				t.Errorf("round trip changed the document:\nin:  %q\nout: %q", tc.in, out.String())
			}
		})
	}
}

func TestFormatUsesLabelNames(t *testing.T) {
	t.Parallel()

	tt, f, err := Parse(strings.NewReader("0\told\n"), "")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := tt.Rename("old", "new"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	var out bytes.Buffer
	if err := Format(&out, tt, f); err != nil {
		t.Fatalf("format failed: %v", err)
	}
	if got, want := out.String(), "0\tnew\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}
