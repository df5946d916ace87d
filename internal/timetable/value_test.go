package timetable

import (
	"errors"
	"testing"
	"time"
)

func date(h, m int) time.Time {
	return time.Date(2024, time.March, 15, h, m, 0, 0, time.Local)
}

func TestAddClosure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		a, b    Value
		want    Value
		wantErr bool
	}{
		{
			name: "relative plus relative",
			a:    Rel(10 * time.Minute),
			b:    Rel(5 * time.Minute),
			want: Rel(15 * time.Minute),
		},
		{
			name: "relative plus absolute",
			a:    Rel(30 * time.Minute),
			b:    Abs(date(9, 0)),
			want: Abs(date(9, 30)),
		},
		{
			name: "absolute plus relative",
			a:    Abs(date(9, 0)),
			b:    Rel(-time.Hour),
			want: Abs(date(8, 0)),
		},
		{
			name:    "absolute plus absolute",
			a:       Abs(date(9, 0)),
			b:       Abs(date(10, 0)),
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Add(tc.a, tc.b)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Add(%v, %v) succeeded, want error", tc.a, tc.b)
				}
				if !errors.Is(err, ErrKindMismatch) {
					t.Errorf("error %v does not match ErrKindMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Add(%v, %v) failed: %v", tc.a, tc.b, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Add(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestSubClosure(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		a, b    Value
		want    Value
		wantErr bool
	}{
		{
			name: "relative minus relative",
			a:    Rel(10 * time.Minute),
			b:    Rel(15 * time.Minute),
			want: Rel(-5 * time.Minute),
		},
		{
			name: "absolute minus relative",
			a:    Abs(date(9, 30)),
			b:    Rel(30 * time.Minute),
			want: Abs(date(9, 0)),
		},
		{
			name: "absolute minus absolute",
			a:    Abs(date(10, 0)),
			b:    Abs(date(9, 0)),
			want: Rel(time.Hour),
		},
		{
			name:    "relative minus absolute",
			a:       Rel(10 * time.Minute),
			b:       Abs(date(9, 0)),
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Sub(tc.a, tc.b)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Sub(%v, %v) succeeded, want error", tc.a, tc.b)
				}
				if !errors.Is(err, ErrKindMismatch) {
					t.Errorf("error %v does not match ErrKindMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Sub(%v, %v) failed: %v", tc.a, tc.b, err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("Sub(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestOpErrorMessages(t *testing.T) {
	t.Parallel()

	_, err := Add(Abs(date(9, 0)), Abs(date(10, 0)))
	if err == nil {
		t.Fatal("adding two absolutes succeeded")
	}
	if got, want := err.Error(), "can't add two absolute times"; got != want {
		t.Errorf("add error = %q, want %q", got, want)
	}

	_, err = Sub(Rel(time.Minute), Abs(date(9, 0)))
	if err == nil {
		t.Fatal("subtracting absolute from relative succeeded")
	}
	if got, want := err.Error(), "can't subtract absolute time from relative time"; got != want {
		t.Errorf("sub error = %q, want %q", got, want)
	}

	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("error %v is not an *OpError", err)
	}
	if opErr.Left != Relative || opErr.Right != Absolute {
		t.Errorf("OpError kinds = %v/%v, want relative/absolute", opErr.Left, opErr.Right)
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		a, b    Value
		want    int
		wantErr bool
	}{
		{name: "relative less", a: Rel(time.Minute), b: Rel(time.Hour), want: -1},
		{name: "relative equal", a: Rel(time.Minute), b: Rel(time.Minute), want: 0},
		{name: "relative greater", a: Rel(time.Hour), b: Rel(time.Minute), want: 1},
		{name: "absolute less", a: Abs(date(8, 0)), b: Abs(date(9, 0)), want: -1},
		{name: "absolute equal", a: Abs(date(8, 0)), b: Abs(date(8, 0)), want: 0},
		{name: "absolute greater", a: Abs(date(9, 0)), b: Abs(date(8, 0)), want: 1},
		{name: "mixed kinds", a: Rel(time.Minute), b: Abs(date(8, 0)), wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := tc.a.Compare(tc.b)
			if tc.wantErr {
				if err == nil {
					t.Fatal("comparing mixed kinds succeeded")
				}
				if !errors.Is(err, ErrKindMismatch) {
					t.Errorf("error %v does not match ErrKindMismatch", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compare failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Compare = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestEqualAcrossKinds(t *testing.T) {
	t.Parallel()

	if Rel(0).Equal(Abs(time.Time{})) {
		t.Error("zero relative compares equal to zero absolute")
	}
	if !Rel(90 * time.Second).Equal(Rel(90 * time.Second)) {
		t.Error("identical relative values compare unequal")
	}
}

func TestValueString(t *testing.T) {
	t.Parallel()

	if got, want := Rel(90*time.Minute).String(), "90"; got != want {
		t.Errorf("relative String = %q, want %q", got, want)
	}
	if got, want := Abs(date(9, 5)).String(), "15.03.2024 09:05"; got != want {
		t.Errorf("absolute String = %q, want %q", got, want)
	}
}
