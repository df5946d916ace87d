package ui

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/papapumpkin/rota/internal/verify"
)

// captureStderr redirects os.Stderr to a pipe and returns the captured output.
func captureStderr(fn func()) string {
	r, w, _ := os.Pipe()
	orig := os.Stderr
	os.Stderr = w

	fn()

	w.Close()
	os.Stderr = orig

	buf := make([]byte, 4096)
	n, _ := r.Read(buf)
	r.Close()
	return string(buf[:n])
}

func TestCheckResult(t *testing.T) {
	p := New(false)

	output := captureStderr(func() {
		p.CheckResult(verify.CheckResult{Name: "dimensions", Passed: true})
	})
	if !strings.Contains(output, "✓ dimensions") {
		t.Errorf("passing check output = %q, want a check mark and the name", output)
	}

	output = captureStderr(func() {
		p.CheckResult(verify.CheckResult{Name: "conflicts", Passed: false, Err: errors.New("label \"a\" conflicts")})
	})
	for _, substr := range []string{"✗", "conflicts", "label \"a\""} {
		if !strings.Contains(output, substr) {
			t.Errorf("failing check output missing %q, got:\n%s", substr, output)
		}
	}
}

func TestVerifySummary(t *testing.T) {
	p := New(false)

	res := verify.Result{Passed: true, Checks: []verify.CheckResult{
		{Name: "dimensions", Passed: true},
		{Name: "conflicts", Passed: true},
	}}
	output := captureStderr(func() { p.VerifySummary(res) })
	if !strings.Contains(output, "all 2 check(s) passed") {
		t.Errorf("passing summary = %q", output)
	}

	res = verify.Result{Checks: []verify.CheckResult{
		{Name: "dimensions", Passed: false, Err: errors.New("ragged")},
		{Name: "conflicts", Passed: true},
	}}
	output = captureStderr(func() { p.VerifySummary(res) })
	if !strings.Contains(output, "1 of 2 check(s) failed") {
		t.Errorf("failing summary = %q", output)
	}
}

func TestColorToggle(t *testing.T) {
	withColor := captureStderr(func() { New(true).Error("bad input") })
	if !strings.Contains(withColor, "\033[") {
		t.Errorf("colored output has no escape codes: %q", withColor)
	}

	plain := captureStderr(func() { New(false).Error("bad input") })
	if strings.Contains(plain, "\033[") {
		t.Errorf("plain output still has escape codes: %q", plain)
	}
	if !strings.Contains(plain, "error: bad input") {
		t.Errorf("plain output = %q, want the message text", plain)
	}
}

func TestFitMessages(t *testing.T) {
	output := captureStderr(func() { New(false).FitDone(3, 5) })
	for _, substr := range []string{"fitted", "3 group(s)", "5 event(s)"} {
		if !strings.Contains(output, substr) {
			t.Errorf("fit output missing %q, got:\n%s", substr, output)
		}
	}

	output = captureStderr(func() { New(false).FitFailed(errors.New("not all data fitted")) })
	if !strings.Contains(output, "not all data fitted") {
		t.Errorf("fit failure output = %q", output)
	}
}

func TestWatchMessages(t *testing.T) {
	output := captureStderr(func() { New(false).WatchChange("day.tsv") })
	if !strings.Contains(output, "day.tsv changed") {
		t.Errorf("change output = %q", output)
	}

	output = captureStderr(func() { New(false).WatchRemoved("day.tsv") })
	if !strings.Contains(output, "day.tsv removed") {
		t.Errorf("removed output = %q", output)
	}
}
