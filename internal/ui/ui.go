// Package ui prints command feedback to stderr, keeping stdout free for
// timetable output.
package ui

import (
	"fmt"
	"os"

	"github.com/papapumpkin/rota/internal/verify"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	yellow = "\033[33m"
	green  = "\033[32m"
	red    = "\033[31m"
	cyan   = "\033[36m"
)

// Printer writes user feedback to stderr. With color off it prints the
// same text without escape codes, for pipes and dumb terminals.
type Printer struct {
	color bool
}

// New returns a Printer; pass color=false to strip escape codes.
func New(color bool) *Printer {
	return &Printer{color: color}
}

func (p *Printer) c(code string) string {
	if !p.color {
		return ""
	}
	return code
}

// CheckResult prints one verification check outcome.
func (p *Printer) CheckResult(res verify.CheckResult) {
	if res.Passed {
		fmt.Fprintf(os.Stderr, p.c(green+bold)+"✓"+p.c(reset)+" %s\n", res.Name)
		return
	}
	fmt.Fprintf(os.Stderr, p.c(red+bold)+"✗"+p.c(reset)+" %s: %v\n", res.Name, res.Err)
}

// VerifySummary closes a verification run.
func (p *Printer) VerifySummary(res verify.Result) {
	if res.Passed {
		fmt.Fprintf(os.Stderr, p.c(green+bold)+"✓ all %d check(s) passed"+p.c(reset)+"\n", len(res.Checks))
		return
	}
	failed := 0
	for _, c := range res.Checks {
		if !c.Passed {
			failed++
		}
	}
	fmt.Fprintf(os.Stderr, p.c(red+bold)+"✗ %d of %d check(s) failed"+p.c(reset)+"\n", failed, len(res.Checks))
}

// FitDone reports a completed fit.
func (p *Printer) FitDone(groups, events int) {
	fmt.Fprintf(os.Stderr, p.c(green+bold)+"✓ fitted"+p.c(reset)+" %d group(s), %d event(s)\n", groups, events)
}

// FitFailed reports a fit that ran out of slot positions.
func (p *Printer) FitFailed(err error) {
	fmt.Fprintf(os.Stderr, p.c(red+bold)+"✗ fit:"+p.c(reset)+" %v\n", err)
}

// WatchStart announces the watch loop.
func (p *Printer) WatchStart(path string) {
	fmt.Fprintf(os.Stderr, p.c(cyan)+"◆ watching"+p.c(reset)+" %s\n", path)
}

// WatchChange reports a detected change to the watched file.
func (p *Printer) WatchChange(path string) {
	fmt.Fprintf(os.Stderr, "\n"+p.c(bold+cyan)+"── %s changed ──"+p.c(reset)+"\n", path)
}

// WatchRemoved reports that the watched file disappeared.
func (p *Printer) WatchRemoved(path string) {
	fmt.Fprintf(os.Stderr, p.c(yellow+bold)+"⚠ %s removed"+p.c(reset)+", waiting for it to return\n", path)
}

// Error reports a command failure.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(os.Stderr, p.c(red+bold)+"error: "+p.c(reset)+"%s\n", msg)
}

// Info prints dimmed informational text.
func (p *Printer) Info(msg string) {
	fmt.Fprintf(os.Stderr, p.c(dim)+"%s"+p.c(reset)+"\n", msg)
}
