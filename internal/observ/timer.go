// Package observ records wall-clock phases of a script run.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one timed step, such as parsing or executing a script.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer accumulates phases in the order they were begun.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin opens a phase and returns its handle for End.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase idx. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// PhaseReport is the serialisable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report lists every phase with the summed duration.
type Report struct {
	Label   string        `json:"label,omitempty"`
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the recorded phases.
func (t *Timer) Report(label string) Report {
	report := Report{Label: label, Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, p := range t.phases {
		total += p.Dur
		report.Phases[i] = PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note}
	}
	report.TotalMS = millis(total)
	return report
}

// Summary renders r as an aligned table.
func (r Report) Summary() string {
	var sb strings.Builder
	if r.Label != "" {
		fmt.Fprintf(&sb, "timings %s:\n", r.Label)
	} else {
		sb.WriteString("timings:\n")
	}
	for _, p := range r.Phases {
		fmt.Fprintf(&sb, "  %-10s %8.3f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			sb.WriteString("  " + p.Note)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-10s %8.3f ms\n", "total", r.TotalMS)
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
