// Package timing measures interaction latency for debug logging. An
// interaction blocks the host's input loop, so its phases are worth
// watching.
package timing

import (
	"fmt"
	"time"
)

// Timer tracks the phases of one interaction
type Timer struct {
	start time.Time
	marks map[string]time.Duration
	order []string
}

// NewTimer starts a timer
func NewTimer() *Timer {
	return &Timer{
		start: time.Now(),
		marks: make(map[string]time.Duration),
	}
}

// Mark records a checkpoint with a label and returns the elapsed time
// since the timer started
func (t *Timer) Mark(label string) time.Duration {
	elapsed := time.Since(t.start)
	t.marks[label] = elapsed
	t.order = append(t.order, label)
	return elapsed
}

// Elapsed returns total elapsed time since the timer started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Get returns the duration recorded for a label
func (t *Timer) Get(label string) (time.Duration, bool) {
	d, ok := t.marks[label]
	return d, ok
}

// Summary formats all recorded phases for a log line
func (t *Timer) Summary() string {
	total := t.Elapsed()
	summary := fmt.Sprintf("Total: %.3fms", float64(total.Microseconds())/1000.0)

	if len(t.order) > 0 {
		summary += " ("
		for i, label := range t.order {
			if i > 0 {
				summary += ", "
			}
			summary += fmt.Sprintf("%s: %.3fms", label, float64(t.marks[label].Microseconds())/1000.0)
		}
		summary += ")"
	}

	return summary
}
