package timing

import (
	"strings"
	"testing"
	"time"
)

func TestTimer_Marks(t *testing.T) {
	timer := NewTimer()

	time.Sleep(10 * time.Millisecond)
	timer.Mark("candidates")

	time.Sleep(10 * time.Millisecond)
	timer.Mark("picker")

	elapsed := timer.Elapsed()
	if elapsed < 20*time.Millisecond {
		t.Errorf("Expected at least 20ms, got %v", elapsed)
	}

	if d, ok := timer.Get("candidates"); !ok {
		t.Error("candidates mark not found")
	} else if d < 10*time.Millisecond {
		t.Errorf("candidates should be >= 10ms, got %v", d)
	}

	if d, ok := timer.Get("picker"); !ok {
		t.Error("picker mark not found")
	} else if d < 20*time.Millisecond {
		t.Errorf("picker should be >= 20ms, got %v", d)
	}
}

func TestTimer_Summary(t *testing.T) {
	timer := NewTimer()

	time.Sleep(5 * time.Millisecond)
	timer.Mark("candidates")

	time.Sleep(5 * time.Millisecond)
	timer.Mark("picker")

	summary := timer.Summary()

	if !strings.Contains(summary, "Total:") {
		t.Errorf("Summary should contain 'Total:', got: %s", summary)
	}
	if !strings.Contains(summary, "candidates:") {
		t.Errorf("Summary should contain 'candidates:', got: %s", summary)
	}
	if !strings.Contains(summary, "picker:") {
		t.Errorf("Summary should contain 'picker:', got: %s", summary)
	}
	if !strings.Contains(summary, "ms") {
		t.Errorf("Summary should contain 'ms', got: %s", summary)
	}
}

func TestTimer_UnknownMark(t *testing.T) {
	timer := NewTimer()
	if _, ok := timer.Get("nope"); ok {
		t.Error("unknown mark should not be found")
	}
}
