package renderer

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

// captureLogger records every formatted line
type captureLogger struct {
	lines []string
}

func (l *captureLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *captureLogger) last() string {
	if len(l.lines) == 0 {
		return ""
	}
	return l.lines[len(l.lines)-1]
}

// fakeClock returns a settable time
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func TestProgressReporter(t *testing.T) {
	logger := &captureLogger{}
	clock := &fakeClock{now: time.Unix(0, 0)}
	p := NewProgressReporter(10, logger)
	p.now = func() time.Time { return clock.now }

	p.Start()
	if logger.last() != "Scanlines remaining: 10.\n" {
		t.Errorf("Unexpected start line %q", logger.last())
	}

	// 5 lines in 5s: the first estimate is taken as is
	clock.advance(5 * time.Second)
	p.LinesDone(5)
	if expected := "Scanlines remaining: 5. Estimated complete in appx 5s.\n"; logger.last() != expected {
		t.Errorf("Expected %q, got %q", expected, logger.last())
	}

	// Steady pace: raw estimate 4s, smoothed stays between old and new
	clock.advance(time.Second)
	p.LinesDone(1)
	eta := p.ETA()
	if eta <= 4*time.Second || eta >= 5*time.Second {
		t.Errorf("Expected smoothed ETA in (4s, 5s), got %v", eta)
	}

	// A slow band: raw estimate jumps to 30s/7*3 ≈ 12.9s, smoothed moves only part way
	clock.advance(24 * time.Second)
	p.LinesDone(1)
	spiked := p.ETA()
	if spiked <= eta || spiked >= 12*time.Second {
		t.Errorf("Expected damped ETA between %v and 12s, got %v", eta, spiked)
	}
	if p.Remaining() != 3 {
		t.Errorf("Expected 3 lines remaining, got %d", p.Remaining())
	}

	clock.advance(time.Second)
	p.LinesDone(3)
	if p.ETA() != 0 || !strings.HasPrefix(logger.last(), "Scanlines remaining: 0.") {
		t.Errorf("Expected a finished report, got %q (eta %v)", logger.last(), p.ETA())
	}
}

func TestProgressReporter_OverCount(t *testing.T) {
	p := NewProgressReporter(4, nil)
	p.Start()
	p.LinesDone(10)
	if p.Remaining() != 0 {
		t.Errorf("Expected remaining clamped to 0, got %d", p.Remaining())
	}
}
