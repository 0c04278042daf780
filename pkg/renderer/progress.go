package renderer

import (
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ProgressReporter logs the number of scanlines left and a smoothed time estimate.
// Raw estimates jump around as tiles of uneven cost finish, so the reported value
// follows them through a critically damped spring, one spring step per report.
type ProgressReporter struct {
	logger    core.Logger
	total     int
	remaining int
	start     time.Time
	now       func() time.Time

	spring   harmonica.Spring
	eta      float64 // Smoothed estimate in seconds
	etaVel   float64
	hasEstim bool

	mu sync.Mutex
}

// NewProgressReporter creates a reporter for an image with totalLines scanlines
func NewProgressReporter(totalLines int, logger core.Logger) *ProgressReporter {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &ProgressReporter{
		logger:    logger,
		total:     totalLines,
		remaining: totalLines,
		now:       time.Now,
		spring:    harmonica.NewSpring(harmonica.FPS(1), 1.0, 1.0),
	}
}

// Start records the start time and logs the initial line count
func (p *ProgressReporter) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.start = p.now()
	p.logger.Printf("Scanlines remaining: %d.\n", p.remaining)
}

// LinesDone marks n more scanlines complete and logs the new estimate
func (p *ProgressReporter) LinesDone(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.remaining = max(0, p.remaining-n)
	done := p.total - p.remaining
	if done <= 0 {
		return
	}

	elapsed := p.now().Sub(p.start).Seconds()
	raw := elapsed / float64(done) * float64(p.remaining)
	if !p.hasEstim {
		p.eta, p.etaVel, p.hasEstim = raw, 0, true
	} else {
		p.eta, p.etaVel = p.spring.Update(p.eta, p.etaVel, raw)
	}
	if p.remaining == 0 {
		p.eta, p.etaVel = 0, 0
	}

	p.logger.Printf("Scanlines remaining: %d. Estimated complete in appx %s.\n", p.remaining, p.etaDuration())
}

// Remaining returns the number of scanlines not yet complete
func (p *ProgressReporter) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remaining
}

// ETA returns the current smoothed estimate
func (p *ProgressReporter) ETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaDuration()
}

func (p *ProgressReporter) etaDuration() time.Duration {
	if p.eta <= 0 {
		return 0
	}
	return time.Duration(p.eta * float64(time.Second)).Round(100 * time.Millisecond)
}
