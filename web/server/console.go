package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ConsoleMessage is one line logged while serving a render
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// RenderLog implements core.Logger by collecting the messages of a single render.
// Every message is also forwarded to the server log.
type RenderLog struct {
	renderID string
	next     core.Logger
	now      func() time.Time

	mu       sync.Mutex
	messages []ConsoleMessage
}

// NewRenderLog creates a log for one render; next may be nil
func NewRenderLog(renderID string, next core.Logger) *RenderLog {
	return &RenderLog{renderID: renderID, next: next, now: time.Now}
}

// Printf implements core.Logger
func (rl *RenderLog) Printf(format string, args ...interface{}) {
	rl.add("info", fmt.Sprintf(format, args...))
}

// Errorf records an error line
func (rl *RenderLog) Errorf(format string, args ...interface{}) {
	rl.add("error", fmt.Sprintf(format, args...))
}

func (rl *RenderLog) add(level, message string) {
	if rl.next != nil {
		rl.next.Printf("[%s] %s", rl.renderID, message)
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.messages = append(rl.messages, ConsoleMessage{
		Message:   message,
		Timestamp: rl.now(),
		Level:     level,
	})
}

// Messages returns a copy of the collected messages in logging order
func (rl *RenderLog) Messages() []ConsoleMessage {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return append([]ConsoleMessage(nil), rl.messages...)
}
