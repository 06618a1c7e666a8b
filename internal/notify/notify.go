// Package notify carries transient user-facing messages out of the stores.
// Sinks are fire-and-forget: a newer message may replace whatever came
// before it, mirroring a single-slot toast.
package notify

import (
	"log"
	"sync"
)

type Sink interface {
	Notify(message string)
}

// Discard drops every message.
type Discard struct{}

func (Discard) Notify(string) {}

// Latest retains only the most recent message. HTTP handlers hand one to a
// store for the duration of a request and surface the result as a notice.
type Latest struct {
	mu      sync.Mutex
	message string
	set     bool
}

func (l *Latest) Notify(message string) {
	l.mu.Lock()
	l.message = message
	l.set = true
	l.mu.Unlock()
}

// Message returns the retained message and whether one was ever set.
func (l *Latest) Message() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.message, l.set
}

// Logger writes messages through a standard logger.
type Logger struct {
	logger *log.Logger
}

func NewLogger(logger *log.Logger) *Logger {
	return &Logger{logger: logger}
}

func (l *Logger) Notify(message string) {
	l.logger.Printf("notify: %s", message)
}
