// Package notify delivers user-facing toast-style messages. Services
// report operation outcomes here instead of letting errors escape to the
// caller's rendering path.
package notify

import (
	"log/slog"
	"sync"
)

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to the structured log. The gateway
// additionally forwards them to the client in response payloads.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(msg string) {
	n.logger.Info("notification", "level", "success", "message", msg)
}

func (n *LogNotifier) Error(msg string) {
	n.logger.Warn("notification", "level", "error", "message", msg)
}

// Recorder captures notifications for assertions in tests and for the
// gateway to echo back alongside a response.
type Recorder struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *Recorder) Successes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.successes...)
}

func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = nil
	r.errors = nil
}
