package notify

import (
	"sync"

	"EchoFM/logger"
)

// Notifier delivers user-visible notifications. Write failures are surfaced
// through Error exactly once per failed attempt; read failures never reach
// the notifier.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier logs notifications through the global logger. Servers that
// push notifications to clients wrap this with their own transport.
type LogNotifier struct{}

func (LogNotifier) Success(msg string) {
	logger.Info("notify", logger.String("kind", "success"), logger.String("msg", msg))
}

func (LogNotifier) Error(msg string) {
	logger.Error("notify", logger.String("kind", "error"), logger.String("msg", msg))
}

// Recorder captures notifications for inspection in tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, msg)
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, msg)
}
