// Package notice delivers short user-facing messages, the terminal
// equivalent of a host application's toast notifications.
package notice

import "sync"

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(message string)
}

// Func adapts a plain function to Notifier.
type Func func(message string)

func (f Func) Notify(message string) { f(message) }

// Recorder keeps every notice it receives.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

// Messages returns a copy of the notices received so far.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

// Discard drops every notice.
var Discard Notifier = Func(func(string) {})
