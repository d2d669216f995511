package panel

import "sync"

// Toasts collects notices raised while the panel handles an event. The
// panel shows the newest one in its status line.
type Toasts struct {
	mu      sync.Mutex
	pending []string
}

// NewToasts returns an empty queue.
func NewToasts() *Toasts {
	return &Toasts{}
}

// Notify queues message.
func (t *Toasts) Notify(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, message)
}

// drain returns and clears the queued messages.
func (t *Toasts) drain() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := t.pending
	t.pending = nil
	return out
}
