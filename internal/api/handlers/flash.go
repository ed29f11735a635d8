package handlers

import "sync"

// Flash queues user notifications until the next page that shows them.
// It satisfies apiclient.Notifier.
type Flash struct {
	mu       sync.Mutex
	messages []string
}

// NewFlash creates an empty queue.
func NewFlash() *Flash {
	return &Flash{}
}

// Notify queues message.
func (f *Flash) Notify(message string) {
	f.mu.Lock()
	f.messages = append(f.messages, message)
	f.mu.Unlock()
}

// Drain returns and forgets the queued messages.
func (f *Flash) Drain() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.messages
	f.messages = nil
	if out == nil {
		out = []string{}
	}
	return out
}
