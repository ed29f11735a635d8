package session

import "sync"

type memorySlot struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns a process-local Store.
func NewMemoryStore() Store {
	return newSlotStore(&memorySlot{})
}

func (m *memorySlot) read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, errSlotEmpty
	}
	return append([]byte(nil), m.data...), nil
}

func (m *memorySlot) write(data []byte) error {
	m.mu.Lock()
	m.data = append([]byte(nil), data...)
	m.mu.Unlock()
	return nil
}

func (m *memorySlot) remove() error {
	m.mu.Lock()
	m.data = nil
	m.mu.Unlock()
	return nil
}

func (m *memorySlot) close() error { return nil }

func (m *memorySlot) describe() string { return "memory" }
