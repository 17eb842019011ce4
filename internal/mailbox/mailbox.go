package mailbox

import "sync"

// Stats counts mailbox traffic since creation.
type Stats struct {
	Published uint64
	Consumed  uint64
	Dropped   uint64 // payloads overwritten before anyone took them
}

// Mailbox is a single-slot hand-off between one producer and one consumer.
// A new payload replaces an unconsumed one; it never queues.
type Mailbox struct {
	mu      sync.Mutex
	payload []byte
	stats   Stats
}

// New returns an empty mailbox.
func New() *Mailbox {
	return &Mailbox{}
}

// Put stores p, discarding any payload that has not been taken yet.
// Empty payloads are ignored.
func (m *Mailbox) Put(p []byte) {
	if len(p) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.payload != nil {
		m.stats.Dropped++
	}
	m.payload = p
	m.stats.Published++
}

// Take removes and returns the pending payload, if any.
func (m *Mailbox) Take() ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.payload
	if p == nil {
		return nil, false
	}
	m.payload = nil
	m.stats.Consumed++
	return p, true
}

// Pending reports whether a payload is waiting.
func (m *Mailbox) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payload != nil
}

func (m *Mailbox) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}
