package exchange

import (
	"sync"

	"parley/internal/domain"
)

// Mailboxes stores undelivered envelopes per party and fans new arrivals
// out to live watchers. Purely in-memory; the exchange ferries messages,
// it never interprets or validates them.
type Mailboxes struct {
	mu       sync.Mutex
	boxes    map[domain.PartyID][]domain.Envelope
	watchers map[domain.PartyID][]chan domain.Envelope
}

// NewMailboxes returns an empty mailbox set.
func NewMailboxes() *Mailboxes {
	return &Mailboxes{
		boxes:    make(map[domain.PartyID][]domain.Envelope),
		watchers: make(map[domain.PartyID][]chan domain.Envelope),
	}
}

// Deliver appends env to the recipient's box and notifies watchers. A
// watcher that cannot keep up misses the push but still finds the
// envelope in its mailbox.
func (m *Mailboxes) Deliver(env domain.Envelope) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.boxes[env.To] = append(m.boxes[env.To], env)
	for _, ch := range m.watchers[env.To] {
		select {
		case ch <- env:
		default:
		}
	}
}

// Fetch returns up to limit envelopes for party without removing them.
// limit <= 0 means all.
func (m *Mailboxes) Fetch(party domain.PartyID, limit int) []domain.Envelope {
	m.mu.Lock()
	defer m.mu.Unlock()
	box := m.boxes[party]
	if limit <= 0 || limit > len(box) {
		limit = len(box)
	}
	out := make([]domain.Envelope, limit)
	copy(out, box[:limit])
	return out
}

// Ack removes the first count envelopes from party's box. Counts outside
// [0, len(box)] are clamped; the count arrives off the wire.
func (m *Mailboxes) Ack(party domain.PartyID, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	box := m.boxes[party]
	if count < 0 {
		count = 0
	}
	if count > len(box) {
		count = len(box)
	}
	m.boxes[party] = box[count:]
}

// Watch registers a push channel for party and returns it with a cancel
// function that unregisters and closes it.
func (m *Mailboxes) Watch(party domain.PartyID) (<-chan domain.Envelope, func()) {
	ch := make(chan domain.Envelope, 16)
	m.mu.Lock()
	m.watchers[party] = append(m.watchers[party], ch)
	m.mu.Unlock()

	cancel := func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		watchers := m.watchers[party]
		for i, w := range watchers {
			if w == ch {
				m.watchers[party] = append(watchers[:i], watchers[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}
