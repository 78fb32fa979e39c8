package session

import (
	"sync"

	"icc-dashboard/internal/models"
)

const (
	EventLogin  = "login"
	EventLogout = "logout"
	EventUser   = "user"
)

// Event tells every open view of a session that its user changed.
type Event struct {
	Type      string       `json:"type"`
	SessionID string       `json:"-"`
	User      *models.User `json:"user"`
	Reason    string       `json:"reason,omitempty"`
}

// Broker fans session events out to subscribers of the same session.
type Broker struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe returns a channel of events for sid and a cancel func that must
// be called when the subscriber goes away.
func (b *Broker) Subscribe(sid string) (<-chan Event, func()) {
	ch := make(chan Event, 8)

	b.mu.Lock()
	if b.subs[sid] == nil {
		b.subs[sid] = make(map[chan Event]struct{})
	}
	b.subs[sid][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs[sid], ch)
			if len(b.subs[sid]) == 0 {
				delete(b.subs, sid)
			}
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers ev without blocking; slow subscribers miss events.
func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs[ev.SessionID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribers reports how many listeners a session has.
func (b *Broker) Subscribers(sid string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[sid])
}
