package usecase

import "sync"

const subscriberBuffer = 16

// updateHub fans session updates out to stream subscribers. Slow subscribers
// miss updates rather than stall the game clock.
type updateHub struct {
	mu     sync.Mutex
	subs   map[int]chan Update
	nextID int
	closed bool
}

func newUpdateHub() *updateHub {
	return &updateHub{subs: make(map[int]chan Update)}
}

func (h *updateHub) publish(update Update) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- update:
		default:
		}
	}
}

func (h *updateHub) subscribe() (<-chan Update, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Update, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
}

func (h *updateHub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
