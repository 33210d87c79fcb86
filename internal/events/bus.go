// Package events is a small typed in-process pub/sub used to tell dependent
// components that shared state changed (e.g. the active program was
// replaced). It replaces an unscoped broadcast-notification pattern with an
// explicit subscriber interface.
package events

import "sync"

// Topic names a class of change notifications.
type Topic string

const (
	// TopicProgramChanged fires after an enrollment is created, replaced,
	// abandoned, or completed. No payload: subscribers re-read state.
	TopicProgramChanged Topic = "program.changed"
)

// Bus fans out topic notifications to subscribers. Publish never blocks: a
// subscriber that is not draining its channel misses notifications rather
// than stalling the publisher.
type Bus struct {
	mu   sync.RWMutex
	subs map[Topic][]chan struct{}
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]chan struct{})}
}

// Subscribe registers for a topic. The returned cancel function removes the
// subscription and closes the channel.
func (b *Bus) Subscribe(topic Topic) (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], ch)
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subs[topic]
		for i, sub := range subs {
			if sub == ch {
				b.subs[topic] = append(subs[:i], subs[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// Publish signals every subscriber of the topic without blocking.
func (b *Bus) Publish(topic Topic) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs[topic] {
		select {
		case ch <- struct{}{}:
		default: // subscriber already has a pending signal
		}
	}
}
