package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusPublishReachesSubscribers(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe(TopicProgramChanged)
	defer cancel()

	bus.Publish(TopicProgramChanged)

	select {
	case <-ch:
	default:
		t.Fatal("expected a pending notification")
	}
}

func TestBusPublishNeverBlocks(t *testing.T) {
	bus := NewBus()

	_, cancel := bus.Subscribe(TopicProgramChanged)
	defer cancel()

	// A subscriber that never drains must not stall the publisher.
	for i := 0; i < 100; i++ {
		bus.Publish(TopicProgramChanged)
	}
}

func TestBusCancelClosesChannel(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe(TopicProgramChanged)
	cancel()

	_, open := <-ch
	require.False(t, open)

	// Publishing after cancel must not panic on the closed channel.
	bus.Publish(TopicProgramChanged)
}

func TestBusTopicsAreIsolated(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe(Topic("other.topic"))
	defer cancel()

	bus.Publish(TopicProgramChanged)

	select {
	case <-ch:
		t.Fatal("notification leaked across topics")
	default:
	}
	assert.Empty(t, ch)
}
