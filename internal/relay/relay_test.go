package relay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHubPublishFansOut(t *testing.T) {
	hub := NewHub(zap.NewNop())

	first, cancelFirst := hub.Subscribe()
	defer cancelFirst()
	second, cancelSecond := hub.Subscribe()
	defer cancelSecond()

	hub.Publish(TypeWorkoutStarted, WorkoutStartedPayload{
		WorkoutName:  "Push Day",
		ExerciseName: "Bench Press",
		TotalSets:    4,
	})

	for _, ch := range []<-chan Message{first, second} {
		select {
		case msg := <-ch:
			assert.Equal(t, TypeWorkoutStarted, msg.Type)
			assert.Equal(t, Version, msg.Version)
			assert.NotEmpty(t, msg.ID)
			assert.False(t, msg.SentAt.IsZero())

			var payload WorkoutStartedPayload
			require.NoError(t, json.Unmarshal(msg.Payload, &payload))
			assert.Equal(t, "Push Day", payload.WorkoutName)
			assert.Equal(t, 4, payload.TotalSets)
		default:
			t.Fatal("expected a delivered message")
		}
	}
}

func TestHubMessageIDsAreUnique(t *testing.T) {
	hub := NewHub(zap.NewNop())

	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(TypeRestTimerStarted, RestTimerStartedPayload{DurationSeconds: 90})
	hub.Publish(TypeRestTimerEnded, nil)

	first := <-ch
	second := <-ch
	assert.NotEqual(t, first.ID, second.ID)
}

func TestHubDropsWhenSubscriberIsFull(t *testing.T) {
	hub := NewHub(zap.NewNop())

	ch, cancel := hub.Subscribe()
	defer cancel()

	// Overfill the buffer; the hub must keep accepting publishes.
	for i := 0; i < subscriberBuffer+10; i++ {
		hub.Publish(TypeHealthDataUpdate, HealthDataPayload{HeartRate: 100 + i})
	}

	assert.Len(t, ch, subscriberBuffer)
}

func TestHubCancelDetachesSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())

	ch, cancel := hub.Subscribe()
	require.Equal(t, 1, hub.SubscriberCount())

	cancel()
	assert.Zero(t, hub.SubscriberCount())

	_, open := <-ch
	assert.False(t, open)

	// Double cancel is safe.
	cancel()
}

func TestHubPublishWithNoSubscribers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.Publish(TypeWorkoutEnded, WorkoutEndedPayload{WorkoutName: "Legs", DurationSeconds: 3200})
}
