// Package relay carries the live-workout message stream mirrored by the
// companion watch app. The relay is fire-and-forget: the watch is a passive
// mirror, never an authority over the data, so there is no acknowledgment,
// ordering guarantee or redelivery. Slow subscribers drop messages.
package relay

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Version is stamped on every message so mirror clients can reject
// vocabularies they do not understand.
const Version = "v1"

// MessageType names one entry of the relay vocabulary.
type MessageType string

const (
	TypeWorkoutStarted   MessageType = "workout-started"
	TypeWorkoutEnded     MessageType = "workout-ended"
	TypeExerciseChanged  MessageType = "exercise-changed"
	TypeRestTimerStarted MessageType = "rest-timer-started"
	TypeRestTimerEnded   MessageType = "rest-timer-ended"
	TypeHealthDataUpdate MessageType = "health-data-update"
)

// Message is one named, versioned relay message.
type Message struct {
	ID      string          `json:"id"`
	Version string          `json:"version"`
	Type    MessageType     `json:"type"`
	SentAt  time.Time       `json:"sentAt"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WorkoutStartedPayload announces a session beginning.
type WorkoutStartedPayload struct {
	WorkoutName  string `json:"workoutName"`
	ExerciseName string `json:"exerciseName,omitempty"`
	TotalSets    int    `json:"totalSets"`
}

// ExerciseChangedPayload announces progress to a new exercise or set.
type ExerciseChangedPayload struct {
	Exercise  string   `json:"exercise"`
	SetNumber int      `json:"setNumber"`
	TotalSets int      `json:"totalSets"`
	Weight    *float64 `json:"weight,omitempty"`
	Reps      int      `json:"reps"`
}

// RestTimerStartedPayload announces a rest countdown.
type RestTimerStartedPayload struct {
	DurationSeconds int `json:"durationSeconds"`
}

// WorkoutEndedPayload announces a session ending.
type WorkoutEndedPayload struct {
	WorkoutName     string `json:"workoutName"`
	DurationSeconds int    `json:"durationSeconds"`
	CompletedSets   int    `json:"completedSets"`
}

// HealthDataPayload carries watch-originated samples back to the phone side.
type HealthDataPayload struct {
	HeartRate int `json:"heartRate"`
}

// subscriber channels are buffered; publish drops when the buffer is full.
const subscriberBuffer = 16

// Hub fans relay messages out to connected mirrors.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan Message]struct{}
	logger *zap.Logger
}

// NewHub creates an empty relay hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		subs:   make(map[chan Message]struct{}),
		logger: logger,
	}
}

// Subscribe registers a mirror. The returned cancel function detaches it and
// closes the channel.
func (h *Hub) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish builds a message from the payload and fans it out. Marshal
// failures and full subscriber buffers drop the message.
func (h *Hub) Publish(msgType MessageType, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.logger.Warn("relay payload marshal failed",
			zap.String("type", string(msgType)), zap.Error(err))
		return
	}

	msg := Message{
		ID:      uuid.NewString(),
		Version: Version,
		Type:    msgType,
		SentAt:  time.Now().UTC(),
		Payload: raw,
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			h.logger.Debug("relay subscriber full, dropping message",
				zap.String("type", string(msgType)))
		}
	}
}

// SubscriberCount reports how many mirrors are attached.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
