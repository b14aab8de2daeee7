package notify

import "time"

// Event types pushed to connected clients.
const (
	EventBidReceived = "bid.received"
	EventBidHired    = "bid.hired"
	EventBidRejected = "bid.rejected"
)

type Event struct {
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

func NewEvent(eventType string, payload map[string]any) Event {
	return Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher delivers an event to every active session of one user. The
// workflow layer calls it only after a committed state change; delivery is
// best-effort and must never block the caller.
type Publisher interface {
	Publish(userId string, event Event)
}

// NoopPublisher satisfies Publisher where no delivery channel exists.
type NoopPublisher struct{}

func (NoopPublisher) Publish(string, Event) {}
