package notify

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	return &Client{send: make(chan []byte, 4)}
}

func TestPublishDeliversToUserSessions(t *testing.T) {
	h := NewHub(zerolog.Nop())
	first := newTestClient()
	second := newTestClient()
	h.add("u1", first)
	h.add("u1", second)

	h.Publish("u1", NewEvent(EventBidHired, map[string]any{"gigId": "g1"}))

	for _, c := range []*Client{first, second} {
		select {
		case data := <-c.send:
			var event Event
			require.NoError(t, json.Unmarshal(data, &event))
			assert.Equal(t, EventBidHired, event.Type)
			assert.Equal(t, "g1", event.Payload["gigId"])
		default:
			t.Fatal("expected event on client send channel")
		}
	}
}

func TestPublishToOtherUserIsNotDelivered(t *testing.T) {
	h := NewHub(zerolog.Nop())
	c := newTestClient()
	h.add("u1", c)

	h.Publish("u2", NewEvent(EventBidReceived, nil))

	assert.Empty(t, c.send)
}

func TestPublishUnknownUserIsNoop(t *testing.T) {
	h := NewHub(zerolog.Nop())

	h.Publish("nobody", NewEvent(EventBidRejected, nil))
}

func TestPublishDropsClientWithFullBuffer(t *testing.T) {
	h := NewHub(zerolog.Nop())
	c := &Client{send: make(chan []byte, 1)}
	h.add("u1", c)

	h.Publish("u1", NewEvent(EventBidReceived, nil))
	h.Publish("u1", NewEvent(EventBidReceived, nil))

	h.mu.RLock()
	_, stillThere := h.clients["u1"]
	h.mu.RUnlock()
	assert.False(t, stillThere)
}

// Exercises concurrent publishes racing disconnects on a client whose buffer
// overflows immediately. Run with -race: a send is only legal while the
// channel is guaranteed open, which the hub locking has to enforce.
func TestPublishDuringDisconnectIsSafe(t *testing.T) {
	h := NewHub(zerolog.Nop())

	for i := 0; i < 200; i++ {
		c := &Client{send: make(chan []byte, 1)}
		h.add("u1", c)

		var wg sync.WaitGroup
		for g := 0; g < 8; g++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.Publish("u1", NewEvent(EventBidReceived, nil))
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.remove("u1", c)
		}()
		wg.Wait()
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	h := NewHub(zerolog.Nop())
	c := newTestClient()
	h.add("u1", c)

	h.remove("u1", c)
	h.remove("u1", c)

	h.mu.RLock()
	defer h.mu.RUnlock()
	assert.Empty(t, h.clients)
}
