package notify

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Hub keeps the active websocket sessions of each user. One user may hold
// several connections (several tabs); Publish fans an event out to all of
// them.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		log:     log.With().Str("component", "notify").Logger(),
	}
}

func (h *Hub) add(userId string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[userId] == nil {
		h.clients[userId] = make(map[*Client]struct{})
	}
	h.clients[userId][c] = struct{}{}

	h.log.Debug().Str("userId", userId).Msg("client joined")
}

func (h *Hub) remove(userId string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sessions, ok := h.clients[userId]
	if !ok {
		return
	}
	if _, ok := sessions[c]; !ok {
		return
	}

	delete(sessions, c)
	if len(sessions) == 0 {
		delete(h.clients, userId)
	}
	close(c.send)

	h.log.Debug().Str("userId", userId).Msg("client left")
}

// Publish sends the event to every session of the given user. Sessions whose
// outbound buffer is full are dropped rather than blocking the caller.
//
// Sends happen under the read lock while remove closes the channel under the
// write lock, so a send can never interleave with a close.
func (h *Hub) Publish(userId string, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Str("type", event.Type).Msg("marshal event")
		return
	}

	h.mu.RLock()
	var dropped []*Client
	for c := range h.clients[userId] {
		select {
		case c.send <- data:
		default:
			dropped = append(dropped, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range dropped {
		h.remove(userId, c)
	}
}
