package services

import (
	"sync"
)

// Event types published on list channels and carried by notification tasks.
const (
	EventItemCreated  = "item_created"
	EventItemUpdated  = "item_updated"
	EventItemDeleted  = "item_deleted"
	EventItemVoted    = "item_voted"
	EventItemRated    = "item_rated"
	EventCommentAdded = "comment_added"
	EventMemberJoined = "member_joined"
)

// ListEvent is a realtime change notification for a single list.
type ListEvent struct {
	ListID  uint   `json:"list_id"`
	Type    string `json:"type"`
	ItemID  uint   `json:"item_id,omitempty"`
	ActorID uint   `json:"actor_id,omitempty"`
}

// EventHub fans list events out to SSE subscribers. Channels are keyed by
// list id so a client only receives events for the list it watches.
type EventHub struct {
	clients map[uint]map[string]chan ListEvent
	mu      sync.RWMutex
}

// NewEventHub creates a new hub instance.
func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[uint]map[string]chan ListEvent),
	}
}

// Subscribe registers a client on a list channel and returns its receive
// channel.
func (h *EventHub) Subscribe(listID uint, clientID string) <-chan ListEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Buffered so a slow reader does not stall publishers
	ch := make(chan ListEvent, 100)
	if h.clients[listID] == nil {
		h.clients[listID] = make(map[string]chan ListEvent)
	}
	h.clients[listID][clientID] = ch
	return ch
}

// Unsubscribe removes a client from a list channel.
func (h *EventHub) Unsubscribe(listID uint, clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if chans, ok := h.clients[listID]; ok {
		if ch, ok := chans[clientID]; ok {
			close(ch)
			delete(chans, clientID)
		}
		if len(chans) == 0 {
			delete(h.clients, listID)
		}
	}
}

// Publish broadcasts an event to every subscriber of its list.
func (h *EventHub) Publish(event ListEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients[event.ListID] {
		// Non-blocking send - drop event if client buffer is full
		select {
		case ch <- event:
		default:
			// Client is slow, skip this event
		}
	}
}

// SubscriberCount returns the number of clients watching a list.
func (h *EventHub) SubscriberCount(listID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[listID])
}

// Global hub instance
var globalEventHub *EventHub
var eventHubOnce sync.Once

// GetEventHub returns the global event hub singleton.
func GetEventHub() *EventHub {
	eventHubOnce.Do(func() {
		globalEventHub = NewEventHub()
	})
	return globalEventHub
}
