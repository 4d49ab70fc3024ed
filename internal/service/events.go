package service

import (
	"encoding/json"
	"sync"
	"time"
)

// EventType represents the type of event
type EventType string

const (
	// Pipeline events
	EventSubmissionReceived EventType = "submission.received"
	EventSubmissionPaid     EventType = "submission.paid"
	EventSubmissionApproved EventType = "submission.published"
	// EventSubmissionRejected carries the refund obligation: rejecting a paid
	// submission obliges a refund, executed by the payment collaborator.
	EventSubmissionRejected EventType = "submission.rejected"
	EventSubmissionRefunded EventType = "submission.refunded"

	// System events
	EventHeartbeat EventType = "heartbeat"
)

// Event represents a server-sent event on the operator stream
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data"`
}

// Format returns the SSE formatted string
func (e *Event) Format() string {
	data, _ := json.Marshal(e.Data)
	return "event: " + string(e.Type) + "\ndata: " + string(data) + "\n\n"
}

// Subscriber represents a connected SSE client
type Subscriber struct {
	ID     string
	Events chan *Event
	Done   chan struct{}
}

// EventHub broadcasts pipeline events to connected operator clients.
type EventHub struct {
	mu          sync.RWMutex
	subscribers map[string]*Subscriber
	heartbeat   *time.Ticker
	done        chan struct{}
}

// NewEventHub creates a new event hub
func NewEventHub() *EventHub {
	hub := &EventHub{
		subscribers: make(map[string]*Subscriber),
		done:        make(chan struct{}),
	}
	// Start heartbeat
	hub.heartbeat = time.NewTicker(30 * time.Second)
	go hub.sendHeartbeats()
	return hub
}

// Subscribe adds a new subscriber
func (h *EventHub) Subscribe(subscriberID string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscriber{
		ID:     subscriberID,
		Events: make(chan *Event, 100), // Buffer to prevent blocking
		Done:   make(chan struct{}),
	}
	h.subscribers[subscriberID] = sub
	return sub
}

// Unsubscribe removes a subscriber
func (h *EventHub) Unsubscribe(subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subscribers[subscriberID]; ok {
		close(sub.Done)
		close(sub.Events)
		delete(h.subscribers, subscriberID)
	}
}

// Publish sends an event to all subscribers
func (h *EventHub) Publish(event *Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers {
		select {
		case sub.Events <- event:
			// Event sent successfully
		default:
			// Buffer full, skip this subscriber
		}
	}
}

// sendHeartbeats sends periodic heartbeats to all subscribers
func (h *EventHub) sendHeartbeats() {
	for {
		select {
		case <-h.heartbeat.C:
			event := &Event{
				Type: EventHeartbeat,
				Data: map[string]string{
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				},
			}
			h.Publish(event)
		case <-h.done:
			return
		}
	}
}

// Close stops the event hub
func (h *EventHub) Close() {
	close(h.done)
	h.heartbeat.Stop()

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subscribers {
		close(sub.Done)
		close(sub.Events)
		delete(h.subscribers, id)
	}
}
