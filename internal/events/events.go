package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventRentalCreated   = "rental_created"
	EventRentalCompleted = "rental_completed"
	EventRentalCancelled = "rental_cancelled"
	EventRentalDeleted   = "rental_deleted"
	EventPaymentRecorded = "payment_recorded"
)

// RentalEventPayload describes the minimal rental snapshot for event consumers.
type RentalEventPayload struct {
	RentalID     int64   `json:"rental_id"`
	DressID      int64   `json:"dress_id"`
	DressName    string  `json:"dress_name,omitempty"`
	CustomerID   int64   `json:"customer_id"`
	CustomerName string  `json:"customer_name,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Status       string  `json:"status"`
	TotalPrice   float64 `json:"total_price"`
}

// PaymentEventPayload describes a recorded payment for event consumers.
type PaymentEventPayload struct {
	PaymentID   int64   `json:"payment_id"`
	RentalID    int64   `json:"rental_id"`
	Amount      float64 `json:"amount"`
	PaymentDate string  `json:"payment_date"`
	Method      string  `json:"method,omitempty"`
}

// Event represents a lightweight domain event.
type Event struct {
	ID        int64
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
