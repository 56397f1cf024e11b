package events

import (
	"encoding/json"
	"testing"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus()

	var received *Event
	var callCount int

	bus.Subscribe(EventRentalCreated, func(event *Event) error {
		received = event
		callCount++
		return nil
	})

	payload := RentalEventPayload{RentalID: 7, DressID: 2, Status: "active"}
	if err := bus.PublishJSON(EventRentalCreated, payload); err != nil {
		t.Fatalf("PublishJSON failed: %v", err)
	}

	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
	if received.Type != EventRentalCreated {
		t.Errorf("expected type %s, got %s", EventRentalCreated, received.Type)
	}

	var decoded RentalEventPayload
	if err := json.Unmarshal(received.Payload, &decoded); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if decoded.RentalID != 7 || decoded.Status != "active" {
		t.Errorf("unexpected payload: %+v", decoded)
	}
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()
	var count1, count2 int

	bus.Subscribe("event", func(_ *Event) error { count1++; return nil })
	bus.Subscribe("event", func(_ *Event) error { count2++; return nil })

	bus.Publish(&Event{Type: "event"})

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both handlers to be called once, got %d and %d", count1, count2)
	}
}

func TestEventBusNoSubscribers(t *testing.T) {
	bus := NewEventBus()
	// Should not panic
	bus.Publish(&Event{Type: "unknown"})
	if err := bus.PublishJSON("unknown", nil); err != nil {
		t.Errorf("PublishJSON failed: %v", err)
	}
}

func TestNilBusPublishJSON(t *testing.T) {
	var bus *EventBus
	if err := bus.PublishJSON(EventPaymentRecorded, PaymentEventPayload{PaymentID: 1}); err != nil {
		t.Errorf("nil bus PublishJSON should be a no-op, got %v", err)
	}
}
