package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"expensetracker/internal/core"
)

// EventType names a change made to the record store.
type EventType string

const (
	EventRecordAdded      EventType = "record.added"
	EventRecordRemoved    EventType = "record.removed"
	EventRecordsRewritten EventType = "records.rewritten"
)

// RecordPayload is a record in its stored text form.
type RecordPayload struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
}

// RecordEvent is published after every successful store change. Consumers
// treat it as a hint and reload the store rather than applying the payload.
type RecordEvent struct {
	Type      EventType      `json:"type"`
	Record    *RecordPayload `json:"record,omitempty"`
	Rows      int            `json:"rows"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewRecordEvent creates an event about a single record.
func NewRecordEvent(t EventType, r core.Record) *RecordEvent {
	return &RecordEvent{
		Type: t,
		Record: &RecordPayload{
			Date:     r.Date.String(),
			Name:     r.Name,
			Amount:   core.StorageText(r.Amount),
			Category: string(r.Category),
		},
		Timestamp: time.Now(),
	}
}

// NewRewriteEvent creates an event for a whole-store rewrite of rows records.
func NewRewriteEvent(rows int) *RecordEvent {
	return &RecordEvent{
		Type:      EventRecordsRewritten,
		Rows:      rows,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RecordEventFromJSON creates an event from JSON bytes
func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var ev RecordEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	switch ev.Type {
	case EventRecordAdded, EventRecordRemoved:
		if ev.Record == nil {
			return nil, fmt.Errorf("event %s without record", ev.Type)
		}
	case EventRecordsRewritten:
	default:
		return nil, fmt.Errorf("unknown event type %q", ev.Type)
	}
	return &ev, nil
}
