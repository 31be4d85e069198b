package event

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event emitted when a procurement document
// changes status.
type Event struct {
	ID        string                 `json:"id"`
	Type      Type                   `json:"type"`
	Doctype   string                 `json:"doctype"`
	DocName   string                 `json:"doc_name"`
	Payload   map[string]interface{} `json:"payload"`
	Timestamp time.Time              `json:"timestamp"`
}

// NewEvent creates a new domain event with auto-generated ID and timestamp
func NewEvent(eventType Type, doctype, docName string, payload map[string]interface{}) *Event {
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Doctype:   doctype,
		DocName:   docName,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// StatusChanged builds the standard status-change event for a document
func StatusChanged(doctype, docName, oldStatus, newStatus string) *Event {
	return NewEvent(TypeStatusChanged, doctype, docName, map[string]interface{}{
		"old_status": oldStatus,
		"new_status": newStatus,
	})
}

// GetPayloadString retrieves a string value from the payload
func (e *Event) GetPayloadString(key string) string {
	if val, ok := e.Payload[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

// GetPayloadFloat retrieves a float64 value from the payload
func (e *Event) GetPayloadFloat(key string) float64 {
	if val, ok := e.Payload[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int64:
			return float64(v)
		case int:
			return float64(v)
		}
	}
	return 0.0
}
