package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the kind of change that happened
type EventType string

const (
	EventTypeCreated      EventType = "created"
	EventTypeUpdated      EventType = "updated"
	EventTypeDeleted      EventType = "deleted"
	EventTypeRecalculated EventType = "recalculated"
	EventTypeExported     EventType = "exported"
)

// EntityType represents what the event is about
type EntityType string

const (
	EntityTypeAnalysis EntityType = "analysis"
	EntityTypeSummary  EntityType = "summary"
	EntityTypeReport   EntityType = "report"
)

// Event is a message pushed to every dashboard open on the workspace.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"` // Combined type e.g. "summary.recalculated"
	Entity    EntityType  `json:"entity"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// AnalysisCreated creates an analysis.created event
func AnalysisCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeAnalysis, payload)
}

// AnalysisUpdated creates an analysis.updated event
func AnalysisUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeAnalysis, payload)
}

// AnalysisDeleted creates an analysis.deleted event
func AnalysisDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeAnalysis, payload)
}

// SummaryRecalculated creates a summary.recalculated event carrying the
// analysis with its freshly derived DSCR/ROI results.
func SummaryRecalculated(payload interface{}) Event {
	return NewEvent(EventTypeRecalculated, EntityTypeSummary, payload)
}

// ReportExported creates a report.exported event
func ReportExported(payload interface{}) Event {
	return NewEvent(EventTypeExported, EntityTypeReport, payload)
}
