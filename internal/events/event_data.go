package events

import (
	"encoding/json"
	"time"
)

// EventType identifies what happened.
type EventType string

const (
	AnalysisComputed EventType = "analysis.computed"
	SnapshotStored   EventType = "snapshot.stored"
	SnapshotsPruned  EventType = "snapshots.pruned"
	JobStarted       EventType = "job.started"
	JobCompleted     EventType = "job.completed"
	JobFailed        EventType = "job.failed"
	ErrorOccurred    EventType = "error.occurred"
)

// EventData is the interface that all event data types must implement.
// This allows for type-safe event data while maintaining flexibility.
type EventData interface {
	// EventType returns the event type this data is associated with
	EventType() EventType
}

// AnalysisComputedData contains data for AnalysisComputed events
type AnalysisComputedData struct {
	Goal                  string  `json:"goal"`
	TotalValueUSD         float64 `json:"total_value_usd"`
	TokenCount            int     `json:"token_count"`
	WeightedInflationRisk float64 `json:"weighted_inflation_risk"`
	DiversificationScore  float64 `json:"diversification_score"`
	CacheHit              bool    `json:"cache_hit"`
}

// EventType returns the event type for AnalysisComputedData
func (d *AnalysisComputedData) EventType() EventType {
	return AnalysisComputed
}

// SnapshotStoredData contains data for SnapshotStored events
type SnapshotStoredData struct {
	SnapshotID    string  `json:"snapshot_id"`
	Goal          string  `json:"goal"`
	TotalValueUSD float64 `json:"total_value_usd"`
}

// EventType returns the event type for SnapshotStoredData
func (d *SnapshotStoredData) EventType() EventType {
	return SnapshotStored
}

// SnapshotsPrunedData contains data for SnapshotsPruned events
type SnapshotsPrunedData struct {
	Deleted       int64 `json:"deleted"`
	RetentionDays int   `json:"retention_days"`
}

// EventType returns the event type for SnapshotsPrunedData
func (d *SnapshotsPrunedData) EventType() EventType {
	return SnapshotsPruned
}

// JobStatusData contains data for JobStarted, JobCompleted and
// JobFailed events
type JobStatusData struct {
	Type     EventType `json:"-"`
	JobName  string    `json:"job_name"`
	Message  string    `json:"message,omitempty"`
	Duration string    `json:"duration,omitempty"`
}

// EventType returns the event type for JobStatusData
func (d *JobStatusData) EventType() EventType {
	if d.Type == "" {
		return JobStarted
	}
	return d.Type
}

// ErrorEventData contains data for ErrorOccurred events
type ErrorEventData struct {
	Module  string `json:"module"`
	Message string `json:"message"`
}

// EventType returns the event type for ErrorEventData
func (d *ErrorEventData) EventType() EventType {
	return ErrorOccurred
}

// Event is the envelope published on the bus and streamed to clients.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Module    string    `json:"module"`
	Data      EventData `json:"data"`
}

// UnmarshalJSON customizes JSON deserialization for Event so Data comes
// back as its concrete type rather than a raw map.
func (e *Event) UnmarshalJSON(data []byte) error {
	type Alias Event
	aux := &struct {
		Data json.RawMessage `json:"data"`
		*Alias
	}{
		Alias: (*Alias)(e),
	}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	if len(aux.Data) == 0 {
		return nil
	}

	var eventData EventData
	switch aux.Type {
	case AnalysisComputed:
		eventData = &AnalysisComputedData{}
	case SnapshotStored:
		eventData = &SnapshotStoredData{}
	case SnapshotsPruned:
		eventData = &SnapshotsPrunedData{}
	case JobStarted, JobCompleted, JobFailed:
		eventData = &JobStatusData{Type: aux.Type}
	case ErrorOccurred:
		eventData = &ErrorEventData{}
	default:
		var rawData map[string]interface{}
		if err := json.Unmarshal(aux.Data, &rawData); err != nil {
			return err
		}
		eventData = &GenericEventData{Type: aux.Type, Data: rawData}
	}

	if err := json.Unmarshal(aux.Data, eventData); err != nil {
		return err
	}
	e.Data = eventData
	return nil
}

// GenericEventData is a fallback for events that don't have a specific type
type GenericEventData struct {
	Type EventType              `json:"-"`
	Data map[string]interface{} `json:"-"`
}

// EventType returns the event type for GenericEventData
func (d *GenericEventData) EventType() EventType {
	return d.Type
}

// MarshalJSON customizes JSON serialization for GenericEventData
func (d *GenericEventData) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Data)
}

// UnmarshalJSON customizes JSON deserialization for GenericEventData
func (d *GenericEventData) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &d.Data)
}
