package events

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToSubscribedTypeOnly(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	var received []*Event
	bus.Subscribe(func(event *Event) {
		received = append(received, event)
	}, SnapshotStored)

	bus.Publish("snapshots", &SnapshotStoredData{SnapshotID: "abc", Goal: "exploring", TotalValueUSD: 100})
	bus.Publish("analysis", &AnalysisComputedData{Goal: "exploring"})

	require.Len(t, received, 1)
	assert.Equal(t, SnapshotStored, received[0].Type)
	assert.Equal(t, "snapshots", received[0].Module)

	data, ok := received[0].Data.(*SnapshotStoredData)
	require.True(t, ok)
	assert.Equal(t, "abc", data.SnapshotID)
}

func TestBusUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	count := 0
	unsubscribe := bus.Subscribe(func(event *Event) {
		count++
	}, AnalysisComputed, SnapshotStored)

	bus.Publish("analysis", &AnalysisComputedData{Goal: "exploring"})
	unsubscribe()
	unsubscribe() // idempotent
	bus.Publish("analysis", &AnalysisComputedData{Goal: "exploring"})

	assert.Equal(t, 1, count)
}

func TestBusMultipleSubscribers(t *testing.T) {
	bus := NewBus(zerolog.Nop())

	first, second := 0, 0
	bus.Subscribe(func(event *Event) { first++ }, JobCompleted)
	bus.Subscribe(func(event *Event) { second++ }, JobCompleted)

	bus.Publish("scheduler", &JobStatusData{Type: JobCompleted, JobName: "snapshot_retention"})

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}

func TestEventJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data EventData
	}{
		{"analysis computed", &AnalysisComputedData{Goal: "inflation_protection", TotalValueUSD: 1000, TokenCount: 3, WeightedInflationRisk: 6.2, DiversificationScore: 55}},
		{"snapshots pruned", &SnapshotsPrunedData{Deleted: 12, RetentionDays: 90}},
		{"job failed", &JobStatusData{Type: JobFailed, JobName: "snapshot_retention", Message: "database locked"}},
		{"error", &ErrorEventData{Module: "server", Message: "boom"}},
	}

	bus := NewBus(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var published *Event
			unsubscribe := bus.Subscribe(func(event *Event) {
				published = event
			}, tt.data.EventType())
			defer unsubscribe()

			bus.Publish("test", tt.data)
			require.NotNil(t, published)

			encoded, err := json.Marshal(published)
			require.NoError(t, err)

			var decoded Event
			require.NoError(t, json.Unmarshal(encoded, &decoded))
			assert.Equal(t, published.Type, decoded.Type)
			assert.Equal(t, published.Data, decoded.Data)
		})
	}
}

func TestEventUnknownTypeFallsBackToGenericData(t *testing.T) {
	raw := []byte(`{"type":"custom.thing","timestamp":"2026-01-02T03:04:05Z","module":"ext","data":{"k":"v"}}`)

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))

	generic, ok := decoded.Data.(*GenericEventData)
	require.True(t, ok)
	assert.Equal(t, "v", generic.Data["k"])
}
