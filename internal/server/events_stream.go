package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/hedgewise/hedgewise/internal/events"
)

// streamableEventTypes is everything a client may subscribe to.
var streamableEventTypes = []events.EventType{
	events.AnalysisComputed,
	events.SnapshotStored,
	events.SnapshotsPruned,
	events.JobStarted,
	events.JobCompleted,
	events.JobFailed,
	events.ErrorOccurred,
}

// EventsStreamHandler pushes bus events to websocket clients.
type EventsStreamHandler struct {
	bus *events.Bus
	log zerolog.Logger
}

// NewEventsStreamHandler creates a new websocket stream handler
func NewEventsStreamHandler(bus *events.Bus, log zerolog.Logger) *EventsStreamHandler {
	return &EventsStreamHandler{
		bus: bus,
		log: log.With().Str("component", "events_stream").Logger(),
	}
}

// ServeHTTP upgrades the connection and streams events until the client
// disconnects. An optional ?types=a,b,c query narrows the subscription.
func (h *EventsStreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // CORS is handled by the router middleware
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	types := h.requestedTypes(r)

	// The connection is push-only; CloseRead watches for client close.
	ctx := conn.CloseRead(r.Context())

	// Buffer so a slow client drops events instead of blocking the bus.
	eventChan := make(chan *events.Event, 100)
	unsubscribe := h.bus.Subscribe(func(event *events.Event) {
		select {
		case eventChan <- event:
		default:
			h.log.Warn().Str("type", string(event.Type)).Msg("Event dropped, client too slow")
		}
	}, types...)
	defer unsubscribe()

	h.log.Debug().Int("types", len(types)).Msg("Websocket client subscribed")

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case event := <-eventChan:
			payload, err := json.Marshal(event)
			if err != nil {
				h.log.Error().Err(err).Msg("Failed to encode event")
				continue
			}

			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = conn.Write(writeCtx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				h.log.Debug().Err(err).Msg("Websocket write failed, closing stream")
				return
			}
		}
	}
}

// requestedTypes parses the types filter, defaulting to all streamable
// types. Unknown names are ignored.
func (h *EventsStreamHandler) requestedTypes(r *http.Request) []events.EventType {
	raw := r.URL.Query().Get("types")
	if raw == "" {
		return streamableEventTypes
	}

	known := make(map[events.EventType]bool, len(streamableEventTypes))
	for _, t := range streamableEventTypes {
		known[t] = true
	}

	var types []events.EventType
	for _, name := range strings.Split(raw, ",") {
		t := events.EventType(strings.TrimSpace(name))
		if known[t] {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return streamableEventTypes
	}
	return types
}
