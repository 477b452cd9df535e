package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// RelayHandler republishes bridge messages from other processes onto the
// local bus. Messages carrying this process's origin are skipped.
type RelayHandler struct {
	bus    *Bus
	origin string
	logger logrus.FieldLogger
}

// NewRelayHandler constructs a RelayHandler.
func NewRelayHandler(bus *Bus, origin string, logger logrus.FieldLogger) *RelayHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RelayHandler{bus: bus, origin: origin, logger: logger.WithField("component", "relay")}
}

// Handle implements Handler.
func (h *RelayHandler) Handle(_ context.Context, msg Message) error {
	if msg.Origin != "" && msg.Origin == h.origin {
		return nil
	}

	switch msg.EventType {
	case TopicWorkoutsRefreshed:
		var ev WorkoutsRefreshed
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		ev.Remote = true
		h.bus.WorkoutsRefreshed.Publish(ev)
	case TopicCatalogChanged:
		var ev CatalogChanged
		if err := json.Unmarshal(msg.Payload, &ev); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		ev.Remote = true
		h.bus.CatalogChanged.Publish(ev)
	default:
		h.logger.WithField("event_type", msg.EventType).Debug("ignoring unknown event type")
	}
	return nil
}
