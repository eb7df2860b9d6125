package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yigit/messdesk/internal/pkg/notify"
)

// ErrHubStopped is returned once the hub's run loop has exited
var ErrHubStopped = errors.New("websocket hub stopped")

// HubSink forwards lifecycle events to the subscribers of the event's mess
type HubSink struct {
	hub *Hub
}

// NewHubSink creates a sink writing to hub
func NewHubSink(hub *Hub) *HubSink {
	return &HubSink{hub: hub}
}

// Name implements notify.Sink
func (s *HubSink) Name() string { return "websocket" }

// Deliver implements notify.Sink
func (s *HubSink) Deliver(ctx context.Context, e notify.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if !s.hub.BroadcastToMess(ctx, e.MessID, data) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("hub did not accept event: %w", err)
		}
		return ErrHubStopped
	}
	return nil
}
