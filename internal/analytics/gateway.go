package analytics

import "context"

// EventSender is the gateway's analytics endpoint.
type EventSender interface {
	TrackEvent(ctx context.Context, name string, data map[string]any) error
}

// GatewayTracker posts events to the remote gateway.
type GatewayTracker struct {
	sender EventSender
}

func NewGatewayTracker(sender EventSender) *GatewayTracker {
	return &GatewayTracker{sender: sender}
}

func (t *GatewayTracker) Track(ctx context.Context, name string, data map[string]any) error {
	return t.sender.TrackEvent(ctx, name, data)
}
