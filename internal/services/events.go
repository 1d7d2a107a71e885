package services

import "context"

// OrderEvent is the change notification fanned out to the dashboards. The
// payload carries just enough for a client to decide to re-fetch; it is not
// a delta.
type OrderEvent struct {
	Event   string `json:"event"`
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

const (
	OrderEventCreated       = "order_created"
	OrderEventStatusChanged = "status_changed"
)

// OrderEventPublisher pushes order change events toward the realtime layer.
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}
