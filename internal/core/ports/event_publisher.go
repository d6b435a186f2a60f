package ports

import (
	"time"

	"printfloor/internal/core/domain/model/kernel"
)

// Broadcast event types.
const (
	EventJobMoved             = "job.moved"
	EventJobCreated           = "job.created"
	EventPrinterStatusChanged = "printer.status_changed"
	EventPrinterInkLow        = "printer.ink_low"
	EventBatchComplete        = "batch.complete"
	EventQueueDepthChanged    = "queue.depth_changed"
	EventJobDelayed           = "job.delayed"
)

// Event is a typed change notification for floor displays.
type Event struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
	Data any       `json:"data"`
}

// EventPublisher delivers events to every current subscriber of any of the
// given topics. Delivery is fire-and-forget: nothing is acknowledged, retried
// or stored.
type EventPublisher interface {
	Publish(event Event, topics ...string)
}

// FloorTopic reaches every display regardless of scope.
const FloorTopic = "floor"

// OwnerTopic scopes events to one customer's jobs.
func OwnerTopic(ownerID string) string {
	return "owner:" + ownerID
}

// PrinterTopic scopes events to one printer.
func PrinterTopic(id kernel.UUID) string {
	return "printer:" + id.String()
}
