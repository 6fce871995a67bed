package tracking

import (
	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeShipment = "Shipment"

// Event type constants
const (
	EventTypeShipmentDelivered = "ShipmentDelivered"
	EventTypeShipmentReturned  = "ShipmentReturned"
	EventTypeShipmentCancelled = "ShipmentCancelled"
)

// ShipmentDeliveredEvent is published when a shipment reaches the
// delivered terminal status
type ShipmentDeliveredEvent struct {
	shared.BaseDomainEvent
	ShipmentID     uuid.UUID `json:"shipment_id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	TrackingNumber string    `json:"tracking_number"`
}

// NewShipmentDeliveredEvent creates a new ShipmentDeliveredEvent
func NewShipmentDeliveredEvent(s *Shipment) *ShipmentDeliveredEvent {
	return &ShipmentDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentDelivered, AggregateTypeShipment, s.ID, s.TenantID),
		ShipmentID:      s.ID,
		CustomerID:      s.CustomerID,
		TrackingNumber:  s.TrackingNumber,
	}
}

// ShipmentReturnedEvent is published when a shipment reaches the returned
// terminal status
type ShipmentReturnedEvent struct {
	shared.BaseDomainEvent
	ShipmentID     uuid.UUID `json:"shipment_id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	TrackingNumber string    `json:"tracking_number"`
}

// NewShipmentReturnedEvent creates a new ShipmentReturnedEvent
func NewShipmentReturnedEvent(s *Shipment) *ShipmentReturnedEvent {
	return &ShipmentReturnedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentReturned, AggregateTypeShipment, s.ID, s.TenantID),
		ShipmentID:      s.ID,
		CustomerID:      s.CustomerID,
		TrackingNumber:  s.TrackingNumber,
	}
}

// ShipmentCancelledEvent is published when a shipment is cancelled
type ShipmentCancelledEvent struct {
	shared.BaseDomainEvent
	ShipmentID     uuid.UUID `json:"shipment_id"`
	CustomerID     uuid.UUID `json:"customer_id"`
	TrackingNumber string    `json:"tracking_number"`
}

// NewShipmentCancelledEvent creates a new ShipmentCancelledEvent
func NewShipmentCancelledEvent(s *Shipment) *ShipmentCancelledEvent {
	return &ShipmentCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentCancelled, AggregateTypeShipment, s.ID, s.TenantID),
		ShipmentID:      s.ID,
		CustomerID:      s.CustomerID,
		TrackingNumber:  s.TrackingNumber,
	}
}
