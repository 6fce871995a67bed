package tracking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/shared"
)

// ShipmentStatus represents the status of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "PENDING"
	ShipmentStatusInTransit ShipmentStatus = "IN_TRANSIT"
	ShipmentStatusDelivered ShipmentStatus = "DELIVERED"
	ShipmentStatusReturned  ShipmentStatus = "RETURNED"
	ShipmentStatusCancelled ShipmentStatus = "CANCELLED"
)

// IsValid checks if the status is a valid ShipmentStatus
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusInTransit, ShipmentStatusDelivered, ShipmentStatusReturned, ShipmentStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition can occur from this
// status. Terminal statuses are the only ones the scoring ledger observes.
func (s ShipmentStatus) IsTerminal() bool {
	switch s {
	case ShipmentStatusDelivered, ShipmentStatusReturned, ShipmentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ShipmentStatus
func (s ShipmentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s ShipmentStatus) CanTransitionTo(target ShipmentStatus) bool {
	switch s {
	case ShipmentStatusPending:
		return target == ShipmentStatusInTransit || target == ShipmentStatusCancelled
	case ShipmentStatusInTransit:
		return target == ShipmentStatusDelivered || target == ShipmentStatusReturned || target == ShipmentStatusCancelled
	case ShipmentStatusDelivered, ShipmentStatusReturned, ShipmentStatusCancelled:
		return false
	}
	return false
}

// Shipment is the tenant-scoped shipment aggregate. Only the lifecycle is
// modeled here: once a shipment reaches a terminal status it emits the
// event that drives delivery scoring, and no further transition is
// possible.
type Shipment struct {
	shared.TenantAggregateRoot
	TrackingNumber string
	Carrier        string
	CustomerID     uuid.UUID
	Status         ShipmentStatus
	ClosedAt       *time.Time
}

// NewShipment creates a new pending shipment for a customer
func NewShipment(tenantID, customerID uuid.UUID, trackingNumber, carrier string) (*Shipment, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return nil, shared.NewDomainError("INVALID_TRACKING_NUMBER", "Tracking number cannot be empty")
	}
	if len(trackingNumber) > 100 {
		return nil, shared.NewDomainError("INVALID_TRACKING_NUMBER", "Tracking number cannot exceed 100 characters")
	}

	shipment := &Shipment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TrackingNumber:      trackingNumber,
		Carrier:             carrier,
		CustomerID:          customerID,
		Status:              ShipmentStatusPending,
	}

	return shipment, nil
}

// Dispatch moves the shipment into transit
func (s *Shipment) Dispatch() error {
	if err := s.transition(ShipmentStatusInTransit); err != nil {
		return err
	}
	return nil
}

// MarkDelivered closes the shipment as delivered
func (s *Shipment) MarkDelivered() error {
	if err := s.transition(ShipmentStatusDelivered); err != nil {
		return err
	}
	s.close()
	s.AddDomainEvent(NewShipmentDeliveredEvent(s))
	return nil
}

// MarkReturned closes the shipment as returned to sender
func (s *Shipment) MarkReturned() error {
	if err := s.transition(ShipmentStatusReturned); err != nil {
		return err
	}
	s.close()
	s.AddDomainEvent(NewShipmentReturnedEvent(s))
	return nil
}

// Cancel closes the shipment as cancelled
func (s *Shipment) Cancel() error {
	if err := s.transition(ShipmentStatusCancelled); err != nil {
		return err
	}
	s.close()
	s.AddDomainEvent(NewShipmentCancelledEvent(s))
	return nil
}

// IsClosed reports whether the shipment has reached a terminal status
func (s *Shipment) IsClosed() bool {
	return s.Status.IsTerminal()
}

func (s *Shipment) transition(target ShipmentStatus) error {
	if !s.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot transition shipment from %s to %s", s.Status, target))
	}
	s.Status = target
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

func (s *Shipment) close() {
	now := time.Now()
	s.ClosedAt = &now
}
