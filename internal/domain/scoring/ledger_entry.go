package scoring

import (
	"time"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/shared"
)

// Domain errors for the delivery scoring ledger
var (
	// ErrAlreadyScored signals an idempotent collision: the shipment already
	// has its single ledger entry. Callers treat it as success.
	ErrAlreadyScored = shared.NewDomainError("ALREADY_SCORED", "Shipment has already been scored")

	// ErrInvalidReason signals a reason outside the closed outcome set.
	// This is a programmer error in the calling workflow, never retried.
	ErrInvalidReason = shared.NewDomainError("INVALID_REASON", "Outcome reason must be delivered, returned, or cancelled")

	// ErrImmutableEntry signals an attempted mutation of a committed ledger
	// row. It should be unreachable through correct calling code and is
	// treated as a data-integrity alarm.
	ErrImmutableEntry = shared.NewDomainError("IMMUTABLE_ENTRY", "Ledger entries cannot be modified or deleted once written")
)

// OutcomeReason is the closed set of terminal shipment outcomes the ledger
// accepts. The score delta is fixed at the type level so an unmapped or
// typo'd reason can never reach storage.
type OutcomeReason string

const (
	OutcomeDelivered OutcomeReason = "delivered"
	OutcomeReturned  OutcomeReason = "returned"
	OutcomeCancelled OutcomeReason = "cancelled"
)

// IsValid checks if the reason belongs to the closed outcome set
func (r OutcomeReason) IsValid() bool {
	switch r {
	case OutcomeDelivered, OutcomeReturned, OutcomeCancelled:
		return true
	}
	return false
}

// String returns the string representation of OutcomeReason
func (r OutcomeReason) String() string {
	return string(r)
}

// Delta returns the reliability score contribution of the outcome:
// delivered counts +1, returned and cancelled count -1.
func (r OutcomeReason) Delta() int {
	if r == OutcomeDelivered {
		return 1
	}
	return -1
}

// LedgerEntry is one immutable row of the append-only delivery outcome
// ledger. Exactly one entry exists per shipment once it reaches a terminal
// status. The type intentionally exposes no mutating methods; delta,
// reason, customer reference, and timestamp are fixed at creation.
type LedgerEntry struct {
	ID         uuid.UUID
	ShipmentID uuid.UUID
	CustomerID uuid.UUID
	TenantID   uuid.UUID
	Delta      int
	Reason     OutcomeReason
	CreatedAt  time.Time
}

// NewLedgerEntry creates the single ledger entry for a shipment's terminal
// outcome. The delta is derived from the reason, never supplied.
func NewLedgerEntry(shipmentID, customerID, tenantID uuid.UUID, reason OutcomeReason) (*LedgerEntry, error) {
	if !reason.IsValid() {
		return nil, ErrInvalidReason
	}
	if shipmentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHIPMENT", "Shipment ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}

	return &LedgerEntry{
		ID:         uuid.New(),
		ShipmentID: shipmentID,
		CustomerID: customerID,
		TenantID:   tenantID,
		Delta:      reason.Delta(),
		Reason:     reason,
		CreatedAt:  time.Now(),
	}, nil
}
