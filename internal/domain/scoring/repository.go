package scoring

import (
	"context"

	"github.com/google/uuid"
)

// LedgerEntryRepository persists the append-only delivery outcome ledger.
// The interface deliberately exposes no update or delete operation:
// immutability is part of the contract, reinforced by the storage layer.
type LedgerEntryRepository interface {
	// Append inserts the entry, relying on the storage-level uniqueness of
	// the shipment reference. Returns ErrAlreadyScored when an entry for
	// the shipment already exists; concurrent racers never both succeed.
	Append(ctx context.Context, entry *LedgerEntry) error

	// FindByShipment returns the single entry for a shipment, if any
	FindByShipment(ctx context.Context, shipmentID uuid.UUID) (*LedgerEntry, error)

	// FindAllForCustomer returns all entries for a customer, oldest first
	FindAllForCustomer(ctx context.Context, customerID uuid.UUID) ([]LedgerEntry, error)

	// SumForCustomer folds the deltas of all entries for a customer.
	// A customer with no entries sums to zero.
	SumForCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)

	// SumForGlobalIdentity folds the deltas across every tenant-scoped
	// customer linked to the global identity.
	SumForGlobalIdentity(ctx context.Context, globalIdentityID uuid.UUID) (int64, error)
}
