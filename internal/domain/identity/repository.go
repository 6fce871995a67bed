package identity

import (
	"context"

	"github.com/google/uuid"
)

// GlobalIdentityRepository persists cross-tenant global identities.
type GlobalIdentityRepository interface {
	// FindByID finds a global identity by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*GlobalIdentity, error)

	// FindByFingerprint finds a global identity by its unique fingerprint
	FindByFingerprint(ctx context.Context, fingerprint string) (*GlobalIdentity, error)

	// FindOrCreate atomically inserts the identity or, when another writer
	// won the race on the fingerprint's uniqueness constraint, returns the
	// winning row. Callers never observe the constraint violation.
	FindOrCreate(ctx context.Context, gi *GlobalIdentity) (*GlobalIdentity, error)

	// UpdateLastSeen refreshes only the last-seen contact snapshot
	UpdateLastSeen(ctx context.Context, id uuid.UUID, lastSeenEmail, lastSeenPhone string) error

	// Delete removes a global identity; referencing customers are detached,
	// not deleted (the customer side carries a set-null foreign key)
	Delete(ctx context.Context, id uuid.UUID) error
}
