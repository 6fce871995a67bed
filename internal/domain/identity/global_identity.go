package identity

import (
	"time"

	"github.com/parceldesk/backend/internal/domain/shared"
)

// Domain errors for identity resolution
var (
	// ErrEmptyIdentity is returned when both contact identifiers normalize
	// to empty. Linking such customers would collapse every "unknown"
	// customer onto one shared identity.
	ErrEmptyIdentity = shared.NewDomainError("INVALID_IDENTITY", "At least one of email or phone is required to resolve an identity")
)

// GlobalIdentity is a cross-tenant customer identity keyed by a one-way
// contact fingerprint. It deliberately stores no authoritative PII: the
// last-seen email and phone are a support-lookup convenience refreshed on
// every encounter, nothing more. Exactly one row exists per fingerprint;
// rows are created lazily on first reference.
type GlobalIdentity struct {
	shared.BaseEntity
	Fingerprint   string
	LastSeenEmail string
	LastSeenPhone string
}

// NewGlobalIdentity creates a global identity for a fingerprint together
// with the normalized contact snapshot observed at creation time.
func NewGlobalIdentity(fingerprint, lastSeenEmail, lastSeenPhone string) (*GlobalIdentity, error) {
	if fingerprint == "" {
		return nil, shared.NewDomainError("INVALID_FINGERPRINT", "Fingerprint cannot be empty")
	}
	return &GlobalIdentity{
		BaseEntity:    shared.NewBaseEntity(),
		Fingerprint:   fingerprint,
		LastSeenEmail: lastSeenEmail,
		LastSeenPhone: lastSeenPhone,
	}, nil
}

// RecordSighting refreshes the non-authoritative contact snapshot after
// another customer record resolved to this identity. The fingerprint
// itself never changes.
func (g *GlobalIdentity) RecordSighting(normalizedEmail, normalizedPhone string) {
	g.LastSeenEmail = normalizedEmail
	g.LastSeenPhone = normalizedPhone
	g.UpdatedAt = time.Now()
}
