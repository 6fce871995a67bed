package identity

import (
	"context"

	"github.com/parceldesk/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// ResolutionService resolves tenant-scoped contact details to cross-tenant
// global identities. Only hashed fingerprints ever key the shared store;
// the plaintext identifiers stay inside the owning tenant's customer row.
type ResolutionService struct {
	identityRepo  identity.GlobalIdentityRepository
	fingerprinter *identity.Fingerprinter
	logger        *zap.Logger
}

// NewResolutionService creates a new ResolutionService
func NewResolutionService(identityRepo identity.GlobalIdentityRepository, fingerprinter *identity.Fingerprinter, logger *zap.Logger) *ResolutionService {
	return &ResolutionService{
		identityRepo:  identityRepo,
		fingerprinter: fingerprinter,
		logger:        logger,
	}
}

// FindOrCreateGlobalIdentity normalizes and fingerprints the contact
// identifiers and resolves the single global identity for that
// fingerprint, creating it atomically on first encounter. Safe under
// concurrent callers submitting the same contact details: every caller
// observes the same row. Returns identity.ErrEmptyIdentity when both
// identifiers normalize to empty.
func (s *ResolutionService) FindOrCreateGlobalIdentity(ctx context.Context, email, phone string) (*identity.GlobalIdentity, error) {
	normalizedEmail, normalizedPhone := identity.Normalize(email, phone)
	if normalizedEmail == "" && normalizedPhone == "" {
		return nil, identity.ErrEmptyIdentity
	}

	fingerprint := s.fingerprinter.Fingerprint(normalizedEmail, normalizedPhone)

	candidate, err := identity.NewGlobalIdentity(fingerprint, normalizedEmail, normalizedPhone)
	if err != nil {
		return nil, err
	}

	resolved, err := s.identityRepo.FindOrCreate(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if resolved.ID == candidate.ID {
		s.logger.Info("global identity created",
			zap.String("global_identity_id", resolved.ID.String()),
		)
		return resolved, nil
	}

	// An identity for this fingerprint already existed; refresh the
	// non-authoritative contact snapshot. A failure here must not fail
	// resolution, the link itself is already correct.
	if err := s.identityRepo.UpdateLastSeen(ctx, resolved.ID, normalizedEmail, normalizedPhone); err != nil {
		s.logger.Warn("failed to refresh last-seen contact snapshot",
			zap.String("global_identity_id", resolved.ID.String()),
			zap.Error(err),
		)
	} else {
		resolved.RecordSighting(normalizedEmail, normalizedPhone)
	}

	return resolved, nil
}

// Fingerprint exposes the deterministic contact fingerprint for support
// tooling (lookups by raw contact details without touching plaintext in
// the identity store).
func (s *ResolutionService) Fingerprint(email, phone string) string {
	return s.fingerprinter.FingerprintContact(email, phone)
}
