package scoring

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/scoring"
	"go.uber.org/zap"
)

// LedgerService is the write and read surface of the delivery scoring
// ledger. Reliability scores are never stored: every read folds over the
// full entry history, so the aggregate can never drift from its inputs.
type LedgerService struct {
	ledgerRepo scoring.LedgerEntryRepository
	logger     *zap.Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo scoring.LedgerEntryRepository, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		ledgerRepo: ledgerRepo,
		logger:     logger,
	}
}

// AppendOutcome appends the single ledger entry for a shipment's terminal
// outcome. The reason maps deterministically to the score delta
// (delivered +1, returned -1, cancelled -1).
//
// Safe to call repeatedly for the same shipment: when an entry already
// exists the winning entry is returned together with
// scoring.ErrAlreadyScored, which callers treat as success. Invalid
// reasons fail with scoring.ErrInvalidReason and must not be retried.
func (s *LedgerService) AppendOutcome(ctx context.Context, shipmentID, customerID, tenantID uuid.UUID, reason scoring.OutcomeReason) (*scoring.LedgerEntry, error) {
	entry, err := scoring.NewLedgerEntry(shipmentID, customerID, tenantID, reason)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		if errors.Is(err, scoring.ErrAlreadyScored) {
			existing, findErr := s.ledgerRepo.FindByShipment(ctx, shipmentID)
			if findErr != nil {
				return nil, findErr
			}
			s.logger.Debug("shipment already scored, returning existing entry",
				zap.String("shipment_id", shipmentID.String()),
				zap.String("entry_id", existing.ID.String()),
			)
			return existing, scoring.ErrAlreadyScored
		}
		return nil, err
	}

	s.logger.Info("delivery outcome scored",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("reason", reason.String()),
		zap.Int("delta", entry.Delta),
	)

	return entry, nil
}

// ScoreFor returns the reliability score of a tenant-scoped customer: the
// sum of all its ledger entry deltas, zero when no entries exist.
func (s *LedgerService) ScoreFor(ctx context.Context, customerID uuid.UUID) (int64, error) {
	return s.ledgerRepo.SumForCustomer(ctx, customerID)
}

// ScoreForGlobalIdentity returns the cross-tenant reliability score: the
// sum across all tenant-scoped customers linked to the global identity.
func (s *LedgerService) ScoreForGlobalIdentity(ctx context.Context, globalIdentityID uuid.UUID) (int64, error) {
	return s.ledgerRepo.SumForGlobalIdentity(ctx, globalIdentityID)
}

// History returns a customer's ledger entries, oldest first.
func (s *LedgerService) History(ctx context.Context, customerID uuid.UUID) ([]scoring.LedgerEntry, error) {
	return s.ledgerRepo.FindAllForCustomer(ctx, customerID)
}
