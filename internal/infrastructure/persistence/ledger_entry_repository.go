package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/scoring"
	"github.com/parceldesk/backend/internal/domain/shared"
	"github.com/parceldesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerEntryRepository implements LedgerEntryRepository using GORM.
// The repository only ever inserts and reads: together with the model's
// update/delete hooks and the database trigger, this keeps the ledger
// append-only all the way down.
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// Append inserts the single entry for a shipment. The unique index on
// shipment_id arbitrates concurrent appends: exactly one writer inserts,
// every other one gets ErrAlreadyScored.
func (r *GormLedgerEntryRepository) Append(ctx context.Context, entry *scoring.LedgerEntry) error {
	var model models.LedgerEntryModel
	model.FromDomain(entry)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shipment_id"}},
			DoNothing: true,
		}).
		Create(&model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return scoring.ErrAlreadyScored
	}
	return nil
}

// FindByShipment returns the single entry for a shipment, if any
func (r *GormLedgerEntryRepository) FindByShipment(ctx context.Context, shipmentID uuid.UUID) (*scoring.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForCustomer returns all entries for a customer, oldest first
func (r *GormLedgerEntryRepository) FindAllForCustomer(ctx context.Context, customerID uuid.UUID) ([]scoring.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]scoring.LedgerEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// SumForCustomer folds the deltas of all entries for a customer.
// COALESCE keeps a customer with no entries at zero instead of NULL.
func (r *GormLedgerEntryRepository) SumForCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var sum int64
	if err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(delta), 0)").
		Where("customer_id = ?", customerID).
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

// SumForGlobalIdentity folds the deltas across every tenant-scoped
// customer currently linked to the global identity. Detached entries
// (customer deleted) drop out of the join and no longer count.
func (r *GormLedgerEntryRepository) SumForGlobalIdentity(ctx context.Context, globalIdentityID uuid.UUID) (int64, error) {
	var sum int64
	if err := r.db.WithContext(ctx).
		Model(&models.LedgerEntryModel{}).
		Select("COALESCE(SUM(ledger_entries.delta), 0)").
		Joins("JOIN customers ON customers.id = ledger_entries.customer_id").
		Where("customers.global_identity_id = ?", globalIdentityID).
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

// Ensure GormLedgerEntryRepository implements LedgerEntryRepository
var _ scoring.LedgerEntryRepository = (*GormLedgerEntryRepository)(nil)
