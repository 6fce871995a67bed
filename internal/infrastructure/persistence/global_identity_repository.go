package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/identity"
	"github.com/parceldesk/backend/internal/domain/shared"
	"github.com/parceldesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGlobalIdentityRepository implements GlobalIdentityRepository using GORM
type GormGlobalIdentityRepository struct {
	db *gorm.DB
}

// NewGormGlobalIdentityRepository creates a new GormGlobalIdentityRepository
func NewGormGlobalIdentityRepository(db *gorm.DB) *GormGlobalIdentityRepository {
	return &GormGlobalIdentityRepository{db: db}
}

// FindByID finds a global identity by its ID
func (r *GormGlobalIdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.GlobalIdentity, error) {
	var model models.GlobalIdentityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByFingerprint finds a global identity by its unique fingerprint
func (r *GormGlobalIdentityRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*identity.GlobalIdentity, error) {
	var model models.GlobalIdentityModel
	if err := r.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOrCreate atomically inserts the identity or returns the existing row
// for its fingerprint. ON CONFLICT DO NOTHING makes concurrent resolutions
// of the same person converge on a single row: the loser of the race
// inserts nothing and reads back the winner.
func (r *GormGlobalIdentityRepository) FindOrCreate(ctx context.Context, gi *identity.GlobalIdentity) (*identity.GlobalIdentity, error) {
	var model models.GlobalIdentityModel
	model.FromDomain(gi)

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fingerprint"}},
			DoNothing: true,
		}).
		Create(&model)
	if result.Error != nil {
		return nil, result.Error
	}

	// Conflict: another writer owns the fingerprint, fetch the winner
	if result.RowsAffected == 0 {
		return r.FindByFingerprint(ctx, gi.Fingerprint)
	}

	return model.ToDomain(), nil
}

// UpdateLastSeen refreshes only the last-seen contact snapshot
func (r *GormGlobalIdentityRepository) UpdateLastSeen(ctx context.Context, id uuid.UUID, lastSeenEmail, lastSeenPhone string) error {
	result := r.db.WithContext(ctx).
		Model(&models.GlobalIdentityModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_seen_email": lastSeenEmail,
			"last_seen_phone": lastSeenPhone,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a global identity. Customers referencing it are detached
// by the set-null foreign key, never deleted.
func (r *GormGlobalIdentityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.GlobalIdentityModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormGlobalIdentityRepository implements GlobalIdentityRepository
var _ identity.GlobalIdentityRepository = (*GormGlobalIdentityRepository)(nil)
