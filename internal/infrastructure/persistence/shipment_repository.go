package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/shared"
	"github.com/parceldesk/backend/internal/domain/tracking"
	"github.com/parceldesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.Shipment, error) {
	var model models.ShipmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForTenant finds a shipment by ID within a tenant
func (r *GormShipmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*tracking.Shipment, error) {
	var model models.ShipmentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrackingNumber finds a shipment by tracking number within a tenant
func (r *GormShipmentRepository) FindByTrackingNumber(ctx context.Context, tenantID uuid.UUID, trackingNumber string) (*tracking.Shipment, error) {
	var model models.ShipmentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND tracking_number = ?", tenantID, trackingNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all shipments for a tenant
func (r *GormShipmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]tracking.Shipment, error) {
	var shipmentModels []models.ShipmentModel
	query := r.db.WithContext(ctx).Model(&models.ShipmentModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		query = query.Where("status = ?", filter.Search)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	orderBy := ValidateSortField(filter.OrderBy, ShipmentSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&shipmentModels).Error; err != nil {
		return nil, err
	}

	shipments := make([]tracking.Shipment, len(shipmentModels))
	for i, model := range shipmentModels {
		shipments[i] = *model.ToDomain()
	}
	return shipments, nil
}

// Save creates or updates a shipment
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *tracking.Shipment) error {
	var model models.ShipmentModel
	model.FromDomain(shipment)
	return r.db.WithContext(ctx).Save(&model).Error
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ tracking.ShipmentRepository = (*GormShipmentRepository)(nil)
