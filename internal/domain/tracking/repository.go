package tracking

import (
	"context"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/shared"
)

// ShipmentRepository persists tenant-scoped shipments.
type ShipmentRepository interface {
	// FindByID finds a shipment by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)

	// FindByIDForTenant finds a shipment by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Shipment, error)

	// FindByTrackingNumber finds a shipment by tracking number within a tenant
	FindByTrackingNumber(ctx context.Context, tenantID uuid.UUID, trackingNumber string) (*Shipment, error)

	// FindAllForTenant finds all shipments for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Shipment, error)

	// Save creates or updates a shipment
	Save(ctx context.Context, shipment *Shipment) error
}
