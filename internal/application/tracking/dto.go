package tracking

import (
	"time"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/tracking"
)

// CreateShipmentRequest is the request to register a shipment
type CreateShipmentRequest struct {
	CustomerID     uuid.UUID `json:"customer_id" binding:"required"`
	TrackingNumber string    `json:"tracking_number" binding:"required"`
	Carrier        string    `json:"carrier"`
}

// ShipmentListFilter holds list filtering options
type ShipmentListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Status   string `form:"status"`
}

// ShipmentResponse is the shipment representation returned to callers
type ShipmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	TenantID       uuid.UUID  `json:"tenant_id"`
	CustomerID     uuid.UUID  `json:"customer_id"`
	TrackingNumber string     `json:"tracking_number"`
	Carrier        string     `json:"carrier,omitempty"`
	Status         string     `json:"status"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToShipmentResponse converts a domain shipment to its response form
func ToShipmentResponse(s *tracking.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:             s.ID,
		TenantID:       s.TenantID,
		CustomerID:     s.CustomerID,
		TrackingNumber: s.TrackingNumber,
		Carrier:        s.Carrier,
		Status:         string(s.Status),
		ClosedAt:       s.ClosedAt,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
