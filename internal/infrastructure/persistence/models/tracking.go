package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/tracking"
)

// ShipmentModel is the persistence model for the Shipment aggregate.
type ShipmentModel struct {
	TenantAggregateModel
	TrackingNumber string                  `gorm:"type:varchar(100);not null;uniqueIndex:idx_shipment_tenant_tracking,priority:2"`
	Carrier        string                  `gorm:"type:varchar(100)"`
	CustomerID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	Status         tracking.ShipmentStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	ClosedAt       *time.Time
	Customer       *CustomerModel `gorm:"foreignKey:CustomerID"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the persistence model to a domain Shipment aggregate.
func (m *ShipmentModel) ToDomain() *tracking.Shipment {
	shipment := &tracking.Shipment{
		TrackingNumber: m.TrackingNumber,
		Carrier:        m.Carrier,
		CustomerID:     m.CustomerID,
		Status:         m.Status,
		ClosedAt:       m.ClosedAt,
	}
	m.PopulateTenantAggregateRoot(&shipment.TenantAggregateRoot)
	return shipment
}

// FromDomain populates the persistence model from a domain Shipment aggregate.
func (m *ShipmentModel) FromDomain(s *tracking.Shipment) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.TrackingNumber = s.TrackingNumber
	m.Carrier = s.Carrier
	m.CustomerID = s.CustomerID
	m.Status = s.Status
	m.ClosedAt = s.ClosedAt
}
