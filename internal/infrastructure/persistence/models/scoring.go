package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/scoring"
	"gorm.io/gorm"
)

// LedgerEntryModel is the persistence model for delivery scoring ledger
// entries. The table is append-only: rows carry no UpdatedAt, GORM hooks
// refuse updates and deletes, and the database enforces the same rule
// with a trigger. CustomerID is nullable so entries survive customer
// deletion as detached history.
type LedgerEntryModel struct {
	ID         uuid.UUID             `gorm:"type:uuid;primary_key"`
	ShipmentID uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex:idx_ledger_shipment"`
	CustomerID *uuid.UUID            `gorm:"type:uuid;index"`
	TenantID   uuid.UUID             `gorm:"type:uuid;not null;index"`
	Delta      int                   `gorm:"not null;check:delta IN (-1, 1)"`
	Reason     scoring.OutcomeReason `gorm:"type:varchar(20);not null;check:reason IN ('delivered', 'returned', 'cancelled')"`
	CreatedAt  time.Time             `gorm:"not null"`
	Customer   *CustomerModel        `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// BeforeUpdate blocks any update to a committed ledger entry
func (m *LedgerEntryModel) BeforeUpdate(tx *gorm.DB) error {
	return scoring.ErrImmutableEntry
}

// BeforeDelete blocks deletion of a committed ledger entry
func (m *LedgerEntryModel) BeforeDelete(tx *gorm.DB) error {
	return scoring.ErrImmutableEntry
}

// ToDomain converts the persistence model to a domain LedgerEntry.
// A detached entry (customer deleted) maps to a zero customer ID.
func (m *LedgerEntryModel) ToDomain() *scoring.LedgerEntry {
	customerID := uuid.Nil
	if m.CustomerID != nil {
		customerID = *m.CustomerID
	}
	return &scoring.LedgerEntry{
		ID:         m.ID,
		ShipmentID: m.ShipmentID,
		CustomerID: customerID,
		TenantID:   m.TenantID,
		Delta:      m.Delta,
		Reason:     m.Reason,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain LedgerEntry.
func (m *LedgerEntryModel) FromDomain(e *scoring.LedgerEntry) {
	m.ID = e.ID
	m.ShipmentID = e.ShipmentID
	customerID := e.CustomerID
	m.CustomerID = &customerID
	m.TenantID = e.TenantID
	m.Delta = e.Delta
	m.Reason = e.Reason
	m.CreatedAt = e.CreatedAt
}
