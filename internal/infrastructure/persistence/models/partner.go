package models

import (
	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
// GlobalIdentityID references the shared identity store and is cleared
// (not cascaded) when the identity row disappears.
type CustomerModel struct {
	TenantAggregateModel
	Code             string                 `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_tenant_code,priority:2"`
	Name             string                 `gorm:"type:varchar(200);not null"`
	ContactName      string                 `gorm:"type:varchar(100)"`
	Phone            string                 `gorm:"type:varchar(50)"`
	Email            string                 `gorm:"type:varchar(200)"`
	Status           partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
	GlobalIdentityID *uuid.UUID             `gorm:"type:uuid;index"`
	Notes            string                 `gorm:"type:text"`
	GlobalIdentity   *GlobalIdentityModel   `gorm:"foreignKey:GlobalIdentityID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	customer := &partner.Customer{
		Code:             m.Code,
		Name:             m.Name,
		ContactName:      m.ContactName,
		Phone:            m.Phone,
		Email:            m.Email,
		Status:           m.Status,
		GlobalIdentityID: m.GlobalIdentityID,
		Notes:            m.Notes,
	}
	m.PopulateTenantAggregateRoot(&customer.TenantAggregateRoot)
	return customer
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.ContactName = c.ContactName
	m.Phone = c.Phone
	m.Email = c.Email
	m.Status = c.Status
	m.GlobalIdentityID = c.GlobalIdentityID
	m.Notes = c.Notes
}
