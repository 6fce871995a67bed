package models

import (
	"github.com/parceldesk/backend/internal/domain/identity"
)

// GlobalIdentityModel is the persistence model for the cross-tenant
// GlobalIdentity entity. Only the fingerprint and the identity's own
// contact snapshot are stored here, never tenant data.
type GlobalIdentityModel struct {
	BaseModel
	Fingerprint   string `gorm:"type:char(64);not null;uniqueIndex:idx_global_identity_fingerprint"`
	LastSeenEmail string `gorm:"type:varchar(320)"`
	LastSeenPhone string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (GlobalIdentityModel) TableName() string {
	return "global_identities"
}

// ToDomain converts the persistence model to a domain GlobalIdentity entity.
func (m *GlobalIdentityModel) ToDomain() *identity.GlobalIdentity {
	return &identity.GlobalIdentity{
		BaseEntity:    m.BaseModel.ToDomain(),
		Fingerprint:   m.Fingerprint,
		LastSeenEmail: m.LastSeenEmail,
		LastSeenPhone: m.LastSeenPhone,
	}
}

// FromDomain populates the persistence model from a domain GlobalIdentity entity.
func (m *GlobalIdentityModel) FromDomain(g *identity.GlobalIdentity) {
	m.FromDomainBaseEntity(g.BaseEntity)
	m.Fingerprint = g.Fingerprint
	m.LastSeenEmail = g.LastSeenEmail
	m.LastSeenPhone = g.LastSeenPhone
}
