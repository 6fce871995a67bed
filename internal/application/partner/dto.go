package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/partner"
)

// CreateCustomerRequest is the request to create a customer
type CreateCustomerRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Notes       string `json:"notes"`
}

// UpdateContactRequest is the request to change a customer's contact details
type UpdateContactRequest struct {
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// CustomerListFilter holds list filtering options
type CustomerListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}

// CustomerResponse is the customer representation returned to callers
type CustomerResponse struct {
	ID               uuid.UUID  `json:"id"`
	TenantID         uuid.UUID  `json:"tenant_id"`
	Code             string     `json:"code"`
	Name             string     `json:"name"`
	ContactName      string     `json:"contact_name,omitempty"`
	Phone            string     `json:"phone,omitempty"`
	Email            string     `json:"email,omitempty"`
	Status           string     `json:"status"`
	GlobalIdentityID *uuid.UUID `json:"global_identity_id,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to its response form
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		TenantID:         c.TenantID,
		Code:             c.Code,
		Name:             c.Name,
		ContactName:      c.ContactName,
		Phone:            c.Phone,
		Email:            c.Email,
		Status:           string(c.Status),
		GlobalIdentityID: c.GlobalIdentityID,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
