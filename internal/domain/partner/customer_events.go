package partner

import (
	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCustomer = "Customer"

// Event type constants
const (
	EventTypeCustomerCreated        = "CustomerCreated"
	EventTypeCustomerContactChanged = "CustomerContactChanged"
	EventTypeCustomerIdentityLinked = "CustomerIdentityLinked"
	EventTypeCustomerDeleted        = "CustomerDeleted"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(customer *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Code:            customer.Code,
		Name:            customer.Name,
	}
}

// CustomerContactChangedEvent is published when the identifying contact
// fields of a customer change
type CustomerContactChangedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
}

// NewCustomerContactChangedEvent creates a new CustomerContactChangedEvent
func NewCustomerContactChangedEvent(customer *Customer) *CustomerContactChangedEvent {
	return &CustomerContactChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerContactChanged, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Phone:           customer.Phone,
		Email:           customer.Email,
	}
}

// CustomerIdentityLinkedEvent is published when a customer is linked to,
// relinked to, or detached from a global identity. A nil GlobalIdentityID
// means the link was cleared.
type CustomerIdentityLinkedEvent struct {
	shared.BaseDomainEvent
	CustomerID       uuid.UUID  `json:"customer_id"`
	GlobalIdentityID *uuid.UUID `json:"global_identity_id,omitempty"`
}

// NewCustomerIdentityLinkedEvent creates a new CustomerIdentityLinkedEvent
func NewCustomerIdentityLinkedEvent(customer *Customer, globalIdentityID *uuid.UUID) *CustomerIdentityLinkedEvent {
	return &CustomerIdentityLinkedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeCustomerIdentityLinked, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:       customer.ID,
		GlobalIdentityID: globalIdentityID,
	}
}

// CustomerDeletedEvent is published when a customer is deleted
type CustomerDeletedEvent struct {
	shared.BaseDomainEvent
	CustomerID uuid.UUID `json:"customer_id"`
	Code       string    `json:"code"`
}

// NewCustomerDeletedEvent creates a new CustomerDeletedEvent
func NewCustomerDeletedEvent(customer *Customer) *CustomerDeletedEvent {
	return &CustomerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerDeleted, AggregateTypeCustomer, customer.ID, customer.TenantID),
		CustomerID:      customer.ID,
		Code:            customer.Code,
	}
}
