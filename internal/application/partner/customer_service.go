package partner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/identity"
	"github.com/parceldesk/backend/internal/domain/partner"
	"github.com/parceldesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdentityResolver resolves contact details to a global identity. Satisfied
// by the identity application service.
type IdentityResolver interface {
	FindOrCreateGlobalIdentity(ctx context.Context, email, phone string) (*identity.GlobalIdentity, error)
}

// CustomerService handles customer-related business operations. Every write
// that touches the identifying contact fields re-runs identity resolution
// before the customer row is persisted.
type CustomerService struct {
	customerRepo partner.CustomerRepository
	resolver     IdentityResolver
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository, resolver IdentityResolver, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		resolver:     resolver,
		logger:       logger,
	}
}

// Create creates a new customer and, when contact details are present,
// links it to its global identity.
func (s *CustomerService) Create(ctx context.Context, tenantID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByCode(ctx, tenantID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this code already exists")
	}

	customer, err := partner.NewCustomer(tenantID, req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Phone != "" || req.Email != "" {
		if _, err := customer.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.resolveIdentity(ctx, customer); err != nil {
		return nil, err
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// UpdateContact changes a customer's contact details. The global identity
// link is recomputed before the write is persisted; when both identifiers
// become empty the link is cleared rather than pointed at a shared "empty"
// identity.
func (s *CustomerService) UpdateContact(ctx context.Context, tenantID, customerID uuid.UUID, req UpdateContactRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	changed, err := customer.SetContact(req.ContactName, req.Phone, req.Email)
	if err != nil {
		return nil, err
	}

	if changed {
		if err := s.resolveIdentity(ctx, customer); err != nil {
			return nil, err
		}
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves a page of customers for a tenant
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	customers, err := s.customerRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.customerRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses, total, nil
}

// Delete removes a customer. Its ledger history stays behind, detached by
// the storage layer's set-null reference.
func (s *CustomerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	return s.customerRepo.DeleteForTenant(ctx, tenantID, customerID)
}

// resolveIdentity recomputes the customer's global identity link from its
// current contact fields.
func (s *CustomerService) resolveIdentity(ctx context.Context, customer *partner.Customer) error {
	if !customer.HasContact() {
		customer.ClearGlobalIdentity()
		return nil
	}

	gi, err := s.resolver.FindOrCreateGlobalIdentity(ctx, customer.Email, customer.Phone)
	if err != nil {
		// Raw values that normalize to nothing (e.g. a phone of "---") are
		// treated the same as absent contact details.
		if errors.Is(err, identity.ErrEmptyIdentity) {
			customer.ClearGlobalIdentity()
			return nil
		}
		return err
	}

	customer.LinkGlobalIdentity(gi.ID)

	s.logger.Debug("customer linked to global identity",
		zap.String("customer_id", customer.ID.String()),
		zap.String("global_identity_id", gi.ID.String()),
	)

	return nil
}
