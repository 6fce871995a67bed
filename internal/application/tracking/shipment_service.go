package tracking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/shared"
	"github.com/parceldesk/backend/internal/domain/tracking"
	"go.uber.org/zap"
)

// ShipmentService drives the shipment lifecycle. Terminal transitions
// publish the domain events that feed the delivery scoring ledger.
type ShipmentService struct {
	shipmentRepo   tracking.ShipmentRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(
	shipmentRepo tracking.ShipmentRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *ShipmentService {
	return &ShipmentService{
		shipmentRepo:   shipmentRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Create registers a new pending shipment for a customer
func (s *ShipmentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateShipmentRequest) (*ShipmentResponse, error) {
	existing, err := s.shipmentRepo.FindByTrackingNumber(ctx, tenantID, req.TrackingNumber)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("DUPLICATE_TRACKING_NUMBER", "A shipment with this tracking number already exists")
	}

	shipment, err := tracking.NewShipment(tenantID, req.CustomerID, req.TrackingNumber, req.Carrier)
	if err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	s.logger.Info("shipment created",
		zap.String("shipment_id", shipment.ID.String()),
		zap.String("tracking_number", shipment.TrackingNumber),
		zap.String("customer_id", shipment.CustomerID.String()),
	)

	response := ToShipmentResponse(shipment)
	return &response, nil
}

// Dispatch moves a pending shipment into transit
func (s *ShipmentService) Dispatch(ctx context.Context, tenantID, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	return s.applyTransition(ctx, tenantID, shipmentID, (*tracking.Shipment).Dispatch)
}

// MarkDelivered closes a shipment as delivered and publishes the
// corresponding domain event
func (s *ShipmentService) MarkDelivered(ctx context.Context, tenantID, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	return s.applyTransition(ctx, tenantID, shipmentID, (*tracking.Shipment).MarkDelivered)
}

// MarkReturned closes a shipment as returned to sender
func (s *ShipmentService) MarkReturned(ctx context.Context, tenantID, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	return s.applyTransition(ctx, tenantID, shipmentID, (*tracking.Shipment).MarkReturned)
}

// Cancel closes a shipment as cancelled
func (s *ShipmentService) Cancel(ctx context.Context, tenantID, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	return s.applyTransition(ctx, tenantID, shipmentID, (*tracking.Shipment).Cancel)
}

// GetByID retrieves a shipment within a tenant
func (s *ShipmentService) GetByID(ctx context.Context, tenantID, shipmentID uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByIDForTenant(ctx, tenantID, shipmentID)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// List retrieves shipments for a tenant with pagination
func (s *ShipmentService) List(ctx context.Context, tenantID uuid.UUID, filter ShipmentListFilter) ([]ShipmentResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Status,
	}

	shipments, err := s.shipmentRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		responses[i] = ToShipmentResponse(&shipments[i])
	}
	return responses, nil
}

func (s *ShipmentService) applyTransition(ctx context.Context, tenantID, shipmentID uuid.UUID, transition func(*tracking.Shipment) error) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByIDForTenant(ctx, tenantID, shipmentID)
	if err != nil {
		return nil, err
	}

	if err := transition(shipment); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, shipment)

	s.logger.Info("shipment status changed",
		zap.String("shipment_id", shipment.ID.String()),
		zap.String("status", shipment.Status.String()),
	)

	response := ToShipmentResponse(shipment)
	return &response, nil
}

func (s *ShipmentService) publishEvents(ctx context.Context, shipment *tracking.Shipment) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range shipment.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish shipment event",
				zap.String("shipment_id", shipment.ID.String()),
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	shipment.ClearDomainEvents()
}
