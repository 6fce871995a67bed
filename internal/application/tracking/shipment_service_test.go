package tracking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/shared"
	"github.com/parceldesk/backend/internal/domain/tracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockShipmentRepository is a mock implementation of ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*tracking.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*tracking.Shipment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByTrackingNumber(ctx context.Context, tenantID uuid.UUID, trackingNumber string) (*tracking.Shipment, error) {
	args := m.Called(ctx, tenantID, trackingNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tracking.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]tracking.Shipment, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]tracking.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) Save(ctx context.Context, shipment *tracking.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

// capturingPublisher records every published event
type capturingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
	err    error
}

func (p *capturingPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) Events() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

func newPendingShipment(t *testing.T, tenantID uuid.UUID) *tracking.Shipment {
	t.Helper()
	shipment, err := tracking.NewShipment(tenantID, uuid.New(), "SF1234567890", "SF Express")
	require.NoError(t, err)
	return shipment
}

func TestShipmentServiceCreate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("creates pending shipment", func(t *testing.T) {
		repo := new(MockShipmentRepository)
		service := NewShipmentService(repo, &capturingPublisher{}, zap.NewNop())

		repo.On("FindByTrackingNumber", ctx, tenantID, "SF1234567890").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*tracking.Shipment")).Return(nil)

		resp, err := service.Create(ctx, tenantID, CreateShipmentRequest{
			CustomerID:     uuid.New(),
			TrackingNumber: "SF1234567890",
			Carrier:        "SF Express",
		})

		require.NoError(t, err)
		assert.Equal(t, string(tracking.ShipmentStatusPending), resp.Status)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate tracking number", func(t *testing.T) {
		repo := new(MockShipmentRepository)
		service := NewShipmentService(repo, &capturingPublisher{}, zap.NewNop())
		existing := newPendingShipment(t, tenantID)

		repo.On("FindByTrackingNumber", ctx, tenantID, "SF1234567890").Return(existing, nil)

		resp, err := service.Create(ctx, tenantID, CreateShipmentRequest{
			CustomerID:     uuid.New(),
			TrackingNumber: "SF1234567890",
		})

		assert.Nil(t, resp)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "DUPLICATE_TRACKING_NUMBER", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestShipmentServiceTransitions(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("dispatch publishes no events", func(t *testing.T) {
		repo := new(MockShipmentRepository)
		publisher := &capturingPublisher{}
		service := NewShipmentService(repo, publisher, zap.NewNop())
		shipment := newPendingShipment(t, tenantID)

		repo.On("FindByIDForTenant", ctx, tenantID, shipment.ID).Return(shipment, nil)
		repo.On("Save", ctx, shipment).Return(nil)

		resp, err := service.Dispatch(ctx, tenantID, shipment.ID)

		require.NoError(t, err)
		assert.Equal(t, string(tracking.ShipmentStatusInTransit), resp.Status)
		assert.Empty(t, publisher.Events())
	})

	t.Run("deliver publishes the delivered event", func(t *testing.T) {
		repo := new(MockShipmentRepository)
		publisher := &capturingPublisher{}
		service := NewShipmentService(repo, publisher, zap.NewNop())
		shipment := newPendingShipment(t, tenantID)
		require.NoError(t, shipment.Dispatch())

		repo.On("FindByIDForTenant", ctx, tenantID, shipment.ID).Return(shipment, nil)
		repo.On("Save", ctx, shipment).Return(nil)

		resp, err := service.MarkDelivered(ctx, tenantID, shipment.ID)

		require.NoError(t, err)
		assert.Equal(t, string(tracking.ShipmentStatusDelivered), resp.Status)
		assert.NotNil(t, resp.ClosedAt)

		events := publisher.Events()
		require.Len(t, events, 1)
		assert.Equal(t, tracking.EventTypeShipmentDelivered, events[0].EventType())
		assert.Empty(t, shipment.GetDomainEvents(), "events must be cleared after publishing")
	})

	t.Run("return and cancel publish their events", func(t *testing.T) {
		repo := new(MockShipmentRepository)
		publisher := &capturingPublisher{}
		service := NewShipmentService(repo, publisher, zap.NewNop())

		returned := newPendingShipment(t, tenantID)
		require.NoError(t, returned.Dispatch())
		repo.On("FindByIDForTenant", ctx, tenantID, returned.ID).Return(returned, nil)
		repo.On("Save", ctx, returned).Return(nil)

		_, err := service.MarkReturned(ctx, tenantID, returned.ID)
		require.NoError(t, err)

		cancelled := newPendingShipment(t, tenantID)
		repo.On("FindByIDForTenant", ctx, tenantID, cancelled.ID).Return(cancelled, nil)
		repo.On("Save", ctx, cancelled).Return(nil)

		_, err = service.Cancel(ctx, tenantID, cancelled.ID)
		require.NoError(t, err)

		events := publisher.Events()
		require.Len(t, events, 2)
		assert.Equal(t, tracking.EventTypeShipmentReturned, events[0].EventType())
		assert.Equal(t, tracking.EventTypeShipmentCancelled, events[1].EventType())
	})

	t.Run("invalid transition surfaces the domain error", func(t *testing.T) {
		repo := new(MockShipmentRepository)
		publisher := &capturingPublisher{}
		service := NewShipmentService(repo, publisher, zap.NewNop())
		shipment := newPendingShipment(t, tenantID)

		repo.On("FindByIDForTenant", ctx, tenantID, shipment.ID).Return(shipment, nil)

		resp, err := service.MarkDelivered(ctx, tenantID, shipment.ID)

		assert.Nil(t, resp)
		assert.Error(t, err)
		assert.Empty(t, publisher.Events())
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("save failure does not publish", func(t *testing.T) {
		repo := new(MockShipmentRepository)
		publisher := &capturingPublisher{}
		service := NewShipmentService(repo, publisher, zap.NewNop())
		shipment := newPendingShipment(t, tenantID)
		require.NoError(t, shipment.Dispatch())

		repo.On("FindByIDForTenant", ctx, tenantID, shipment.ID).Return(shipment, nil)
		repo.On("Save", ctx, shipment).Return(errors.New("connection reset"))

		resp, err := service.MarkDelivered(ctx, tenantID, shipment.ID)

		assert.Nil(t, resp)
		assert.Error(t, err)
		assert.Empty(t, publisher.Events())
	})
}

func TestShipmentServiceList(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	repo := new(MockShipmentRepository)
	service := NewShipmentService(repo, &capturingPublisher{}, zap.NewNop())
	shipment := newPendingShipment(t, tenantID)

	repo.On("FindAllForTenant", ctx, tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Search == string(tracking.ShipmentStatusPending) && f.Page == 1 && f.PageSize == 20
	})).Return([]tracking.Shipment{*shipment}, nil)

	resp, err := service.List(ctx, tenantID, ShipmentListFilter{Status: string(tracking.ShipmentStatusPending)})

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, shipment.TrackingNumber, resp[0].TrackingNumber)
}
