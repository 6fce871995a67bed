package integration

import (
	"context"
	"testing"

	partnerapp "github.com/parceldesk/backend/internal/application/partner"
	scoringapp "github.com/parceldesk/backend/internal/application/scoring"
	trackingapp "github.com/parceldesk/backend/internal/application/tracking"
	"github.com/parceldesk/backend/internal/domain/scoring"
	"github.com/parceldesk/backend/internal/domain/shared"
	"github.com/parceldesk/backend/internal/infrastructure/event"
	"github.com/parceldesk/backend/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// flowFixture wires the full application stack the way the server does:
// repositories, services, and the event bus feeding the scoring ledger
type flowFixture struct {
	DB              *TestDB
	CustomerService *partnerapp.CustomerService
	ShipmentService *trackingapp.ShipmentService
	LedgerService   *scoringapp.LedgerService
	Bus             *event.InMemoryEventBus
}

func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()

	testDB := NewTestDB(t)
	logger := zap.NewNop()

	customerRepo := persistence.NewGormCustomerRepository(testDB.DB)
	shipmentRepo := persistence.NewGormShipmentRepository(testDB.DB)
	ledgerRepo := persistence.NewGormLedgerEntryRepository(testDB.DB)

	resolver := newResolutionService(t, testDB)
	ledgerService := scoringapp.NewLedgerService(ledgerRepo, logger)

	bus := event.NewInMemoryEventBus(logger)
	bus.Subscribe(scoringapp.NewShipmentClosedHandler(ledgerService, logger))
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() {
		bus.Stop(context.Background())
	})

	return &flowFixture{
		DB:              testDB,
		CustomerService: partnerapp.NewCustomerService(customerRepo, resolver, logger),
		ShipmentService: trackingapp.NewShipmentService(shipmentRepo, bus, logger),
		LedgerService:   ledgerService,
		Bus:             bus,
	}
}

// TestShipmentFlow_Integration drives the full delivery flow: customer
// creation with identity resolution, shipment lifecycle, and automatic
// scoring through the event bus
func TestShipmentFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newFlowFixture(t)
	ctx := context.Background()
	tenantID := uuid.New()

	customer, err := f.CustomerService.Create(ctx, tenantID, partnerapp.CreateCustomerRequest{
		Code:  "FLOW-01",
		Name:  "Flow Customer",
		Email: "flow@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, customer.GlobalIdentityID)

	t.Run("delivered shipment is scored through the event bus", func(t *testing.T) {
		shipment, err := f.ShipmentService.Create(ctx, tenantID, trackingapp.CreateShipmentRequest{
			CustomerID:     customer.ID,
			TrackingNumber: "FLOW-SF-001",
			Carrier:        "SF Express",
		})
		require.NoError(t, err)
		assert.Equal(t, "PENDING", shipment.Status)

		_, err = f.ShipmentService.Dispatch(ctx, tenantID, shipment.ID)
		require.NoError(t, err)

		delivered, err := f.ShipmentService.MarkDelivered(ctx, tenantID, shipment.ID)
		require.NoError(t, err)
		assert.Equal(t, "DELIVERED", delivered.Status)
		assert.NotNil(t, delivered.ClosedAt)

		// The bus dispatches synchronously, so the entry is already committed
		score, err := f.LedgerService.ScoreFor(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), score)

		history, err := f.LedgerService.History(ctx, customer.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, shipment.ID, history[0].ShipmentID)
		assert.Equal(t, scoring.OutcomeDelivered, history[0].Reason)
	})

	t.Run("returned shipment scores negative", func(t *testing.T) {
		shipment, err := f.ShipmentService.Create(ctx, tenantID, trackingapp.CreateShipmentRequest{
			CustomerID:     customer.ID,
			TrackingNumber: "FLOW-SF-002",
		})
		require.NoError(t, err)

		_, err = f.ShipmentService.Dispatch(ctx, tenantID, shipment.ID)
		require.NoError(t, err)
		_, err = f.ShipmentService.MarkReturned(ctx, tenantID, shipment.ID)
		require.NoError(t, err)

		entry, err := persistence.NewGormLedgerEntryRepository(f.DB.DB).FindByShipment(ctx, shipment.ID)
		require.NoError(t, err)
		assert.Equal(t, -1, entry.Delta)
		assert.Equal(t, scoring.OutcomeReturned, entry.Reason)
	})

	t.Run("cancelled pending shipment scores negative", func(t *testing.T) {
		shipment, err := f.ShipmentService.Create(ctx, tenantID, trackingapp.CreateShipmentRequest{
			CustomerID:     customer.ID,
			TrackingNumber: "FLOW-SF-003",
		})
		require.NoError(t, err)

		cancelled, err := f.ShipmentService.Cancel(ctx, tenantID, shipment.ID)
		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", cancelled.Status)

		entry, err := persistence.NewGormLedgerEntryRepository(f.DB.DB).FindByShipment(ctx, shipment.ID)
		require.NoError(t, err)
		assert.Equal(t, scoring.OutcomeCancelled, entry.Reason)
	})

	t.Run("running score reflects all outcomes", func(t *testing.T) {
		// +1 delivered, -1 returned, -1 cancelled
		score, err := f.LedgerService.ScoreFor(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(-1), score)
	})

	t.Run("duplicate tracking number is rejected", func(t *testing.T) {
		_, err := f.ShipmentService.Create(ctx, tenantID, trackingapp.CreateShipmentRequest{
			CustomerID:     customer.ID,
			TrackingNumber: "FLOW-SF-001",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_TRACKING_NUMBER", domainErr.Code)
	})

	t.Run("terminal shipment refuses further transitions", func(t *testing.T) {
		shipment, err := f.ShipmentService.Create(ctx, tenantID, trackingapp.CreateShipmentRequest{
			CustomerID:     customer.ID,
			TrackingNumber: "FLOW-SF-004",
		})
		require.NoError(t, err)

		_, err = f.ShipmentService.Cancel(ctx, tenantID, shipment.ID)
		require.NoError(t, err)

		_, err = f.ShipmentService.Dispatch(ctx, tenantID, shipment.ID)
		require.Error(t, err)
	})
}

// TestCustomerContactChange_Integration verifies relink and clear semantics
// when contact details change after creation
func TestCustomerContactChange_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newFlowFixture(t)
	ctx := context.Background()
	tenantID := uuid.New()

	customer, err := f.CustomerService.Create(ctx, tenantID, partnerapp.CreateCustomerRequest{
		Code:  "RELINK-01",
		Name:  "Relink Customer",
		Email: "old@example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, customer.GlobalIdentityID)
	oldIdentity := *customer.GlobalIdentityID

	t.Run("changed contact relinks to a new identity", func(t *testing.T) {
		updated, err := f.CustomerService.UpdateContact(ctx, tenantID, customer.ID, partnerapp.UpdateContactRequest{
			Email: "new@example.com",
		})
		require.NoError(t, err)
		require.NotNil(t, updated.GlobalIdentityID)
		assert.NotEqual(t, oldIdentity, *updated.GlobalIdentityID)
	})

	t.Run("clearing contact details clears the link", func(t *testing.T) {
		updated, err := f.CustomerService.UpdateContact(ctx, tenantID, customer.ID, partnerapp.UpdateContactRequest{
			ContactName: "Still Known",
		})
		require.NoError(t, err)
		assert.Nil(t, updated.GlobalIdentityID)
	})
}
