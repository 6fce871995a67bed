package scoring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/parceldesk/backend/internal/domain/scoring"
	"github.com/parceldesk/backend/internal/domain/shared"
	"github.com/parceldesk/backend/internal/domain/tracking"
	"go.uber.org/zap"
)

// ShipmentClosedHandler reacts to terminal shipment events by appending
// the corresponding delivery outcome to the scoring ledger
type ShipmentClosedHandler struct {
	ledgerService *LedgerService
	logger        *zap.Logger
}

// NewShipmentClosedHandler creates a new handler for terminal shipment events
func NewShipmentClosedHandler(ledgerService *LedgerService, logger *zap.Logger) *ShipmentClosedHandler {
	return &ShipmentClosedHandler{
		ledgerService: ledgerService,
		logger:        logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ShipmentClosedHandler) EventTypes() []string {
	return []string{
		tracking.EventTypeShipmentDelivered,
		tracking.EventTypeShipmentReturned,
		tracking.EventTypeShipmentCancelled,
	}
}

// Handle appends a ledger entry for the shipment's terminal outcome.
// Redelivered events are absorbed: an already scored shipment is not an
// error from the bus's point of view.
func (h *ShipmentClosedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var (
		shipmentID uuid.UUID
		customerID uuid.UUID
		reason     scoring.OutcomeReason
	)

	switch e := event.(type) {
	case *tracking.ShipmentDeliveredEvent:
		shipmentID, customerID, reason = e.ShipmentID, e.CustomerID, scoring.OutcomeDelivered
	case *tracking.ShipmentReturnedEvent:
		shipmentID, customerID, reason = e.ShipmentID, e.CustomerID, scoring.OutcomeReturned
	case *tracking.ShipmentCancelledEvent:
		shipmentID, customerID, reason = e.ShipmentID, e.CustomerID, scoring.OutcomeCancelled
	default:
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}

	entry, err := h.ledgerService.AppendOutcome(ctx, shipmentID, customerID, event.TenantID(), reason)
	if err != nil {
		if errors.Is(err, scoring.ErrAlreadyScored) {
			h.logger.Warn("shipment already scored, skipping",
				zap.String("shipment_id", shipmentID.String()),
				zap.String("entry_id", entry.ID.String()),
				zap.String("reason", reason.String()),
			)
			return nil
		}
		h.logger.Error("failed to score shipment outcome",
			zap.String("shipment_id", shipmentID.String()),
			zap.String("reason", reason.String()),
			zap.Error(err),
		)
		return fmt.Errorf("failed to score shipment outcome: %w", err)
	}

	h.logger.Info("shipment outcome recorded in ledger",
		zap.String("shipment_id", shipmentID.String()),
		zap.String("customer_id", customerID.String()),
		zap.String("entry_id", entry.ID.String()),
		zap.Int("delta", entry.Delta),
	)

	return nil
}

// Ensure ShipmentClosedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ShipmentClosedHandler)(nil)
