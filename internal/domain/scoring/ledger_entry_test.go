package scoring

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcomeReason(t *testing.T) {
	t.Run("valid reasons", func(t *testing.T) {
		assert.True(t, OutcomeDelivered.IsValid())
		assert.True(t, OutcomeReturned.IsValid())
		assert.True(t, OutcomeCancelled.IsValid())
	})

	t.Run("invalid reasons", func(t *testing.T) {
		assert.False(t, OutcomeReason("").IsValid())
		assert.False(t, OutcomeReason("lost").IsValid())
		assert.False(t, OutcomeReason("DELIVERED").IsValid())
	})

	t.Run("deltas are fixed per reason", func(t *testing.T) {
		assert.Equal(t, 1, OutcomeDelivered.Delta())
		assert.Equal(t, -1, OutcomeReturned.Delta())
		assert.Equal(t, -1, OutcomeCancelled.Delta())
	})
}

func TestNewLedgerEntry(t *testing.T) {
	shipmentID := uuid.New()
	customerID := uuid.New()
	tenantID := uuid.New()

	t.Run("creates entry with derived delta", func(t *testing.T) {
		entry, err := NewLedgerEntry(shipmentID, customerID, tenantID, OutcomeDelivered)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.Equal(t, shipmentID, entry.ShipmentID)
		assert.Equal(t, customerID, entry.CustomerID)
		assert.Equal(t, tenantID, entry.TenantID)
		assert.Equal(t, 1, entry.Delta)
		assert.Equal(t, OutcomeDelivered, entry.Reason)
		assert.False(t, entry.CreatedAt.IsZero())
	})

	t.Run("negative outcomes carry minus one", func(t *testing.T) {
		for _, reason := range []OutcomeReason{OutcomeReturned, OutcomeCancelled} {
			entry, err := NewLedgerEntry(shipmentID, customerID, tenantID, reason)

			require.NoError(t, err)
			assert.Equal(t, -1, entry.Delta)
		}
	})

	t.Run("rejects unknown reason", func(t *testing.T) {
		entry, err := NewLedgerEntry(shipmentID, customerID, tenantID, OutcomeReason("lost"))

		assert.Nil(t, entry)
		assert.True(t, errors.Is(err, ErrInvalidReason))
	})

	t.Run("rejects nil shipment", func(t *testing.T) {
		entry, err := NewLedgerEntry(uuid.Nil, customerID, tenantID, OutcomeDelivered)

		assert.Nil(t, entry)
		assert.Error(t, err)
	})

	t.Run("rejects nil customer", func(t *testing.T) {
		entry, err := NewLedgerEntry(shipmentID, uuid.Nil, tenantID, OutcomeDelivered)

		assert.Nil(t, entry)
		assert.Error(t, err)
	})

	t.Run("rejects nil tenant", func(t *testing.T) {
		entry, err := NewLedgerEntry(shipmentID, customerID, uuid.Nil, OutcomeDelivered)

		assert.Nil(t, entry)
		assert.Error(t, err)
	})
}
