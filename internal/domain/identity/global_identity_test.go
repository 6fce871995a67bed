package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGlobalIdentity(t *testing.T) {
	t.Run("creates identity with contact snapshot", func(t *testing.T) {
		gi, err := NewGlobalIdentity("abc123", "alice@example.com", "13800138000")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, gi.ID)
		assert.Equal(t, "abc123", gi.Fingerprint)
		assert.Equal(t, "alice@example.com", gi.LastSeenEmail)
		assert.Equal(t, "13800138000", gi.LastSeenPhone)
	})

	t.Run("fails with empty fingerprint", func(t *testing.T) {
		gi, err := NewGlobalIdentity("", "alice@example.com", "")

		assert.Error(t, err)
		assert.Nil(t, gi)
	})
}

func TestGlobalIdentityRecordSighting(t *testing.T) {
	gi, err := NewGlobalIdentity("abc123", "alice@example.com", "")
	require.NoError(t, err)

	gi.RecordSighting("alice@example.com", "13800138000")

	assert.Equal(t, "abc123", gi.Fingerprint)
	assert.Equal(t, "alice@example.com", gi.LastSeenEmail)
	assert.Equal(t, "13800138000", gi.LastSeenPhone)
}
