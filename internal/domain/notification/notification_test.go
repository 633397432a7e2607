package notification

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotification(t *testing.T) *Notification {
	t.Helper()
	n, err := NewNotification(uuid.New(), uuid.New(), TypeQuoteAccepted, PriorityHigh,
		"Angebot angenommen", "Meier GmbH hat das Angebot A-2026-0001 angenommen")
	require.NoError(t, err)
	return n
}

func TestNewNotification(t *testing.T) {
	t.Run("creates an unread notification", func(t *testing.T) {
		n := newNotification(t)

		assert.False(t, n.Read)
		assert.False(t, n.Archived)
		assert.Nil(t, n.ReadAt)
		assert.Equal(t, PriorityHigh, n.Priority)
	})

	t.Run("falls back to normal priority for unknown values", func(t *testing.T) {
		n, err := NewNotification(uuid.New(), uuid.New(), TypeSystem, Priority("SHOUTING"), "Wartung", "")
		require.NoError(t, err)
		assert.Equal(t, PriorityNormal, n.Priority)
	})

	t.Run("rejects a missing recipient or title", func(t *testing.T) {
		_, err := NewNotification(uuid.New(), uuid.Nil, TypeSystem, PriorityNormal, "Wartung", "")
		assert.Error(t, err)
		_, err = NewNotification(uuid.New(), uuid.New(), TypeSystem, PriorityNormal, "", "")
		assert.Error(t, err)
	})
}

func TestNotification_MarkRead(t *testing.T) {
	n := newNotification(t)

	n.MarkRead()
	require.True(t, n.Read)
	require.NotNil(t, n.ReadAt)
	firstRead := *n.ReadAt

	// marking again keeps the original timestamp
	n.MarkRead()
	assert.Equal(t, firstRead, *n.ReadAt)
}

func TestNotification_Archive(t *testing.T) {
	n := newNotification(t)

	n.Archive()
	assert.True(t, n.Archived)
}

func TestNotification_Expiry(t *testing.T) {
	t.Run("without an expiry the notification never expires", func(t *testing.T) {
		n := newNotification(t)
		assert.False(t, n.IsExpired(time.Now().AddDate(1, 0, 0)))
	})

	t.Run("expires once the deadline passes", func(t *testing.T) {
		n := newNotification(t)
		n.ExpireAfter(30 * 24 * time.Hour)

		assert.False(t, n.IsExpired(time.Now()))
		assert.True(t, n.IsExpired(time.Now().Add(31*24*time.Hour)))
	})
}

func TestNotification_Relate(t *testing.T) {
	n := newNotification(t)
	quoteID := uuid.New()

	n.Relate("Quote", quoteID)

	assert.Equal(t, "Quote", n.EntityType)
	require.NotNil(t, n.EntityID)
	assert.Equal(t, quoteID, *n.EntityID)
}
