//go:build integration

package member

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "taxiassoc/pkg/errors"
	"taxiassoc/pkg/testutil/containers"
)

func TestPostgresStore(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	store := NewPostgresStore(pc.DB)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	m := &Member{
		Name:          "Sipho",
		ContactNumber: "0821234567",
		SquadNumber:   "SQ-1",
		JoinedAt:      now,
		CreatedBy:     "secretary1",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.Create(ctx, m))
	require.NotZero(t, m.ID)

	t.Run("duplicate squad number conflicts", func(t *testing.T) {
		dup := &Member{
			Name:          "Thabo",
			ContactNumber: "0837654321",
			SquadNumber:   "SQ-1",
			JoinedAt:      now,
			CreatedBy:     "secretary1",
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		err := store.Create(ctx, dup)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("find by id", func(t *testing.T) {
		found, err := store.FindByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sipho", found.Name)
		assert.Equal(t, "SQ-1", found.SquadNumber)
	})

	t.Run("find by squad number", func(t *testing.T) {
		found, err := store.FindBySquadNumber(ctx, "SQ-1")
		require.NoError(t, err)
		assert.Equal(t, m.ID, found.ID)
	})

	t.Run("update and blacklist filter", func(t *testing.T) {
		m.Blacklisted = true
		m.UpdatedBy = "chairperson1"
		m.UpdatedAt = now.Add(time.Hour)
		require.NoError(t, store.Update(ctx, m))

		blacklisted, err := store.ListByBlacklisted(ctx, true)
		require.NoError(t, err)
		require.Len(t, blacklisted, 1)
		assert.Equal(t, m.ID, blacklisted[0].ID)

		active, err := store.CountActive(ctx)
		require.NoError(t, err)
		assert.Zero(t, active)
	})

	t.Run("search by name", func(t *testing.T) {
		found, err := store.SearchByName(ctx, "sip")
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, m.ID))
		_, err := store.FindByID(ctx, m.ID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("missing record", func(t *testing.T) {
		_, err := store.FindByID(ctx, 9999)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
		assert.Error(t, store.Delete(ctx, 9999))
	})
}
