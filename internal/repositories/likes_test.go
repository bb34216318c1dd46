package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/sjbrooks/Warbler/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestLikeRepositories(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	writeRepo := NewLikeWriteRepository(db, nil)
	readRepo := NewLikeReadRepository(db, nil)
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	fan := seedAccount(t, db, "fan")
	author := seedAccount(t, db, "author")

	older := seedMessage(t, db, author.ID, "older", base)
	newer := seedMessage(t, db, author.ID, "newer", base.Add(time.Hour))
	own := seedMessage(t, db, fan.ID, "own", base.Add(2*time.Hour))

	t.Run("Create", func(t *testing.T) {
		assert.NoError(t, writeRepo.Create(ctx, fan.ID, older.ID))
		assert.NoError(t, writeRepo.Create(ctx, fan.ID, newer.ID))
	})

	t.Run("Create duplicate", func(t *testing.T) {
		assert.ErrorIs(t, writeRepo.Create(ctx, fan.ID, older.ID), models.ErrAlreadyLiked)
		assert.Equal(t, 2, countRows(t, db, "SELECT COUNT(*) FROM likes"))
	})

	t.Run("Create own message is allowed", func(t *testing.T) {
		assert.NoError(t, writeRepo.Create(ctx, fan.ID, own.ID))
	})

	t.Run("Create for missing message", func(t *testing.T) {
		assert.ErrorIs(t, writeRepo.Create(ctx, fan.ID, 999999), models.ErrMessageNotFound)
	})

	t.Run("MessageIDs and Messages", func(t *testing.T) {
		ids, err := readRepo.MessageIDs(ctx, fan.ID)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []int64{older.ID, newer.ID, own.ID}, ids)

		messages, err := readRepo.Messages(ctx, fan.ID)
		assert.NoError(t, err)
		assert.Equal(t, []int64{own.ID, newer.ID, older.ID}, messageIDs(messages))

		none, err := readRepo.MessageIDs(ctx, author.ID)
		assert.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Delete", func(t *testing.T) {
		assert.NoError(t, writeRepo.Delete(ctx, fan.ID, older.ID))
		assert.ErrorIs(t, writeRepo.Delete(ctx, fan.ID, older.ID), models.ErrNotLiked)
	})

	t.Run("Deleting the message drops its likes", func(t *testing.T) {
		assert.NoError(t, NewMessageWriteRepository(db, nil).Delete(ctx, newer.ID, author.ID))

		ids, err := readRepo.MessageIDs(ctx, fan.ID)
		assert.NoError(t, err)
		assert.Equal(t, []int64{own.ID}, ids)
	})
}
