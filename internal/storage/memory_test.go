package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"filmorate-go/internal/models"
)

func TestMemoryFriendshipRepositoryIsSymmetric(t *testing.T) {
	repo := NewMemoryFriendshipRepository()
	ctx := context.Background()

	friendship := models.Friendship{UserID1: 5, UserID2: 2}
	friendship.EnsureCanonicalOrder()
	require.NoError(t, repo.Create(ctx, &friendship))

	// A single row answers for both directions.
	ok, err := repo.AreUsersFriends(ctx, 2, 5)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.AreUsersFriends(ctx, 5, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ids, err := repo.GetFriendIDs(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, ids)
	ids, err = repo.GetFriendIDs(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, ids)
}

func TestMemoryFriendshipRepositoryDeleteEitherOrder(t *testing.T) {
	repo := NewMemoryFriendshipRepository()
	ctx := context.Background()

	friendship := models.Friendship{UserID1: 1, UserID2: 9}
	require.NoError(t, repo.Create(ctx, &friendship))
	require.NoError(t, repo.Delete(ctx, 9, 1))

	ok, err := repo.AreUsersFriends(ctx, 1, 9)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryLikeRepositoryCounts(t *testing.T) {
	repo := NewMemoryLikeRepository()
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, 1, 10))
	require.NoError(t, repo.Add(ctx, 1, 11))
	require.NoError(t, repo.Add(ctx, 1, 11)) // duplicate, must not double count
	require.NoError(t, repo.Add(ctx, 2, 10))

	count, err := repo.CountForFilm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	counts, err := repo.CountsByFilm(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[uint]int64{1: 2, 2: 1}, counts)

	ids, err := repo.UserIDsForFilm(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{10, 11}, ids)

	require.NoError(t, repo.DeleteForFilm(ctx, 1))
	count, err = repo.CountForFilm(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryUserRepositoryCRUD(t *testing.T) {
	repo := NewMemoryUserRepository()
	ctx := context.Background()

	user := &models.User{Email: "a@b.c", Login: "alice", Name: "Alice", Birthday: models.NewDate(1990, time.March, 3)}
	require.NoError(t, repo.Create(ctx, user))
	assert.Equal(t, uint(1), user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Login)

	got.Name = "Alice B"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", got.Name)

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMemoryCatalogsSeeded(t *testing.T) {
	ctx := context.Background()

	genres, err := NewMemoryGenreRepository().List(ctx)
	require.NoError(t, err)
	require.Len(t, genres, 6)
	assert.Equal(t, "Comedy", genres[0].Name)

	ratings, err := NewMemoryMpaRepository().List(ctx)
	require.NoError(t, err)
	require.Len(t, ratings, 5)
	assert.Equal(t, "NC-17", ratings[4].Name)

	rating, err := NewMemoryMpaRepository().GetByID(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "PG-13", rating.Name)

	_, err = NewMemoryGenreRepository().GetByID(ctx, 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
