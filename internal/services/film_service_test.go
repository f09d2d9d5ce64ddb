package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmorate-go/internal/models"
)

func rankedNames(films []models.Film) []string {
	names := make([]string, 0, len(films))
	for _, film := range films {
		names = append(names, film.Name)
	}
	return names
}

func TestAddLikeIsIdempotent(t *testing.T) {
	f := newServiceFixture()
	film := f.mustCreateFilm(t, "Heat")
	user := f.mustCreateUser(t, "alice")

	ctx := context.Background()
	require.NoError(t, f.films.AddLike(ctx, film.ID, user.ID))
	require.NoError(t, f.films.AddLike(ctx, film.ID, user.ID))

	count, err := f.likes.CountForFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRemoveLikeAbsentIsNoOp(t *testing.T) {
	f := newServiceFixture()
	film := f.mustCreateFilm(t, "Heat")
	user := f.mustCreateUser(t, "alice")

	assert.NoError(t, f.films.RemoveLike(context.Background(), film.ID, user.ID))
}

func TestLikeUnknownIDsFail(t *testing.T) {
	f := newServiceFixture()
	film := f.mustCreateFilm(t, "Heat")
	user := f.mustCreateUser(t, "alice")

	ctx := context.Background()
	assert.ErrorIs(t, f.films.AddLike(ctx, 9999, user.ID), ErrFilmNotFound)
	assert.ErrorIs(t, f.films.AddLike(ctx, film.ID, 9999), ErrUserNotFound)
	assert.ErrorIs(t, f.films.RemoveLike(ctx, 9999, user.ID), ErrFilmNotFound)
	assert.ErrorIs(t, f.films.RemoveLike(ctx, film.ID, 9999), ErrUserNotFound)
}

func TestTopFilmsStableTieBreak(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	// Catalog order: F1 (0 likes), F2 (3), F3 (3), F4 (1).
	f1 := f.mustCreateFilm(t, "F1")
	f2 := f.mustCreateFilm(t, "F2")
	f3 := f.mustCreateFilm(t, "F3")
	f4 := f.mustCreateFilm(t, "F4")
	_ = f1

	fans := []*models.User{
		f.mustCreateUser(t, "u1"),
		f.mustCreateUser(t, "u2"),
		f.mustCreateUser(t, "u3"),
	}
	for _, fan := range fans {
		require.NoError(t, f.films.AddLike(ctx, f2.ID, fan.ID))
		require.NoError(t, f.films.AddLike(ctx, f3.ID, fan.ID))
	}
	require.NoError(t, f.films.AddLike(ctx, f4.ID, fans[0].ID))

	top, err := f.films.GetTopFilms(ctx, 10)
	require.NoError(t, err)
	// F2 before F3: equal like counts keep catalog order.
	assert.Equal(t, []string{"F2", "F3", "F4", "F1"}, rankedNames(top))
}

func TestTopFilmsTruncation(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	var fans []*models.User
	for _, login := range []string{"u1", "u2", "u3", "u4", "u5"} {
		fans = append(fans, f.mustCreateUser(t, login))
	}
	// Five films with distinct like counts 5,4,3,2,1 in catalog order.
	for i, name := range []string{"A", "B", "C", "D", "E"} {
		film := f.mustCreateFilm(t, name)
		for _, fan := range fans[:5-i] {
			require.NoError(t, f.films.AddLike(ctx, film.ID, fan.ID))
		}
	}

	top, err := f.films.GetTopFilms(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, rankedNames(top))
}

func TestTopFilmsCountBeyondCatalogReturnsAll(t *testing.T) {
	f := newServiceFixture()
	f.mustCreateFilm(t, "A")
	f.mustCreateFilm(t, "B")

	top, err := f.films.GetTopFilms(context.Background(), 100)
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func TestTopFilmsNonPositiveCountIsEmpty(t *testing.T) {
	f := newServiceFixture()
	f.mustCreateFilm(t, "A")

	for _, count := range []int{0, -1} {
		top, err := f.films.GetTopFilms(context.Background(), count)
		require.NoError(t, err)
		assert.Empty(t, top)
	}
}

func TestTopFilmsEmptyCatalog(t *testing.T) {
	f := newServiceFixture()
	top, err := f.films.GetTopFilms(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestDeleteFilmCascadesLikes(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()
	film := f.mustCreateFilm(t, "Heat")
	user := f.mustCreateUser(t, "alice")
	require.NoError(t, f.films.AddLike(ctx, film.ID, user.ID))

	require.NoError(t, f.films.Delete(ctx, film.ID))

	count, err := f.likes.CountForFilm(ctx, film.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
	_, err = f.films.GetByID(ctx, film.ID)
	assert.ErrorIs(t, err, ErrFilmNotFound)
}

func TestAddLikePublishesActivityEvent(t *testing.T) {
	f := newServiceFixture()
	film := f.mustCreateFilm(t, "Heat")
	user := f.mustCreateUser(t, "alice")

	require.NoError(t, f.films.AddLike(context.Background(), film.ID, user.ID))

	events := f.producer.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, user.ID, events[0].UserID)
	assert.Equal(t, models.FeedEventLike, events[0].EntityType)
	assert.Equal(t, models.FeedOperationAdd, events[0].Operation)
	assert.Equal(t, film.ID, events[0].EntityID)
}

func TestCreateFilmValidation(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	valid := func() models.Film {
		return models.Film{
			Name:        "Heat",
			Description: "heist drama",
			ReleaseDate: models.NewDate(1995, time.December, 15),
			Duration:    170,
			Mpa:         models.MpaRating{ID: 4},
		}
	}

	t.Run("empty name", func(t *testing.T) {
		film := valid()
		film.Name = ""
		_, err := f.films.Create(ctx, &film)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("description over limit", func(t *testing.T) {
		film := valid()
		long := make([]rune, maxDescriptionLength+1)
		for i := range long {
			long[i] = 'x'
		}
		film.Description = string(long)
		_, err := f.films.Create(ctx, &film)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("description at limit is fine", func(t *testing.T) {
		film := valid()
		exact := make([]rune, maxDescriptionLength)
		for i := range exact {
			exact[i] = 'x'
		}
		film.Description = string(exact)
		_, err := f.films.Create(ctx, &film)
		assert.NoError(t, err)
	})

	t.Run("release before first film ever", func(t *testing.T) {
		film := valid()
		film.ReleaseDate = models.NewDate(1895, time.December, 27)
		_, err := f.films.Create(ctx, &film)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("release on the boundary date is fine", func(t *testing.T) {
		film := valid()
		film.ReleaseDate = models.NewDate(1895, time.December, 28)
		_, err := f.films.Create(ctx, &film)
		assert.NoError(t, err)
	})

	t.Run("non-positive duration", func(t *testing.T) {
		film := valid()
		film.Duration = 0
		_, err := f.films.Create(ctx, &film)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing mpa", func(t *testing.T) {
		film := valid()
		film.Mpa = models.MpaRating{}
		_, err := f.films.Create(ctx, &film)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown mpa", func(t *testing.T) {
		film := valid()
		film.Mpa = models.MpaRating{ID: 42}
		_, err := f.films.Create(ctx, &film)
		assert.ErrorIs(t, err, ErrMpaNotFound)
	})

	t.Run("unknown genre", func(t *testing.T) {
		film := valid()
		film.Genres = []models.Genre{{ID: 42}}
		_, err := f.films.Create(ctx, &film)
		assert.ErrorIs(t, err, ErrGenreNotFound)
	})
}

func TestCreateFilmResolvesCatalogsAndDropsDuplicateGenres(t *testing.T) {
	f := newServiceFixture()
	film, err := f.films.Create(context.Background(), &models.Film{
		Name:        "Heat",
		ReleaseDate: models.NewDate(1995, time.December, 15),
		Duration:    170,
		Mpa:         models.MpaRating{ID: 4},
		Genres:      []models.Genre{{ID: 2}, {ID: 4}, {ID: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, "R", film.Mpa.Name)
	require.Len(t, film.Genres, 2)
	assert.Equal(t, "Drama", film.Genres[0].Name)
	assert.Equal(t, "Thriller", film.Genres[1].Name)
}
