package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"filmorate-go/internal/config"
	"filmorate-go/internal/models"
	"filmorate-go/internal/storage"
)

// stubProducer records published activity events instead of talking to a
// broker.
type stubProducer struct {
	mu     sync.Mutex
	events []ActivityEvent
}

func (p *stubProducer) SendMessage(ctx context.Context, topic string, key []byte, payload []byte) error {
	var event ActivityEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *stubProducer) Close() {}

func (p *stubProducer) recorded() []ActivityEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ActivityEvent{}, p.events...)
}

var testKafkaCfg = config.KafkaConfig{ActivityTopic: "activity-test"}

type serviceFixture struct {
	users       UserService
	films       FilmService
	userRepo    *storage.MemoryUserRepository
	filmRepo    *storage.MemoryFilmRepository
	friendships *storage.MemoryFriendshipRepository
	likes       *storage.MemoryLikeRepository
	producer    *stubProducer
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		userRepo:    storage.NewMemoryUserRepository(),
		filmRepo:    storage.NewMemoryFilmRepository(),
		friendships: storage.NewMemoryFriendshipRepository(),
		likes:       storage.NewMemoryLikeRepository(),
		producer:    &stubProducer{},
	}
	f.users = NewUserService(f.userRepo, f.friendships, f.producer, testKafkaCfg)
	f.films = NewFilmService(
		f.filmRepo,
		f.userRepo,
		storage.NewMemoryGenreRepository(),
		storage.NewMemoryMpaRepository(),
		f.likes,
		nil,
		f.producer,
		testKafkaCfg,
	)
	return f
}

func (f *serviceFixture) mustCreateUser(t *testing.T, login string) *models.User {
	t.Helper()
	user, err := f.users.Create(context.Background(), &models.User{
		Email:    login + "@example.com",
		Login:    login,
		Birthday: models.NewDate(1990, time.January, 1),
	})
	require.NoError(t, err)
	return user
}

func (f *serviceFixture) mustCreateFilm(t *testing.T, name string) *models.Film {
	t.Helper()
	film, err := f.films.Create(context.Background(), &models.Film{
		Name:        name,
		Description: "about " + name,
		ReleaseDate: models.NewDate(2000, time.June, 15),
		Duration:    120,
		Mpa:         models.MpaRating{ID: 1},
	})
	require.NoError(t, err)
	return film
}
