package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"filmorate-go/internal/config"
	"filmorate-go/internal/kafka"
	"filmorate-go/internal/models"
	"filmorate-go/internal/storage"
)

// Films released before this date are rejected; cinema did not exist yet.
var minReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

const maxDescriptionLength = 200

// PopularCache caches ranked top-film lists. Get returns (nil, nil) on a
// miss; all methods are best-effort and their errors are logged, never
// surfaced.
type PopularCache interface {
	Get(ctx context.Context, count int) ([]models.Film, error)
	Put(ctx context.Context, count int, films []models.Film) error
	Invalidate(ctx context.Context) error
}

// FilmService defines film CRUD, the like operations, and the like-based
// popularity ranking.
type FilmService interface {
	Create(ctx context.Context, film *models.Film) (*models.Film, error)
	Update(ctx context.Context, film *models.Film) (*models.Film, error)
	GetByID(ctx context.Context, id uint) (*models.Film, error)
	List(ctx context.Context) ([]models.Film, error)
	Delete(ctx context.Context, id uint) error

	AddLike(ctx context.Context, filmID, userID uint) error
	RemoveLike(ctx context.Context, filmID, userID uint) error
	GetTopFilms(ctx context.Context, count int) ([]models.Film, error)
}

type filmService struct {
	filmRepo  storage.FilmRepository
	userRepo  storage.UserRepository
	genreRepo storage.GenreRepository
	mpaRepo   storage.MpaRepository
	likeRepo  storage.LikeRepository
	cache     PopularCache // may be nil
	producer  kafka.MessageProducer
	kafkaCfg  config.KafkaConfig
}

// NewFilmService creates a new FilmService instance. cache may be nil to
// run without the popular-films cache.
func NewFilmService(
	filmRepo storage.FilmRepository,
	userRepo storage.UserRepository,
	genreRepo storage.GenreRepository,
	mpaRepo storage.MpaRepository,
	likeRepo storage.LikeRepository,
	cache PopularCache,
	producer kafka.MessageProducer,
	kafkaCfg config.KafkaConfig,
) FilmService {
	return &filmService{
		filmRepo:  filmRepo,
		userRepo:  userRepo,
		genreRepo: genreRepo,
		mpaRepo:   mpaRepo,
		likeRepo:  likeRepo,
		cache:     cache,
		producer:  producer,
		kafkaCfg:  kafkaCfg,
	}
}

// Create validates and stores a new film. The MPA rating and every genre
// must exist in their catalogs.
func (s *filmService) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := s.validateFilm(ctx, film); err != nil {
		return nil, err
	}
	if err := s.filmRepo.Create(ctx, film); err != nil {
		return nil, fmt.Errorf("creating film: %w", err)
	}
	s.invalidatePopular(ctx)
	log.Printf("Film created with ID %d", film.ID)
	return s.GetByID(ctx, film.ID)
}

// Update validates and saves an existing film, replacing its genre set.
func (s *filmService) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	if err := s.requireFilm(ctx, film.ID); err != nil {
		return nil, err
	}
	if err := s.validateFilm(ctx, film); err != nil {
		return nil, err
	}
	if err := s.filmRepo.Update(ctx, film); err != nil {
		return nil, fmt.Errorf("updating film %d: %w", film.ID, err)
	}
	s.invalidatePopular(ctx)
	return s.GetByID(ctx, film.ID)
}

func (s *filmService) GetByID(ctx context.Context, id uint) (*models.Film, error) {
	film, err := s.filmRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("film %d: %w", id, ErrFilmNotFound)
		}
		return nil, fmt.Errorf("fetching film %d: %w", id, err)
	}
	return film, nil
}

func (s *filmService) List(ctx context.Context) ([]models.Film, error) {
	return s.filmRepo.List(ctx)
}

// Delete removes the film and cascades its likes.
func (s *filmService) Delete(ctx context.Context, id uint) error {
	if err := s.requireFilm(ctx, id); err != nil {
		return err
	}
	if err := s.likeRepo.DeleteForFilm(ctx, id); err != nil {
		return fmt.Errorf("deleting likes for film %d: %w", id, err)
	}
	if err := s.filmRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting film %d: %w", id, err)
	}
	s.invalidatePopular(ctx)
	log.Printf("Film %d deleted", id)
	return nil
}

// AddLike records that the user likes the film. Liking twice is a no-op.
func (s *filmService) AddLike(ctx context.Context, filmID, userID uint) error {
	if err := s.requireFilm(ctx, filmID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.likeRepo.Add(ctx, filmID, userID); err != nil {
		return fmt.Errorf("adding like (%d, %d): %w", filmID, userID, err)
	}
	s.invalidatePopular(ctx)
	log.Printf("Like added: film %d by user %d", filmID, userID)

	publishActivity(ctx, s.producer, s.kafkaCfg.ActivityTopic, ActivityEvent{
		UserID:     userID,
		EntityType: models.FeedEventLike,
		Operation:  models.FeedOperationAdd,
		EntityID:   filmID,
		Timestamp:  time.Now(),
	})
	return nil
}

// RemoveLike removes the user's like. Removing an absent like is a no-op,
// but both the film and the user must exist.
func (s *filmService) RemoveLike(ctx context.Context, filmID, userID uint) error {
	if err := s.requireFilm(ctx, filmID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.likeRepo.Remove(ctx, filmID, userID); err != nil {
		return fmt.Errorf("removing like (%d, %d): %w", filmID, userID, err)
	}
	s.invalidatePopular(ctx)
	log.Printf("Like removed: film %d by user %d", filmID, userID)

	publishActivity(ctx, s.producer, s.kafkaCfg.ActivityTopic, ActivityEvent{
		UserID:     userID,
		EntityType: models.FeedEventLike,
		Operation:  models.FeedOperationRemove,
		EntityID:   filmID,
		Timestamp:  time.Now(),
	})
	return nil
}

// GetTopFilms returns the count most-liked films, most likes first. Films
// with equal like counts keep the catalog order, which is why the sort
// must be stable. count <= 0 yields an empty list, count beyond the
// catalog size the whole ranked catalog.
func (s *filmService) GetTopFilms(ctx context.Context, count int) ([]models.Film, error) {
	if count <= 0 {
		return []models.Film{}, nil
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, count)
		if err != nil {
			log.Printf("Popular cache read failed: %v", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	films, err := s.filmRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing films for ranking: %w", err)
	}
	counts, err := s.likeRepo.CountsByFilm(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching like counts: %w", err)
	}

	sort.SliceStable(films, func(i, j int) bool {
		return counts[films[i].ID] > counts[films[j].ID]
	})
	if count < len(films) {
		films = films[:count]
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, count, films); err != nil {
			log.Printf("Popular cache write failed: %v", err)
		}
	}
	return films, nil
}

func (s *filmService) requireFilm(ctx context.Context, id uint) error {
	exists, err := s.filmRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("checking film %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("film %d: %w", id, ErrFilmNotFound)
	}
	return nil
}

func (s *filmService) requireUser(ctx context.Context, id uint) error {
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("checking user %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	return nil
}

func (s *filmService) invalidatePopular(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("Popular cache invalidation failed: %v", err)
	}
}

func (s *filmService) validateFilm(ctx context.Context, film *models.Film) error {
	if film.Name == "" {
		return fmt.Errorf("%w: film name must not be empty", ErrValidation)
	}
	if utf8.RuneCountInString(film.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description must not exceed %d characters", ErrValidation, maxDescriptionLength)
	}
	if film.ReleaseDate.IsZero() {
		return fmt.Errorf("%w: release date must be set", ErrValidation)
	}
	if film.ReleaseDate.Before(minReleaseDate) {
		return fmt.Errorf("%w: release date must not be before %s", ErrValidation, minReleaseDate.Format("2006-01-02"))
	}
	if film.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if film.MpaID == 0 {
		film.MpaID = film.Mpa.ID
	}
	if film.MpaID == 0 {
		return fmt.Errorf("%w: mpa rating must be set", ErrValidation)
	}

	// Resolve the catalogs so the stored film carries full MPA and genre
	// records, and duplicate genre ids collapse to one membership.
	mpa, err := s.mpaRepo.GetByID(ctx, film.MpaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("mpa rating %d: %w", film.MpaID, ErrMpaNotFound)
		}
		return fmt.Errorf("checking mpa rating %d: %w", film.MpaID, err)
	}
	film.Mpa = *mpa

	seen := make(map[uint]struct{}, len(film.Genres))
	genres := make([]models.Genre, 0, len(film.Genres))
	for _, genre := range film.Genres {
		if genre.ID == 0 {
			return fmt.Errorf("%w: genre id must be set", ErrValidation)
		}
		if _, ok := seen[genre.ID]; ok {
			continue
		}
		seen[genre.ID] = struct{}{}
		resolved, err := s.genreRepo.GetByID(ctx, genre.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("genre %d: %w", genre.ID, ErrGenreNotFound)
			}
			return fmt.Errorf("checking genre %d: %w", genre.ID, err)
		}
		genres = append(genres, *resolved)
	}
	film.Genres = genres
	return nil
}
