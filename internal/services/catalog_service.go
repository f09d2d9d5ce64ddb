package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"filmorate-go/internal/models"
	"filmorate-go/internal/storage"
)

// GenreService exposes the fixed genre catalog.
type GenreService interface {
	List(ctx context.Context) ([]models.Genre, error)
	GetByID(ctx context.Context, id uint) (*models.Genre, error)
}

// MpaService exposes the fixed MPA rating catalog.
type MpaService interface {
	List(ctx context.Context) ([]models.MpaRating, error)
	GetByID(ctx context.Context, id uint) (*models.MpaRating, error)
}

type genreService struct {
	genreRepo storage.GenreRepository
}

// NewGenreService creates a new GenreService instance.
func NewGenreService(genreRepo storage.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(ctx context.Context) ([]models.Genre, error) {
	return s.genreRepo.List(ctx)
}

func (s *genreService) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	genre, err := s.genreRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("genre %d: %w", id, ErrGenreNotFound)
		}
		return nil, fmt.Errorf("fetching genre %d: %w", id, err)
	}
	return genre, nil
}

type mpaService struct {
	mpaRepo storage.MpaRepository
}

// NewMpaService creates a new MpaService instance.
func NewMpaService(mpaRepo storage.MpaRepository) MpaService {
	return &mpaService{mpaRepo: mpaRepo}
}

func (s *mpaService) List(ctx context.Context) ([]models.MpaRating, error) {
	return s.mpaRepo.List(ctx)
}

func (s *mpaService) GetByID(ctx context.Context, id uint) (*models.MpaRating, error) {
	rating, err := s.mpaRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("mpa rating %d: %w", id, ErrMpaNotFound)
		}
		return nil, fmt.Errorf("fetching mpa rating %d: %w", id, err)
	}
	return rating, nil
}
