package storage

import (
	"context"

	"gorm.io/gorm"

	"filmorate-go/internal/models"
)

// GenreRepository defines read access to the genre catalog.
type GenreRepository interface {
	List(ctx context.Context) ([]models.Genre, error)
	GetByID(ctx context.Context, id uint) (*models.Genre, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// MpaRepository defines read access to the MPA rating catalog.
type MpaRepository interface {
	List(ctx context.Context) ([]models.MpaRating, error)
	GetByID(ctx context.Context, id uint) (*models.MpaRating, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type gormGenreRepository struct {
	db *gorm.DB
}

// NewGormGenreRepository creates a new GORM-based GenreRepository.
func NewGormGenreRepository(db *gorm.DB) GenreRepository {
	return &gormGenreRepository{db: db}
}

func (r *gormGenreRepository) List(ctx context.Context) ([]models.Genre, error) {
	genres := []models.Genre{}
	err := r.db.WithContext(ctx).Order("id").Find(&genres).Error
	if err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *gormGenreRepository) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	var genre models.Genre
	err := r.db.WithContext(ctx).First(&genre, id).Error
	if err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *gormGenreRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Genre{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type gormMpaRepository struct {
	db *gorm.DB
}

// NewGormMpaRepository creates a new GORM-based MpaRepository.
func NewGormMpaRepository(db *gorm.DB) MpaRepository {
	return &gormMpaRepository{db: db}
}

func (r *gormMpaRepository) List(ctx context.Context) ([]models.MpaRating, error) {
	ratings := []models.MpaRating{}
	err := r.db.WithContext(ctx).Order("id").Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *gormMpaRepository) GetByID(ctx context.Context, id uint) (*models.MpaRating, error) {
	var rating models.MpaRating
	err := r.db.WithContext(ctx).First(&rating, id).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *gormMpaRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MpaRating{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
