package storage

import (
	"context"

	"gorm.io/gorm"

	"filmorate-go/internal/models"
)

// FilmRepository defines the interface for film data operations.
type FilmRepository interface {
	Create(ctx context.Context, film *models.Film) error
	Update(ctx context.Context, film *models.Film) error
	GetByID(ctx context.Context, id uint) (*models.Film, error)
	List(ctx context.Context) ([]models.Film, error)
	Delete(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

// gormFilmRepository implements FilmRepository using GORM.
type gormFilmRepository struct {
	db *gorm.DB
}

// NewGormFilmRepository creates a new GORM-based FilmRepository.
func NewGormFilmRepository(db *gorm.DB) FilmRepository {
	return &gormFilmRepository{db: db}
}

// Create inserts the film and its genre join rows. The genre and MPA
// catalogs are fixed and must not be touched here, so the association
// records themselves are omitted.
func (r *gormFilmRepository) Create(ctx context.Context, film *models.Film) error {
	return r.db.WithContext(ctx).Omit("Mpa", "Genres.*").Create(film).Error
}

// Update saves the film fields and replaces its genre set.
func (r *gormFilmRepository) Update(ctx context.Context, film *models.Film) error {
	if film.ID == 0 {
		return gorm.ErrMissingWhereClause
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Genres", "Mpa").Save(film).Error; err != nil {
			return err
		}
		return tx.Model(film).Association("Genres").Replace(film.Genres)
	})
}

// GetByID retrieves a film with its MPA rating and genres preloaded.
func (r *gormFilmRepository) GetByID(ctx context.Context, id uint) (*models.Film, error) {
	var film models.Film
	err := r.db.WithContext(ctx).
		Preload("Mpa").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.id") }).
		First(&film, id).Error
	if err != nil {
		return nil, err
	}
	return &film, nil
}

// List returns all films ordered by ID, with MPA and genres preloaded.
func (r *gormFilmRepository) List(ctx context.Context) ([]models.Film, error) {
	films := []models.Film{}
	err := r.db.WithContext(ctx).
		Preload("Mpa").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.id") }).
		Order("id").
		Find(&films).Error
	if err != nil {
		return nil, err
	}
	return films, nil
}

// Delete removes a film record. Like rows are cascaded by the service.
func (r *gormFilmRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Film{}, id).Error
}

// Exists reports whether a film with the given ID exists.
func (r *gormFilmRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Film{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
