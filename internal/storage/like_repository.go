package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"filmorate-go/internal/models"
)

// LikeRepository defines the interface for film-like data operations.
type LikeRepository interface {
	Add(ctx context.Context, filmID, userID uint) error
	Remove(ctx context.Context, filmID, userID uint) error
	CountForFilm(ctx context.Context, filmID uint) (int64, error)
	UserIDsForFilm(ctx context.Context, filmID uint) ([]uint, error)
	CountsByFilm(ctx context.Context) (map[uint]int64, error)
	DeleteForFilm(ctx context.Context, filmID uint) error
}

type gormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GORM-based LikeRepository.
func NewGormLikeRepository(db *gorm.DB) LikeRepository {
	return &gormLikeRepository{db: db}
}

// Add records that the user likes the film. A duplicate like hits the
// unique (film, user) index and is dropped by ON CONFLICT DO NOTHING.
func (r *gormLikeRepository) Add(ctx context.Context, filmID, userID uint) error {
	like := models.FilmLike{FilmID: filmID, UserID: userID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "film_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&like).Error
}

// Remove deletes the like. Removing a like that was never added deletes
// zero rows and is not an error.
func (r *gormLikeRepository) Remove(ctx context.Context, filmID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&models.FilmLike{}).Error
}

// CountForFilm returns how many users like the film, 0 if none.
func (r *gormLikeRepository) CountForFilm(ctx context.Context, filmID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FilmLike{}).Where("film_id = ?", filmID).Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UserIDsForFilm returns the IDs of the users who like the film.
func (r *gormLikeRepository) UserIDsForFilm(ctx context.Context, filmID uint) ([]uint, error) {
	var userIDs []uint
	err := r.db.WithContext(ctx).Model(&models.FilmLike{}).
		Where("film_id = ?", filmID).
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

// CountsByFilm returns the like count for every film that has at least one
// like. Films with no likes are simply absent from the map.
func (r *gormLikeRepository) CountsByFilm(ctx context.Context) (map[uint]int64, error) {
	var rows []struct {
		FilmID uint
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.FilmLike{}).
		Select("film_id, COUNT(*) as count").
		Group("film_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.FilmID] = row.Count
	}
	return counts, nil
}

// DeleteForFilm removes every like of the film. Used when a film is
// deleted from the catalog.
func (r *gormLikeRepository) DeleteForFilm(ctx context.Context, filmID uint) error {
	return r.db.WithContext(ctx).
		Where("film_id = ?", filmID).
		Delete(&models.FilmLike{}).Error
}
