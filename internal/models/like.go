package models

import "time"

// FilmLike records that a user likes a film. The (film, user) pair is
// unique, which makes duplicate likes a no-op at the storage level.
// No soft delete; removing a like must free the unique index so the
// user can like the film again later.
type FilmLike struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	FilmID    uint      `gorm:"not null;uniqueIndex:idx_film_user_like" json:"filmId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_film_user_like" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for the FilmLike model.
func (FilmLike) TableName() string {
	return "film_likes"
}
