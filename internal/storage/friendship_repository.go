package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"filmorate-go/internal/models"
)

// FriendshipRepository defines the interface for friendship data operations.
// A friendship is one canonically ordered row covering both directions,
// so the relation can never end up asymmetric.
type FriendshipRepository interface {
	Create(ctx context.Context, friendship *models.Friendship) error
	Delete(ctx context.Context, userID1, userID2 uint) error
	AreUsersFriends(ctx context.Context, userID1, userID2 uint) (bool, error)
	GetFriendIDs(ctx context.Context, userID uint) ([]uint, error)
}

type gormFriendshipRepository struct {
	db *gorm.DB
}

// NewGormFriendshipRepository creates a new GormFriendshipRepository.
func NewGormFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &gormFriendshipRepository{db: db}
}

// Create creates a new friendship record in the database. It assumes that
// friendship.EnsureCanonicalOrder() has been called before. Adding an
// already existing friendship is a no-op, the unique index on the pair
// plus ON CONFLICT DO NOTHING makes the operation idempotent.
func (r *gormFriendshipRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id1"}, {Name: "user_id2"}},
			DoNothing: true,
		}).
		Create(friendship).Error
}

// Delete removes the friendship between the two users. Removing a pair
// that is not present deletes zero rows and is not an error.
func (r *gormFriendshipRepository) Delete(ctx context.Context, userID1, userID2 uint) error {
	u1, u2 := userID1, userID2
	if u1 > u2 {
		u1, u2 = u2, u1 // Ensure canonical order for the delete
	}
	return r.db.WithContext(ctx).
		Where("user_id1 = ? AND user_id2 = ?", u1, u2).
		Delete(&models.Friendship{}).Error
}

// AreUsersFriends checks if two users are already friends.
func (r *gormFriendshipRepository) AreUsersFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	u1, u2 := userID1, userID2
	if u1 > u2 {
		u1, u2 = u2, u1 // Ensure canonical order for query
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Friendship{}).Where("user_id1 = ? AND user_id2 = ?", u1, u2).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFriendIDs retrieves a list of user IDs who are friends with the given
// userID. The given user can sit in either column, so both sides are
// queried and the opposite column collected.
func (r *gormFriendshipRepository) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var idsPart1 []uint
	err := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id1 = ?", userID).
		Pluck("user_id2", &idsPart1).Error
	if err != nil {
		return nil, err
	}

	var idsPart2 []uint
	err = r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id2 = ?", userID).
		Pluck("user_id1", &idsPart2).Error
	if err != nil {
		return nil, err
	}

	return append(idsPart1, idsPart2...), nil
}
