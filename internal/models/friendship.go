package models

import "time"

// Friendship represents a mutual friendship between two users.
// Both directions live in this single row: UserID1 is always the smaller
// ID, so one unordered pair can never produce two conflicting rows.
// No soft delete here; a removed friendship must free the unique index
// so the pair can become friends again.
type Friendship struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID1   uint      `gorm:"not null;uniqueIndex:idx_friendship_users" json:"userId1"`
	UserID2   uint      `gorm:"not null;uniqueIndex:idx_friendship_users" json:"userId2"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for the Friendship model.
func (Friendship) TableName() string {
	return "friendships"
}

// EnsureCanonicalOrder sets UserID1 to the smaller ID and UserID2 to the
// larger ID. This must be called before creating a Friendship record.
func (f *Friendship) EnsureCanonicalOrder() {
	if f.UserID1 > f.UserID2 {
		f.UserID1, f.UserID2 = f.UserID2, f.UserID1
	}
}
