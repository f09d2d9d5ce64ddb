package models

import "time"

// FeedEventType identifies what kind of relation an event is about.
type FeedEventType string

// FeedOperation identifies what happened to the relation.
type FeedOperation string

const (
	FeedEventFriend FeedEventType = "FRIEND"
	FeedEventLike   FeedEventType = "LIKE"

	FeedOperationAdd    FeedOperation = "ADD"
	FeedOperationRemove FeedOperation = "REMOVE"
)

// FeedEvent is one entry in a user's activity feed: the user added or
// removed a friend, or liked or unliked a film. EntityID is the friend's
// user ID for FRIEND events and the film ID for LIKE events.
type FeedEvent struct {
	ID         uint          `gorm:"primarykey" json:"eventId"`
	UserID     uint          `gorm:"not null;index" json:"userId"`
	EntityType FeedEventType `gorm:"type:varchar(20);not null" json:"eventType"`
	Operation  FeedOperation `gorm:"type:varchar(20);not null" json:"operation"`
	EntityID   uint          `gorm:"not null" json:"entityId"`
	Timestamp  time.Time     `gorm:"not null" json:"timestamp"`
}

// TableName specifies the table name for the FeedEvent model.
func (FeedEvent) TableName() string {
	return "feed_events"
}
