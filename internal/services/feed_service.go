package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	confluentKafka "github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"filmorate-go/internal/models"
	"filmorate-go/internal/storage"
)

// FeedService turns published activity events into a persisted per-user
// feed and serves it back. The feed is eventually consistent: events
// travel through Kafka before they land in the feed table.
type FeedService interface {
	ProcessActivityEvent(ctx context.Context, kafkaMsg *confluentKafka.Message) error
	GetFeed(ctx context.Context, userID uint) ([]models.FeedEvent, error)
}

type feedService struct {
	userRepo  storage.UserRepository
	eventRepo storage.EventRepository
}

// NewFeedService creates a new FeedService instance.
func NewFeedService(userRepo storage.UserRepository, eventRepo storage.EventRepository) FeedService {
	return &feedService{userRepo: userRepo, eventRepo: eventRepo}
}

// ProcessActivityEvent handles incoming activity events from Kafka. A
// payload that cannot be decoded is dropped (returning nil commits the
// offset); a storage failure is returned so the message is retried.
func (s *feedService) ProcessActivityEvent(ctx context.Context, kafkaMsg *confluentKafka.Message) error {
	var event ActivityEvent
	if err := json.Unmarshal(kafkaMsg.Value, &event); err != nil {
		log.Printf("Error unmarshalling activity event from Kafka: %v, value: %s", err, string(kafkaMsg.Value))
		return nil // Commit offset for bad message
	}

	feedEvent := models.FeedEvent{
		UserID:     event.UserID,
		EntityType: event.EntityType,
		Operation:  event.Operation,
		EntityID:   event.EntityID,
		Timestamp:  event.Timestamp,
	}
	if err := s.eventRepo.Create(ctx, &feedEvent); err != nil {
		log.Printf("Error saving feed event for user %d: %v", event.UserID, err)
		return err // Retryable
	}
	return nil
}

// GetFeed returns the user's activity feed, newest first.
func (s *feedService) GetFeed(ctx context.Context, userID uint) ([]models.FeedEvent, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("checking user %d: %w", userID, err)
	}
	if !exists {
		return nil, fmt.Errorf("user %d: %w", userID, ErrUserNotFound)
	}
	return s.eventRepo.ListForUser(ctx, userID)
}
