package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"filmorate-go/internal/kafka"
	"filmorate-go/internal/models"
)

// ActivityEvent is the Kafka payload published whenever a user mutates a
// relation (friendship or like). The feed consumer turns these into
// persisted FeedEvent rows.
type ActivityEvent struct {
	UserID     uint                 `json:"userId"`
	EntityType models.FeedEventType `json:"entityType"`
	Operation  models.FeedOperation `json:"operation"`
	EntityID   uint                 `json:"entityId"`
	Timestamp  time.Time            `json:"timestamp"`
}

// publishActivity sends the event to the activity topic, keyed by the
// acting user so one user's events stay ordered. The feed is best-effort:
// a publish failure is logged but never fails the mutation that caused it.
func publishActivity(ctx context.Context, producer kafka.MessageProducer, topic string, event ActivityEvent) {
	if producer == nil || topic == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshalling activity event for user %d: %v", event.UserID, err)
		return
	}
	key := []byte(fmt.Sprintf("%d", event.UserID))
	if err := producer.SendMessage(ctx, topic, key, payload); err != nil {
		log.Printf("Error publishing activity event for user %d to topic %s: %v", event.UserID, topic, err)
	}
}
