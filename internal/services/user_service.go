package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"filmorate-go/internal/config"
	"filmorate-go/internal/kafka"
	"filmorate-go/internal/models"
	"filmorate-go/internal/storage"
)

// UserService defines user CRUD plus the friendship operations: the
// symmetric add/remove, the friend list, and the common-friend
// intersection between two users.
type UserService interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id uint) error

	AddFriend(ctx context.Context, userID, friendID uint) error
	RemoveFriend(ctx context.Context, userID, friendID uint) error
	GetFriends(ctx context.Context, userID uint) ([]models.User, error)
	GetCommonFriends(ctx context.Context, userID, otherID uint) ([]models.User, error)
}

type userService struct {
	userRepo       storage.UserRepository
	friendshipRepo storage.FriendshipRepository
	producer       kafka.MessageProducer
	kafkaCfg       config.KafkaConfig
}

// NewUserService creates a new UserService instance.
func NewUserService(
	userRepo storage.UserRepository,
	friendshipRepo storage.FriendshipRepository,
	producer kafka.MessageProducer,
	kafkaCfg config.KafkaConfig,
) UserService {
	return &userService{
		userRepo:       userRepo,
		friendshipRepo: friendshipRepo,
		producer:       producer,
		kafkaCfg:       kafkaCfg,
	}
}

// Create validates and stores a new user. An empty display name falls
// back to the login.
func (s *userService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if user.Name == "" {
		user.Name = user.Login
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	log.Printf("User created with ID %d", user.ID)
	return user, nil
}

// Update validates and saves an existing user.
func (s *userService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.requireUser(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := validateUser(user); err != nil {
		return nil, err
	}
	if user.Name == "" {
		user.Name = user.Login
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user %d: %w", user.ID, err)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
		}
		return nil, fmt.Errorf("fetching user %d: %w", id, err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if err := s.requireUser(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	log.Printf("User %d deleted", id)
	return nil
}

// AddFriend makes the two users mutual friends. The self check runs
// before the existence checks so addFriend(a, a) is always an
// ErrSelfFriendship, known user or not. Adding an existing friendship is
// a silent no-op.
func (s *userService) AddFriend(ctx context.Context, userID, friendID uint) error {
	if userID == friendID {
		return ErrSelfFriendship
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, friendID); err != nil {
		return err
	}

	friendship := &models.Friendship{UserID1: userID, UserID2: friendID}
	friendship.EnsureCanonicalOrder()
	if err := s.friendshipRepo.Create(ctx, friendship); err != nil {
		return fmt.Errorf("creating friendship %d-%d: %w", userID, friendID, err)
	}
	log.Printf("Friendship added: %d and %d", userID, friendID)

	publishActivity(ctx, s.producer, s.kafkaCfg.ActivityTopic, ActivityEvent{
		UserID:     userID,
		EntityType: models.FeedEventFriend,
		Operation:  models.FeedOperationAdd,
		EntityID:   friendID,
		Timestamp:  time.Now(),
	})
	return nil
}

// RemoveFriend dissolves the friendship. Both users must exist; removing
// a friendship that is not there is a silent no-op.
func (s *userService) RemoveFriend(ctx context.Context, userID, friendID uint) error {
	if err := s.requireUser(ctx, userID); err != nil {
		return err
	}
	if err := s.requireUser(ctx, friendID); err != nil {
		return err
	}

	if err := s.friendshipRepo.Delete(ctx, userID, friendID); err != nil {
		return fmt.Errorf("removing friendship %d-%d: %w", userID, friendID, err)
	}
	log.Printf("Friendship removed: %d and %d", userID, friendID)

	publishActivity(ctx, s.producer, s.kafkaCfg.ActivityTopic, ActivityEvent{
		UserID:     userID,
		EntityType: models.FeedEventFriend,
		Operation:  models.FeedOperationRemove,
		EntityID:   friendID,
		Timestamp:  time.Now(),
	})
	return nil
}

// GetFriends resolves the user's friend IDs to full user records.
func (s *userService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	friendIDs, err := s.friendshipRepo.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching friend ids for user %d: %w", userID, err)
	}
	if len(friendIDs) == 0 {
		return []models.User{}, nil
	}
	return s.userRepo.GetByIDs(ctx, friendIDs)
}

// GetCommonFriends intersects the two users' friend sets and resolves the
// result to full user records. Commutative by construction; called with
// the same user twice it degenerates to that user's own friend list.
func (s *userService) GetCommonFriends(ctx context.Context, userID, otherID uint) ([]models.User, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, otherID); err != nil {
		return nil, err
	}

	firstIDs, err := s.friendshipRepo.GetFriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching friend ids for user %d: %w", userID, err)
	}
	secondIDs, err := s.friendshipRepo.GetFriendIDs(ctx, otherID)
	if err != nil {
		return nil, fmt.Errorf("fetching friend ids for user %d: %w", otherID, err)
	}

	inFirst := make(map[uint]struct{}, len(firstIDs))
	for _, id := range firstIDs {
		inFirst[id] = struct{}{}
	}
	var commonIDs []uint
	for _, id := range secondIDs {
		if _, ok := inFirst[id]; ok {
			commonIDs = append(commonIDs, id)
		}
	}
	if len(commonIDs) == 0 {
		return []models.User{}, nil
	}
	return s.userRepo.GetByIDs(ctx, commonIDs)
}

// requireUser turns a missing user into ErrUserNotFound.
func (s *userService) requireUser(ctx context.Context, id uint) error {
	exists, err := s.userRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("checking user %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	return nil
}

func validateUser(user *models.User) error {
	if user.Email == "" || !strings.Contains(user.Email, "@") {
		return fmt.Errorf("%w: email must not be empty and must contain '@'", ErrValidation)
	}
	if user.Login == "" || strings.ContainsAny(user.Login, " \t") {
		return fmt.Errorf("%w: login must not be empty or contain whitespace", ErrValidation)
	}
	if user.Birthday.IsZero() {
		return fmt.Errorf("%w: birthday must be set", ErrValidation)
	}
	if user.Birthday.After(time.Now()) {
		return fmt.Errorf("%w: birthday must not be in the future", ErrValidation)
	}
	return nil
}
