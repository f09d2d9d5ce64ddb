package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"filmorate-go/internal/models"
)

// In-memory implementations of the repository interfaces. They keep the
// same contract as the GORM ones (including gorm.ErrRecordNotFound on
// missed lookups) so services and tests can run without a database.
// IDs are allocated by a monotonic counter and never reused.

// MemoryUserRepository is an in-memory UserRepository.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]models.User
	nextID uint
}

// NewMemoryUserRepository creates an empty in-memory user repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uint]models.User), nextID: 1}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := []models.User{}
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *MemoryUserRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *MemoryUserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

// MemoryFilmRepository is an in-memory FilmRepository.
type MemoryFilmRepository struct {
	mu     sync.RWMutex
	films  map[uint]models.Film
	nextID uint
}

// NewMemoryFilmRepository creates an empty in-memory film repository.
func NewMemoryFilmRepository() *MemoryFilmRepository {
	return &MemoryFilmRepository{films: make(map[uint]models.Film), nextID: 1}
}

func (r *MemoryFilmRepository) Create(ctx context.Context, film *models.Film) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	film.ID = r.nextID
	r.nextID++
	film.CreatedAt = time.Now()
	film.UpdatedAt = film.CreatedAt
	r.films[film.ID] = *film
	return nil
}

func (r *MemoryFilmRepository) Update(ctx context.Context, film *models.Film) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.films[film.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	film.UpdatedAt = time.Now()
	r.films[film.ID] = *film
	return nil
}

func (r *MemoryFilmRepository) GetByID(ctx context.Context, id uint) (*models.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	film, ok := r.films[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &film, nil
}

func (r *MemoryFilmRepository) List(ctx context.Context) ([]models.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	films := make([]models.Film, 0, len(r.films))
	for _, film := range r.films {
		films = append(films, film)
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (r *MemoryFilmRepository) Delete(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.films, id)
	return nil
}

func (r *MemoryFilmRepository) Exists(ctx context.Context, id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.films[id]
	return ok, nil
}

// pairKey is the canonical unordered pair of user IDs.
type pairKey struct {
	low, high uint
}

func newPairKey(a, b uint) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{low: a, high: b}
}

// MemoryFriendshipRepository is an in-memory FriendshipRepository.
type MemoryFriendshipRepository struct {
	mu    sync.RWMutex
	pairs map[pairKey]struct{}
}

// NewMemoryFriendshipRepository creates an empty in-memory friendship repository.
func NewMemoryFriendshipRepository() *MemoryFriendshipRepository {
	return &MemoryFriendshipRepository{pairs: make(map[pairKey]struct{})}
}

func (r *MemoryFriendshipRepository) Create(ctx context.Context, friendship *models.Friendship) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs[newPairKey(friendship.UserID1, friendship.UserID2)] = struct{}{}
	return nil
}

func (r *MemoryFriendshipRepository) Delete(ctx context.Context, userID1, userID2 uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pairs, newPairKey(userID1, userID2))
	return nil
}

func (r *MemoryFriendshipRepository) AreUsersFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.pairs[newPairKey(userID1, userID2)]
	return ok, nil
}

func (r *MemoryFriendshipRepository) GetFriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []uint
	for pair := range r.pairs {
		switch userID {
		case pair.low:
			ids = append(ids, pair.high)
		case pair.high:
			ids = append(ids, pair.low)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type likeKey struct {
	filmID, userID uint
}

// MemoryLikeRepository is an in-memory LikeRepository.
type MemoryLikeRepository struct {
	mu    sync.RWMutex
	likes map[likeKey]struct{}
}

// NewMemoryLikeRepository creates an empty in-memory like repository.
func NewMemoryLikeRepository() *MemoryLikeRepository {
	return &MemoryLikeRepository{likes: make(map[likeKey]struct{})}
}

func (r *MemoryLikeRepository) Add(ctx context.Context, filmID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.likes[likeKey{filmID: filmID, userID: userID}] = struct{}{}
	return nil
}

func (r *MemoryLikeRepository) Remove(ctx context.Context, filmID, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes, likeKey{filmID: filmID, userID: userID})
	return nil
}

func (r *MemoryLikeRepository) CountForFilm(ctx context.Context, filmID uint) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for key := range r.likes {
		if key.filmID == filmID {
			count++
		}
	}
	return count, nil
}

func (r *MemoryLikeRepository) UserIDsForFilm(ctx context.Context, filmID uint) ([]uint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []uint
	for key := range r.likes {
		if key.filmID == filmID {
			ids = append(ids, key.userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *MemoryLikeRepository) CountsByFilm(ctx context.Context) (map[uint]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[uint]int64)
	for key := range r.likes {
		counts[key.filmID]++
	}
	return counts, nil
}

func (r *MemoryLikeRepository) DeleteForFilm(ctx context.Context, filmID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key := range r.likes {
		if key.filmID == filmID {
			delete(r.likes, key)
		}
	}
	return nil
}

// MemoryGenreRepository is an in-memory GenreRepository seeded with the
// default catalog.
type MemoryGenreRepository struct {
	genres []models.Genre
}

// NewMemoryGenreRepository creates a genre repository holding the default catalog.
func NewMemoryGenreRepository() *MemoryGenreRepository {
	return &MemoryGenreRepository{genres: DefaultGenres()}
}

func (r *MemoryGenreRepository) List(ctx context.Context) ([]models.Genre, error) {
	return append([]models.Genre{}, r.genres...), nil
}

func (r *MemoryGenreRepository) GetByID(ctx context.Context, id uint) (*models.Genre, error) {
	for _, genre := range r.genres {
		if genre.ID == id {
			g := genre
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryGenreRepository) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := r.GetByID(ctx, id)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// MemoryMpaRepository is an in-memory MpaRepository seeded with the
// default catalog.
type MemoryMpaRepository struct {
	ratings []models.MpaRating
}

// NewMemoryMpaRepository creates an MPA repository holding the default catalog.
func NewMemoryMpaRepository() *MemoryMpaRepository {
	return &MemoryMpaRepository{ratings: DefaultMpaRatings()}
}

func (r *MemoryMpaRepository) List(ctx context.Context) ([]models.MpaRating, error) {
	return append([]models.MpaRating{}, r.ratings...), nil
}

func (r *MemoryMpaRepository) GetByID(ctx context.Context, id uint) (*models.MpaRating, error) {
	for _, rating := range r.ratings {
		if rating.ID == id {
			m := rating
			return &m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryMpaRepository) Exists(ctx context.Context, id uint) (bool, error) {
	_, err := r.GetByID(ctx, id)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// MemoryEventRepository is an in-memory EventRepository.
type MemoryEventRepository struct {
	mu     sync.RWMutex
	events []models.FeedEvent
	nextID uint
}

// NewMemoryEventRepository creates an empty in-memory event repository.
func NewMemoryEventRepository() *MemoryEventRepository {
	return &MemoryEventRepository{nextID: 1}
}

func (r *MemoryEventRepository) Create(ctx context.Context, event *models.FeedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = r.nextID
	r.nextID++
	r.events = append(r.events, *event)
	return nil
}

func (r *MemoryEventRepository) ListForUser(ctx context.Context, userID uint) ([]models.FeedEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	events := []models.FeedEvent{}
	for i := len(r.events) - 1; i >= 0; i-- { // newest first
		if r.events[i].UserID == userID {
			events = append(events, r.events[i])
		}
	}
	return events, nil
}
