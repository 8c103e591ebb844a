package mock

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"boardgame-tracker/internal/domains/user"
)

// ================================================
// IN-MEMORY USER STORE (for tests)
// ================================================

type edge struct {
	follower  uuid.UUID
	following uuid.UUID
	createdAt time.Time
}

// Store implements user.Repository and user.FollowRepository in memory.
// Set the Err fields to make the matching calls fail.
type Store struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User
	edges []edge
	clock time.Time

	SearchErr error
	EdgeErr   error
	CountErr  error

	CountCalls int
	EdgeCalls  int
}

var (
	_ user.Repository       = (*Store)(nil)
	_ user.FollowRepository = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		users: make(map[uuid.UUID]*user.User),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Add stores a user with a fresh id and returns it.
func (s *Store) Add(username string) *user.User {
	u := &user.User{
		ID:       uuid.New(),
		Email:    strings.ToLower(username) + "@example.com",
		Username: username,
	}
	s.mu.Lock()
	s.users[u.ID] = copyUser(u)
	s.mu.Unlock()
	return u
}

func copyUser(u *user.User) *user.User {
	c := *u
	return &c
}

// ========================================
// user.Repository
// ========================================

func (s *Store) Create(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
		if existing.Username == u.Username {
			return user.ErrUsernameAlreadyExists
		}
	}
	s.users[u.ID] = copyUser(u)
	return nil
}

func (s *Store) find(match func(*user.User) bool) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if match(u) {
			return copyUser(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.find(func(u *user.User) bool { return u.ID == id })
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.find(func(u *user.User) bool { return u.Email == email })
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return s.find(func(u *user.User) bool { return u.Username == username })
}

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	return err == nil, nil
}

func (s *Store) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.FindByUsername(ctx, username)
	return err == nil, nil
}

func (s *Store) UpdateProfile(ctx context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	s.users[u.ID] = copyUser(u)
	return nil
}

func (s *Store) Search(ctx context.Context, q string, excludeID *uuid.UUID, limit int) ([]*user.User, error) {
	if s.SearchErr != nil {
		return nil, s.SearchErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(q)
	out := make([]*user.User, 0)
	for _, u := range s.users {
		if excludeID != nil && u.ID == *excludeID {
			continue
		}
		name := strings.ToLower(u.Username)
		display := ""
		if u.DisplayName != nil {
			display = strings.ToLower(*u.DisplayName)
		}
		if strings.Contains(name, needle) || strings.Contains(display, needle) {
			out = append(out, copyUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ========================================
// user.FollowRepository
// ========================================

func (s *Store) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.edges {
		if e.follower == followerID && e.following == followingID {
			return nil
		}
	}
	s.clock = s.clock.Add(time.Second)
	s.edges = append(s.edges, edge{follower: followerID, following: followingID, createdAt: s.clock})
	return nil
}

func (s *Store) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.edges[:0]
	for _, e := range s.edges {
		if e.follower == followerID && e.following == followingID {
			continue
		}
		kept = append(kept, e)
	}
	s.edges = kept
	return nil
}

// IsFollowing reports whether the edge exists.
func (s *Store) IsFollowing(followerID, followingID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.edges {
		if e.follower == followerID && e.following == followingID {
			return true
		}
	}
	return false
}

func (s *Store) count(match func(edge) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CountCalls++
	if s.CountErr != nil {
		return 0, s.CountErr
	}
	n := 0
	for _, e := range s.edges {
		if match(e) {
			n++
		}
	}
	return n, nil
}

func (s *Store) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.count(func(e edge) bool { return e.following == userID })
}

func (s *Store) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.count(func(e edge) bool { return e.follower == userID })
}

// list returns the users picked from matching edges, newest edge first.
func (s *Store) list(match func(edge) bool, pick func(edge) uuid.UUID) []*user.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]edge, 0)
	for _, e := range s.edges {
		if match(e) {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].createdAt.After(matched[j].createdAt) })

	out := make([]*user.User, 0, len(matched))
	for _, e := range matched {
		if u, ok := s.users[pick(e)]; ok {
			out = append(out, copyUser(u))
		}
	}
	return out
}

func (s *Store) ListFollowing(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	return s.list(
		func(e edge) bool { return e.follower == userID },
		func(e edge) uuid.UUID { return e.following },
	), nil
}

func (s *Store) ListFollowers(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	return s.list(
		func(e edge) bool { return e.following == userID },
		func(e edge) uuid.UUID { return e.follower },
	), nil
}

func (s *Store) among(anchorMatch func(edge) bool, pick func(edge) uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.EdgeCalls++
	if s.EdgeErr != nil {
		return nil, s.EdgeErr
	}

	wanted := make(map[uuid.UUID]bool, len(candidates))
	for _, id := range candidates {
		wanted[id] = true
	}
	out := make([]uuid.UUID, 0)
	for _, e := range s.edges {
		if anchorMatch(e) && wanted[pick(e)] {
			out = append(out, pick(e))
		}
	}
	return out, nil
}

func (s *Store) FollowingAmong(ctx context.Context, followerID uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error) {
	return s.among(
		func(e edge) bool { return e.follower == followerID },
		func(e edge) uuid.UUID { return e.following },
		candidates,
	)
}

func (s *Store) FollowersAmong(ctx context.Context, userID uuid.UUID, candidates []uuid.UUID) ([]uuid.UUID, error) {
	return s.among(
		func(e edge) bool { return e.following == userID },
		func(e edge) uuid.UUID { return e.follower },
		candidates,
	)
}
