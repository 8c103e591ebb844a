package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"boardgame-tracker/internal/config"
	"boardgame-tracker/internal/domains/user"
	"boardgame-tracker/internal/shared/utils"
	"boardgame-tracker/pkg/cache"
	"boardgame-tracker/pkg/jwt"
)

const tokenType = "Bearer"

type userService struct {
	repo       user.Repository
	follows    user.FollowRepository
	cache      cache.Cache
	jwtManager *jwt.Manager
	tokenTTL   time.Duration
	auth       config.AuthConfig
	profileTTL time.Duration
	bcryptCost int
	now        func() time.Time
}

// NewUserService wires the account service. profileTTL <= 0 disables the
// follow-count cache.
func NewUserService(
	repo user.Repository,
	follows user.FollowRepository,
	c cache.Cache,
	jwtManager *jwt.Manager,
	tokenTTL time.Duration,
	auth config.AuthConfig,
	profileTTL time.Duration,
) user.Service {
	return &userService{
		repo:       repo,
		follows:    follows,
		cache:      c,
		jwtManager: jwtManager,
		tokenTTL:   tokenTTL,
		auth:       auth,
		profileTTL: profileTTL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	req.Email = user.NormalizeEmail(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrEmailAlreadyExists
	}

	exists, err = s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, user.ErrUsernameAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique constraints still guard against a concurrent signup.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Str("username", u.Username).Msg("[AUTH] User registered")
	return s.issueToken(u)
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.AuthResponse, error) {
	req.Email = user.NormalizeEmail(req.Email)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.isLocked(ctx, req.Email) {
		return nil, user.ErrAccountLocked
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			s.recordFailedLogin(ctx, req.Email)
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedLogin(ctx, req.Email)
		return nil, user.ErrInvalidCredentials
	}

	s.clearFailedLogins(ctx, req.Email)
	return s.issueToken(u)
}

func (s *userService) issueToken(u *user.User) (*user.AuthResponse, error) {
	token, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email, u.Username, u.TrustedUser)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.AuthResponse{
		AccessToken: token,
		TokenType:   tokenType,
		ExpiresAt:   s.now().UTC().Add(s.tokenTTL),
		User: user.AuthUser{
			ID:          u.ID,
			Email:       u.Email,
			Username:    u.Username,
			TrustedUser: u.TrustedUser,
		},
	}, nil
}

// ========================================
// FAILED LOGIN LOCKOUT
// ========================================

func attemptKey(email string) string { return "failed_login:" + email }
func lockKey(email string) string    { return "account_locked:" + email }

// isLocked fails open: a cache outage never blocks a login.
func (s *userService) isLocked(ctx context.Context, email string) bool {
	locked, err := s.cache.Exists(ctx, lockKey(email))
	if err != nil {
		log.Warn().Err(err).Msg("[AUTH] Lock check failed")
		return false
	}
	return locked
}

func (s *userService) recordFailedLogin(ctx context.Context, email string) {
	key := attemptKey(email)

	attempts, err := s.cache.Increment(ctx, key)
	if err != nil {
		log.Warn().Err(err).Msg("[AUTH] Failed to count login attempt")
		return
	}

	if attempts == 1 {
		if err := s.cache.Expire(ctx, key, s.auth.AttemptWindow); err != nil {
			log.Warn().Err(err).Msg("[AUTH] Failed to set attempt window")
		}
	}

	if attempts < int64(s.auth.MaxFailedLogins) {
		return
	}

	if err := s.cache.Set(ctx, lockKey(email), true, s.auth.LockoutDuration); err != nil {
		log.Warn().Err(err).Msg("[AUTH] Failed to lock account")
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Msg("[AUTH] Failed to reset attempt counter")
	}

	log.Warn().
		Int64("attempts", attempts).
		Dur("lockout", s.auth.LockoutDuration).
		Msg("[AUTH] Account locked after repeated failed logins")
}

func (s *userService) clearFailedLogins(ctx context.Context, email string) {
	if err := s.cache.Delete(ctx, attemptKey(email)); err != nil {
		log.Debug().Err(err).Msg("[AUTH] Failed to clear attempt counter")
	}
}

// ========================================
// PROFILE
// ========================================

func (s *userService) GetMe(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *userService) GetPublicProfile(ctx context.Context, username string) (*user.PublicProfile, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}

	counts, err := s.followCounts(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &user.PublicProfile{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Bio:            u.Bio,
		AvatarURL:      u.AvatarURL,
		FollowersCount: counts.Followers,
		FollowingCount: counts.Following,
	}, nil
}

// followCounts is cache-aside over two concurrent COUNT queries.
func (s *userService) followCounts(ctx context.Context, userID uuid.UUID) (user.FollowCounts, error) {
	key := FollowCountsKey(userID)

	if s.profileTTL > 0 {
		var cached user.FollowCounts
		if found, err := s.cache.Get(ctx, key, &cached); err == nil && found {
			return cached, nil
		}
	}

	var counts user.FollowCounts
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.follows.CountFollowers(gctx, userID)
		counts.Followers = n
		return err
	})
	g.Go(func() error {
		n, err := s.follows.CountFollowing(gctx, userID)
		counts.Following = n
		return err
	})
	if err := g.Wait(); err != nil {
		return user.FollowCounts{}, err
	}

	if s.profileTTL > 0 {
		if err := s.cache.Set(ctx, key, counts, s.profileTTL); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("[USERS] Cache write failed")
		}
	}
	return counts, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, req user.UpdateProfileRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		u.DisplayName = utils.NullIfEmpty(req.DisplayName)
	}
	if req.Bio != nil {
		u.Bio = utils.NullIfEmpty(req.Bio)
	}
	if req.AvatarURL != nil {
		u.AvatarURL = utils.NullIfEmpty(req.AvatarURL)
	}
	u.UpdatedAt = s.now().UTC()

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Msg("[USERS] Profile updated")
	return u, nil
}

// FollowCountsKey is the cache key for a user's follower/following counts.
func FollowCountsKey(userID uuid.UUID) string {
	return "follow_counts:" + userID.String()
}
