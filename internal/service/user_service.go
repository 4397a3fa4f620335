package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"contactapp/internal/cache"
	apperrors "contactapp/internal/errors"
	"contactapp/internal/model"
	"contactapp/internal/repository"
)

// userCacheTTL bounds how stale a cached identity snapshot may get.
const userCacheTTL = 15 * time.Minute

func userCacheKey(email string) string {
	return cache.Key("user", email)
}

// cacheUserSnapshot stores a JSON snapshot of the user, refreshing the TTL.
// Cache errors are swallowed; the database remains the source of truth.
func cacheUserSnapshot(ctx context.Context, c Cache, user *model.User) {
	if payload, err := json.Marshal(user); err == nil {
		_ = c.Set(ctx, userCacheKey(user.Email), payload, userCacheTTL)
	}
}

// UserService resolves identities (cache-aside) and mutates user profiles.
type UserService interface {
	CurrentUser(ctx context.Context, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, email, avatarURL string) (*model.User, error)
	HealthCheck(ctx context.Context) error
}

type userService struct {
	users repository.UserRepository
	cache Cache
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(users repository.UserRepository, cache Cache) UserService {
	return &userService{users: users, cache: cache}
}

// CurrentUser resolves an authenticated identity by email. The cache is
// consulted first; on a miss the database is read and the snapshot
// repopulated with a fresh TTL. A corrupt cache entry falls through to the
// database like a miss.
func (s *userService) CurrentUser(ctx context.Context, email string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(email)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	cacheUserSnapshot(ctx, s.cache, user)
	return user, nil
}

// UpdateAvatar persists a new avatar URL and drops the cached snapshot so the
// next identity resolution sees the change.
func (s *userService) UpdateAvatar(ctx context.Context, email, avatarURL string) (*model.User, error) {
	user, err := s.users.UpdateAvatar(ctx, email, avatarURL)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("update avatar: %w", err)
	}
	user.AvatarURL = avatarURL
	_ = s.cache.Delete(ctx, userCacheKey(email))
	return user, nil
}

// HealthCheck probes database reachability.
func (s *userService) HealthCheck(ctx context.Context) error {
	return s.users.Ping(ctx)
}
