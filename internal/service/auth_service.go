package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"contactapp/internal/auth"
	apperrors "contactapp/internal/errors"
	"contactapp/internal/mailer"
	"contactapp/internal/model"
	"contactapp/internal/repository"
	"contactapp/internal/storage"
)

// AuthService handles registration, login and the token-driven email flows.
type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, identifier, password string) (accessToken, refreshToken string, err error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	VerifyEmail(ctx context.Context, token string) (alreadyVerified bool, err error)
	RequestVerificationEmail(ctx context.Context, email string) (alreadyVerified bool, err error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) (*model.User, error)
}

type authService struct {
	users   repository.UserRepository
	tokens  *auth.TokenService
	cache   Cache
	mail    Mailer
	avatars storage.AvatarSource
	baseURL string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	cache Cache,
	mail Mailer,
	avatars storage.AvatarSource,
	baseURL string,
) AuthService {
	return &authService{
		users:   users,
		tokens:  tokens,
		cache:   cache,
		mail:    mail,
		avatars: avatars,
		baseURL: baseURL,
	}
}

// Signup registers a new unverified user. The pre-check on the email is an
// optimization; the unique constraint at insert time is the actual guard, so
// a concurrent duplicate signup maps to the same conflict.
func (s *authService) Signup(ctx context.Context, username, email, password string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	avatarURL := ""
	if s.avatars != nil {
		if url, err := s.avatars.LookupURL(ctx, email); err != nil {
			log.Printf("could not retrieve avatar for %s: %v", email, err)
		} else {
			avatarURL = url
		}
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		AvatarURL:    avatarURL,
		Verified:     false,
		Role:         model.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.enqueueVerificationEmail(user)
	return user, nil
}

// Login accepts an email or a username as the identifier. Unknown identifier
// and wrong password produce the same error so callers cannot probe which
// accounts exist.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, string, error) {
	var (
		user *model.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.users.FindByEmail(ctx, identifier)
	} else {
		user, err = s.users.FindByUsername(ctx, identifier)
	}
	if err != nil || !auth.CheckPassword(password, user.PasswordHash) {
		return "", "", apperrors.ErrInvalidCredentials
	}
	if !user.Verified {
		return "", "", apperrors.ErrEmailNotVerified
	}

	cacheUserSnapshot(ctx, s.cache, user)

	accessToken, err := s.tokens.Issue(user.Email, auth.ScopeAccess)
	if err != nil {
		return "", "", fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.Issue(user.Email, auth.ScopeRefresh)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

// RefreshAccessToken exchanges a valid refresh token for a fresh access token.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	email, err := s.tokens.Decode(refreshToken, auth.ScopeRefresh)
	if err != nil {
		return "", err
	}
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}
	return s.tokens.Issue(email, auth.ScopeAccess)
}

// VerifyEmail confirms the address carried by an email_verification token.
// Re-verifying an already verified account succeeds idempotently.
func (s *authService) VerifyEmail(ctx context.Context, token string) (bool, error) {
	email, err := s.tokens.Decode(token, auth.ScopeEmailVerification)
	if err != nil {
		return false, err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.ErrVerification
		}
		return false, fmt.Errorf("find user: %w", err)
	}
	if user.Verified {
		return true, nil
	}

	if err := s.users.ConfirmEmail(ctx, email); err != nil {
		return false, fmt.Errorf("confirm email: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(email))
	return false, nil
}

// RequestVerificationEmail re-sends the verification link. The outcome is the
// same whether or not the address is registered, except for the explicitly
// idempotent already-verified case.
func (s *authService) RequestVerificationEmail(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("find user: %w", err)
	}
	if user.Verified {
		return true, nil
	}
	s.enqueueVerificationEmail(user)
	return false, nil
}

// RequestPasswordReset schedules a reset email when the address is registered.
// The caller always gets a generic success to prevent enumeration.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := s.tokens.Issue(user.Email, auth.ScopePasswordReset)
	if err != nil {
		log.Printf("issue password reset token for %s: %v", user.Email, err)
		return nil
	}
	s.mail.Enqueue(mailer.Message{
		To:      user.Email,
		Subject: "Reset your password",
		Body: fmt.Sprintf(
			"<p>Hello %s,</p><p>Use this token to reset your password within 15 minutes:</p><p><code>%s</code></p>",
			user.Username, token,
		),
	})
	return nil
}

// ResetPassword replaces the password of the user named by a password_reset
// token. The token stays valid until expiry; consumption is not tracked.
func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) (*model.User, error) {
	email, err := s.tokens.Decode(token, auth.ScopePasswordReset)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.UpdatePassword(ctx, email, hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("update password: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(email))
	return user, nil
}

func (s *authService) enqueueVerificationEmail(user *model.User) {
	token, err := s.tokens.Issue(user.Email, auth.ScopeEmailVerification)
	if err != nil {
		log.Printf("issue verification token for %s: %v", user.Email, err)
		return
	}
	link := fmt.Sprintf("%s/api/v1/auth/verified_email/%s", s.baseURL, token)
	s.mail.Enqueue(mailer.Message{
		To:      user.Email,
		Subject: "Confirm your email",
		Body: fmt.Sprintf(
			"<p>Hello %s,</p><p>Confirm your email by visiting <a href=\"%s\">this link</a>. The link expires in 48 hours.</p>",
			user.Username, link,
		),
	})
}
