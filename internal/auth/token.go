package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Scope tags a token with the single operation class it may be used for.
type Scope string

const (
	// ScopeAccess authorizes regular API calls.
	ScopeAccess Scope = "access_token"
	// ScopeRefresh authorizes minting a fresh access token.
	ScopeRefresh Scope = "refresh_token"
	// ScopeEmailVerification authorizes confirming an email address.
	ScopeEmailVerification Scope = "email_verification"
	// ScopePasswordReset authorizes replacing a forgotten password.
	ScopePasswordReset Scope = "password_reset"
)

var (
	// ErrTokenInvalid is returned for malformed, tampered or expired tokens.
	ErrTokenInvalid = errors.New("invalid or expired token")
	// ErrTokenScopeMismatch is returned when a correctly signed token carries
	// a scope other than the one the operation expects.
	ErrTokenScopeMismatch = errors.New("invalid scope for token")
	// ErrTokenMalformed is returned when a verified token lacks a subject.
	ErrTokenMalformed = errors.New("token has no subject")
)

// Claims are the JWT claims carried by every token this service issues.
// Subject holds the user's email; Scope discriminates the four token kinds.
type Claims struct {
	Scope Scope `json:"scope"`
	jwt.RegisteredClaims
}

// TTLConfig fixes the lifetime of each token scope.
type TTLConfig struct {
	Access            time.Duration
	Refresh           time.Duration
	EmailVerification time.Duration
	PasswordReset     time.Duration
}

// DefaultTTLs mirrors the production defaults.
func DefaultTTLs() TTLConfig {
	return TTLConfig{
		Access:            30 * time.Minute,
		Refresh:           7 * 24 * time.Hour,
		EmailVerification: 48 * time.Hour,
		PasswordReset:     15 * time.Minute,
	}
}

// TokenService issues and validates the four scoped token classes. All scopes
// share one HS256 signing key; the scope claim is the sole discriminator.
type TokenService struct {
	secret []byte
	ttls   TTLConfig
	now    func() time.Time
}

// NewTokenService creates a token service with the given secret and lifetimes.
func NewTokenService(secret string, ttls TTLConfig) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttls:   ttls,
		now:    time.Now,
	}
}

func (s *TokenService) ttl(scope Scope) time.Duration {
	switch scope {
	case ScopeRefresh:
		return s.ttls.Refresh
	case ScopeEmailVerification:
		return s.ttls.EmailVerification
	case ScopePasswordReset:
		return s.ttls.PasswordReset
	default:
		return s.ttls.Access
	}
}

// Issue signs a token for the given subject email and scope, with the expiry
// fixed by the scope's configured lifetime.
func (s *TokenService) Issue(email string, scope Scope) (string, error) {
	now := s.now()
	claims := &Claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl(scope))),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Decode verifies signature and expiry, then requires the scope claim to equal
// expected. Returns the subject email on success. Scope mismatch is reported
// distinctly from signature/expiry failures so callers can map statuses.
func (s *TokenService) Decode(tokenString string, expected Scope) (string, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return "", err
	}
	if claims.Scope != expected {
		return "", ErrTokenScopeMismatch
	}
	if claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
