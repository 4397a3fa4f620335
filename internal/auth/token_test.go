package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestService() *TokenService {
	return NewTokenService(testSecret, DefaultTTLs())
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTestService()
	scopes := []Scope{ScopeAccess, ScopeRefresh, ScopeEmailVerification, ScopePasswordReset}

	for _, scope := range scopes {
		t.Run(string(scope), func(t *testing.T) {
			token, err := svc.Issue("bob@example.com", scope)
			require.NoError(t, err)

			email, err := svc.Decode(token, scope)
			require.NoError(t, err)
			assert.Equal(t, "bob@example.com", email)
		})
	}
}

func TestTokenService_ScopeMismatch(t *testing.T) {
	svc := newTestService()
	scopes := []Scope{ScopeAccess, ScopeRefresh, ScopeEmailVerification, ScopePasswordReset}

	for _, issued := range scopes {
		token, err := svc.Issue("bob@example.com", issued)
		require.NoError(t, err)

		for _, expected := range scopes {
			if expected == issued {
				continue
			}
			_, err := svc.Decode(token, expected)
			assert.ErrorIs(t, err, ErrTokenScopeMismatch,
				"token issued as %s must not decode as %s", issued, expected)
		}
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := newTestService()
	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

	token, err := svc.Issue("bob@example.com", ScopeAccess)
	require.NoError(t, err)

	_, err = svc.Decode(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_Tampered(t *testing.T) {
	svc := newTestService()
	token, err := svc.Issue("bob@example.com", ScopeAccess)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = svc.Decode(tampered, ScopeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.Decode("not-a-jwt", ScopeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_WrongKey(t *testing.T) {
	token, err := NewTokenService("other-secret", DefaultTTLs()).Issue("bob@example.com", ScopeAccess)
	require.NoError(t, err)

	_, err = newTestService().Decode(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_MissingSubject(t *testing.T) {
	claims := &Claims{
		Scope: ScopeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = newTestService().Decode(token, ScopeAccess)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
