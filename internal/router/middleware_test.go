package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "contactapp/internal/errors"
	"contactapp/internal/handler"
	"contactapp/internal/model"
)

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) CurrentUser(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) UpdateAvatar(ctx context.Context, email, avatarURL string) (*model.User, error) {
	args := m.Called(ctx, email, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserService) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func identityContext(subject interface{}) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	c := echo.New().NewContext(req, httptest.NewRecorder())
	if subject != nil {
		c.Set("user", subject)
	}
	return c
}

func TestResolveIdentity(t *testing.T) {
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	t.Run("resolves the token subject to a full user", func(t *testing.T) {
		userSvc := new(mockUserService)
		user := &model.User{ID: 7, Email: "bob@example.com"}
		userSvc.On("CurrentUser", mock.Anything, "bob@example.com").Return(user, nil)

		c := identityContext("bob@example.com")
		require.NoError(t, resolveIdentity(userSvc)(next)(c))

		resolved, ok := handler.CurrentUser(c)
		require.True(t, ok)
		assert.Equal(t, uint(7), resolved.ID)
	})

	t.Run("unknown subject gets the same 401 as a bad token", func(t *testing.T) {
		userSvc := new(mockUserService)
		userSvc.On("CurrentUser", mock.Anything, "ghost@example.com").
			Return(nil, apperrors.ErrUserNotFound)

		c := identityContext("ghost@example.com")
		err := resolveIdentity(userSvc)(next)(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("missing subject is unauthorized", func(t *testing.T) {
		c := identityContext(nil)
		err := resolveIdentity(new(mockUserService))(next)(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}
