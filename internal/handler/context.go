package handler

import (
	"github.com/labstack/echo/v4"

	"contactapp/internal/model"
)

// currentUserKey is where the identity-resolution middleware stashes the
// resolved user.
const currentUserKey = "currentUser"

// SetCurrentUser stores the resolved identity on the request context.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(currentUserKey, user)
}

// CurrentUser returns the identity resolved for this request, if any.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(currentUserKey).(*model.User)
	return user, ok
}
