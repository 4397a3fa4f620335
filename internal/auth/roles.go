package auth

import (
	apperrors "contactapp/internal/errors"
	"contactapp/internal/model"
)

// RequireRole allows the user through when their role is in the allowed set,
// and returns ErrForbidden otherwise. The caller is known at this point, so
// the failure is a 403, never a 401.
func RequireRole(user *model.User, allowed ...model.Role) error {
	for _, role := range allowed {
		if user.Role == role {
			return nil
		}
	}
	return apperrors.ErrForbidden
}
