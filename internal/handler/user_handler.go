package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"contactapp/internal/auth"
	"contactapp/internal/errors"
	"contactapp/internal/model"
	"contactapp/internal/service"
	"contactapp/internal/storage"
)

// UserHandler handles profile endpoints.
type UserHandler struct {
	userService service.UserService
	uploader    storage.AvatarUploader
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService, uploader storage.AvatarUploader) *UserHandler {
	return &UserHandler{userService: userService, uploader: uploader}
}

// Me godoc
// @Summary Get the current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAvatar godoc
// @Summary Upload a new avatar (admin only)
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Avatar image"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/avatar [patch]
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	if err := auth.RequireRole(user, model.RoleAdmin); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing avatar file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable avatar file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable avatar file")
	}

	url, err := h.uploader.Upload(c.Request().Context(), data, "avatars/"+user.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "avatar upload failed",
			Code:  "UPLOAD_FAILED",
		})
	}

	updated, err := h.userService.UpdateAvatar(c.Request().Context(), user.Email, url)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, updated)
}
