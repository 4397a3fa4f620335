package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"contactapp/internal/service"
)

// HealthHandler reports store reachability.
type HealthHandler struct {
	userService service.UserService
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(userService service.UserService) *HealthHandler {
	return &HealthHandler{userService: userService}
}

// Check godoc
// @Summary Health check
// @Tags utils
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 503 {object} MessageResponse
// @Router /healthchecker [get]
func (h *HealthHandler) Check(c echo.Context) error {
	if err := h.userService.HealthCheck(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, MessageResponse{Message: "Error connecting to the database"})
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Application and database connection are healthy"})
}
