package risk

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matricare/matricare/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/risk/level", h.Level)
}

// Level returns the caller's current aggregate risk status.
func (h *Handler) Level(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}
	verdict, err := h.svc.CurrentLevel(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, verdict)
}
