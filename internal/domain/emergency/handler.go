package emergency

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/matricare/matricare/internal/platform/auth"
	"github.com/matricare/matricare/internal/platform/sms"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/emergency", h.Trigger)
}

type triggerResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Results []sms.DeliveryResult `json:"results,omitempty"`
}

func (h *Handler) Trigger(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}
	results, err := h.svc.Trigger(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to send emergency alert")
	}
	if len(results) == 0 {
		return c.JSON(http.StatusOK, triggerResponse{Success: false, Message: "No emergency contacts configured"})
	}
	return c.JSON(http.StatusOK, triggerResponse{Success: true, Message: "Emergency SMS sent", Results: results})
}
