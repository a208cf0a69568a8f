package movement

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/matricare/matricare/internal/domain/risk"
	"github.com/matricare/matricare/internal/platform/auth"
	"github.com/matricare/matricare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/movements", h.Record)
	api.GET("/movements", h.List)
}

type recordRequest struct {
	HasMovement bool `json:"has_movement"`
	Count       *int `json:"count"`
}

type recordResponse struct {
	HasMovement bool       `json:"has_movement"`
	Count       int        `json:"count"`
	Date        time.Time  `json:"date"`
	Risk        risk.Level `json:"risk"`
	Advice      string     `json:"advice"`
}

func (h *Handler) Record(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}
	var in recordRequest
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.Count != nil && *in.Count < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "count must not be negative")
	}
	rec, verdict, err := h.svc.Record(c.Request().Context(), userID, in.HasMovement, in.Count)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, recordResponse{
		HasMovement: rec.HasMovement,
		Count:       rec.Count,
		Date:        rec.Day,
		Risk:        verdict.Level,
		Advice:      verdict.Advice,
	})
}

func (h *Handler) List(c echo.Context) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), userID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := pagination.NewResponse(items, total, pg.Limit, pg.Offset)
	resp.Links = pg.Links(c.Request().URL.Path, total)
	return c.JSON(http.StatusOK, resp)
}
