package calendar

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/g2g/mri/internal/platform/auth"
	"github.com/g2g/mri/internal/platform/errs"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/calendar-events", h.Create, auth.Require(auth.OpCalendarWrite))
	g.GET("/calendar-events", h.List, auth.Require(auth.OpCalendarWrite))
	g.PUT("/calendar-events/:id", h.Update, auth.Require(auth.OpCalendarWrite))
	g.DELETE("/calendar-events/:id", h.Delete, auth.Require(auth.OpCalendarWrite))
}

func respondError(c echo.Context, err error) error {
	code, body := errs.JSON(err)
	return c.JSON(code, body)
}

func (h *Handler) Create(c echo.Context) error {
	caller, _ := auth.IdentityFromContext(c.Request().Context())

	var in EventInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, errs.Validation("invalid request body"))
	}
	e, err := h.svc.Create(c.Request().Context(), caller.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) List(c echo.Context) error {
	var from, to *time.Time
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return respondError(c, errs.Validation("from must be RFC3339"))
		}
		from = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return respondError(c, errs.Validation("to must be RFC3339"))
		}
		to = &t
	}

	events, err := h.svc.ListRange(c.Request().Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": events})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid event id"))
	}
	var in EventInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, errs.Validation("invalid request body"))
	}
	e, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid event id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
