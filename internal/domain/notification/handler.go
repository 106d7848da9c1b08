package notification

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/g2g/mri/internal/platform/auth"
	"github.com/g2g/mri/internal/platform/errs"
	"github.com/g2g/mri/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/notifications", h.List)
	g.PATCH("/notifications/:id/read", h.MarkRead)
}

func respondError(c echo.Context, err error) error {
	code, body := errs.JSON(err)
	return c.JSON(code, body)
}

// List returns the caller's own notifications, newest first.
func (h *Handler) List(c echo.Context) error {
	caller, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return respondError(c, errs.Auth("not authenticated"))
	}
	page := pagination.FromContext(c)

	items, total, err := h.svc.ListForUser(c.Request().Context(), caller.UserID, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, page.Limit, page.Offset))
}

func (h *Handler) MarkRead(c echo.Context) error {
	caller, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return respondError(c, errs.Auth("not authenticated"))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid notification id"))
	}
	if err := h.svc.MarkRead(c.Request().Context(), id, caller.UserID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
