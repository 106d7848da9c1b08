package chat

import (
	"net/http"

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
	g.POST("/chat/messages", h.Send)
	g.GET("/chat/messages", h.Conversation)
}

func respondError(c echo.Context, err error) error {
	code, body := errs.JSON(err)
	return c.JSON(code, body)
}

func (h *Handler) Send(c echo.Context) error {
	caller, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return respondError(c, errs.Auth("not authenticated"))
	}

	var in SendInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, errs.Validation("invalid request body"))
	}
	m, err := h.svc.Send(c.Request().Context(), caller.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *Handler) Conversation(c echo.Context) error {
	caller, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return respondError(c, errs.Auth("not authenticated"))
	}
	page := pagination.FromContext(c)

	msgs, total, err := h.svc.Conversation(c.Request().Context(), caller.UserID, c.QueryParam("with"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(msgs, total, page.Limit, page.Offset))
}
