package query

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
	g.POST("/queries", h.Create, auth.Require(auth.OpQueryWrite))
	g.GET("/queries", h.List, auth.Require(auth.OpQueryWrite))
	g.PATCH("/queries/:id/status", h.SetStatus, auth.Require(auth.OpQueryWrite))
	g.PATCH("/queries/:id/resolve", h.Resolve, auth.Require(auth.OpQueryResolve))
}

func respondError(c echo.Context, err error) error {
	code, body := errs.JSON(err)
	return c.JSON(code, body)
}

func (h *Handler) Create(c echo.Context) error {
	caller, _ := auth.IdentityFromContext(c.Request().Context())

	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, errs.Validation("invalid request body"))
	}
	q, err := h.svc.Create(c.Request().Context(), caller.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, q)
}

func (h *Handler) List(c echo.Context) error {
	page := pagination.FromContext(c)
	queries, total, err := h.svc.List(c.Request().Context(), c.QueryParam("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(queries, total, page.Limit, page.Offset))
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) SetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid query id"))
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errs.Validation("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, errs.Validation("status is required"))
	}

	q, err := h.svc.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *Handler) Resolve(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid query id"))
	}
	caller, _ := auth.IdentityFromContext(c.Request().Context())

	q, err := h.svc.Resolve(c.Request().Context(), id, caller.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}
