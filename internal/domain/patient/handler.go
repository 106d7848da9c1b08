package patient

import (
	"net/http"
	"time"

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
	g.POST("/patients", h.Create, auth.Require(auth.OpPatientWrite))
	g.GET("/patients", h.List, auth.Require(auth.OpPatientRead))
	g.GET("/patients/:id", h.Get, auth.Require(auth.OpPatientRead))
	g.PUT("/patients/:id", h.Update, auth.Require(auth.OpPatientWrite))
	g.DELETE("/patients/:id", h.Delete, auth.Require(auth.OpPatientDelete))
	g.PATCH("/patients/:id/payment-status", h.SetPaymentStatus, auth.Require(auth.OpPaymentStatusUpdate))
}

func respondError(c echo.Context, err error) error {
	code, body := errs.JSON(err)
	return c.JSON(code, body)
}

func (h *Handler) Create(c echo.Context) error {
	id, _ := auth.IdentityFromContext(c.Request().Context())

	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, errs.Validation("invalid request body"))
	}

	p, err := h.svc.Create(c.Request().Context(), id.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid patient id"))
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	page := pagination.FromContext(c)

	f := Filter{
		Search:           c.QueryParam("search"),
		SearchField:      c.QueryParam("searchField"),
		Gender:           c.QueryParam("gender"),
		RecordedBy:       c.QueryParam("recordedBy"),
		WithExaminations: c.QueryParam("withExaminations") == "true",
		Limit:            page.Limit,
		Offset:           page.Offset,
	}
	if from := c.QueryParam("scanFrom"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return respondError(c, errs.Validation("scanFrom must be RFC3339"))
		}
		f.ScanFrom = &t
	}
	if to := c.QueryParam("scanTo"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return respondError(c, errs.Validation("scanTo must be RFC3339"))
		}
		f.ScanTo = &t
	}

	patients, total, err := h.svc.List(c.Request().Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(patients, total, page.Limit, page.Offset))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid patient id"))
	}

	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, errs.Validation("invalid request body"))
	}

	p, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid patient id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type paymentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) SetPaymentStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid patient id"))
	}

	var req paymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errs.Validation("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, errs.Validation("status is required"))
	}

	caller, _ := auth.IdentityFromContext(c.Request().Context())
	if err := h.svc.SetPaymentStatus(c.Request().Context(), id, req.Status, caller.UserID); err != nil {
		return respondError(c, err)
	}

	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
