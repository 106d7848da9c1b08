package dashboard

import (
	"net/http"

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
	g.GET("/dashboard/summary", h.Summary, auth.Require(auth.OpDashboardRead))
}

func (h *Handler) Summary(c echo.Context) error {
	summary, err := h.svc.Summary(c.Request().Context())
	if err != nil {
		code, body := errs.JSON(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, summary)
}
