package result

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/g2g/mri/internal/platform/auth"
	"github.com/g2g/mri/internal/platform/errs"
)

// maxUploadBytes caps result uploads at 25 MB.
const maxUploadBytes = 25 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/patients/:id/results", h.Upload, auth.Require(auth.OpResultWrite))
	g.GET("/patients/:id/results", h.ListByPatient, auth.Require(auth.OpPatientRead))
	g.PATCH("/results/:id/status", h.SetStatus, auth.Require(auth.OpResultWrite))
	g.POST("/results/:id/issue", h.Issue, auth.Require(auth.OpResultIssue))
	g.GET("/results/:id/download", h.Download, auth.Require(auth.OpPatientRead))
	g.DELETE("/results/:id", h.Delete, auth.Require(auth.OpResultDelete))
}

func respondError(c echo.Context, err error) error {
	code, body := errs.JSON(err)
	return c.JSON(code, body)
}

// Upload accepts a multipart form with an optional "file" part. Without a
// file the service renders a placeholder document.
func (h *Handler) Upload(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid patient id"))
	}
	caller, _ := auth.IdentityFromContext(c.Request().Context())

	in := UploadInput{Remarks: c.FormValue("remarks")}
	if fh, err := c.FormFile("file"); err == nil {
		if fh.Size > maxUploadBytes {
			return respondError(c, errs.Validation("file exceeds %d bytes", maxUploadBytes))
		}
		src, err := fh.Open()
		if err != nil {
			return respondError(c, errs.Validation("unreadable file part"))
		}
		defer src.Close()
		data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
		if err != nil {
			return respondError(c, errs.Validation("unreadable file part"))
		}
		in.Data = data
		in.Filename = fh.Filename
		in.MimeType = fh.Header.Get("Content-Type")
	}

	f, err := h.svc.Upload(c.Request().Context(), patientID, caller.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid patient id"))
	}
	files, err := h.svc.ListByPatient(c.Request().Context(), patientID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"data": files})
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *Handler) SetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid result id"))
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errs.Validation("invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, errs.Validation("status is required"))
	}

	f, err := h.svc.SetStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) Issue(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid result id"))
	}
	var in IssueInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, errs.Validation("invalid request body"))
	}

	caller, _ := auth.IdentityFromContext(c.Request().Context())
	f, err := h.svc.Issue(c.Request().Context(), id, caller.UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *Handler) Download(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid result id"))
	}
	caller, _ := auth.IdentityFromContext(c.Request().Context())

	url, err := h.svc.Download(c.Request().Context(), id, caller.CanDownload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"url": url})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return respondError(c, errs.Validation("invalid result id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
