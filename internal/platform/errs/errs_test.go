package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindSurvivesWrapping(t *testing.T) {
	err := NotFound("patient %d not found", 7)
	wrapped := fmt.Errorf("loading patient: %w", err)
	if KindOf(wrapped) != KindNotFound {
		t.Errorf("expected not_found kind, got %s", KindOf(wrapped))
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad input"), http.StatusBadRequest},
		{Auth("no token"), http.StatusUnauthorized},
		{Forbidden("wrong role"), http.StatusForbidden},
		{NotFound("missing"), http.StatusNotFound},
		{Conflict("dependent rows"), http.StatusConflict},
		{Collaborator(errors.New("boom"), "store failed"), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestCollaboratorUnwraps(t *testing.T) {
	inner := errors.New("connection refused")
	err := Collaborator(inner, "blob delete failed")
	if !errors.Is(err, inner) {
		t.Error("expected wrapped error to match with errors.Is")
	}
}
