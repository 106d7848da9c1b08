package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

var testCfg = JWTConfig{Secret: []byte("0123456789abcdef0123456789abcdef"), Issuer: "mri-records"}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, token string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	h := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return rec, h(c)
}

func TestJWTMiddlewareAcceptsValidToken(t *testing.T) {
	id := Identity{UserID: "u1", Name: "Dr. Rao", Role: RoleDoctor, Verified: true, CanDownload: true}
	token, err := SignToken(testCfg, id, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTMiddleware(testCfg)(func(c echo.Context) error {
		got, ok := IdentityFromContext(c.Request().Context())
		if !ok {
			t.Fatal("expected identity in context")
		}
		if got.UserID != "u1" || got.Role != RoleDoctor || !got.CanDownload {
			t.Errorf("unexpected identity: %+v", got)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestJWTMiddlewareRejectsMissingHeader(t *testing.T) {
	_, err := doRequest(t, JWTMiddleware(testCfg), "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestJWTMiddlewareRejectsExpiredToken(t *testing.T) {
	token, err := SignToken(testCfg, Identity{UserID: "u1", Role: RoleDoctor, Verified: true}, -time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	_, err = doRequest(t, JWTMiddleware(testCfg), token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %v", err)
	}
}

func TestJWTMiddlewareRejectsUnverifiedAccount(t *testing.T) {
	token, err := SignToken(testCfg, Identity{UserID: "u2", Role: RoleMedicalStaff, Verified: false}, time.Hour)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	_, err = doRequest(t, JWTMiddleware(testCfg), token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403 for unverified account, got %v", err)
	}
}

func TestPolicyTable(t *testing.T) {
	cases := []struct {
		role string
		op   string
		want bool
	}{
		{RoleAdmin, OpPatientDelete, true},
		{RoleAdmin, OpStaffAdmin, true},
		{RoleFinancialAdmin, OpPaymentStatusUpdate, true},
		{RoleFinancialAdmin, OpPatientDelete, false},
		{RoleFinancialAdmin, OpPatientWrite, false},
		{RoleDoctor, OpPatientWrite, true},
		{RoleDoctor, OpResultIssue, true},
		{RoleDoctor, OpStaffAdmin, false},
		{RoleMedicalStaff, OpQueryWrite, true},
		{RoleMedicalStaff, OpQueryResolve, false},
	}
	for _, tc := range cases {
		if got := Allowed(tc.role, tc.op); got != tc.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tc.role, tc.op, got, tc.want)
		}
	}
}

func TestRequireDeniesWrongRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/patients/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetRequest(req.WithContext(WithIdentity(req.Context(), Identity{UserID: "u3", Role: RoleFinancialAdmin, Verified: true})))

	h := Require(OpPatientDelete)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestRequireWithoutIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Require(OpPatientRead)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestValidRole(t *testing.T) {
	for _, r := range []string{RoleAdmin, RoleMedicalStaff, RoleDoctor, RoleFinancialAdmin} {
		if !ValidRole(r) {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if ValidRole("janitor") {
		t.Error("expected unknown role to be invalid")
	}
}
