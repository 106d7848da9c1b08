package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Operation names used by the policy table. Handlers guard routes with
// Require(op) instead of hard-coding role lists.
const (
	OpPatientWrite         = "patient:write"
	OpPatientRead          = "patient:read"
	OpPatientDelete        = "patient:delete"
	OpPaymentStatusUpdate  = "payment:update"
	OpResultWrite          = "result:write"
	OpResultIssue          = "result:issue"
	OpResultDelete         = "result:delete"
	OpStaffAdmin           = "staff:admin"
	OpQueryWrite           = "query:write"
	OpQueryResolve         = "query:resolve"
	OpCalendarWrite        = "calendar:write"
	OpDashboardRead        = "dashboard:read"
)

// policy maps an operation to the roles allowed to perform it. Admin is
// implicitly allowed everywhere. Operations missing from the table are
// admin-only.
var policy = map[string][]string{
	OpPatientWrite:        {RoleMedicalStaff, RoleDoctor},
	OpPatientRead:         {RoleMedicalStaff, RoleDoctor, RoleFinancialAdmin},
	OpPatientDelete:       {},
	OpPaymentStatusUpdate: {RoleFinancialAdmin},
	OpResultWrite:         {RoleMedicalStaff, RoleDoctor},
	OpResultIssue:         {RoleMedicalStaff, RoleDoctor},
	OpResultDelete:        {},
	OpStaffAdmin:          {},
	OpQueryWrite:          {RoleMedicalStaff, RoleDoctor, RoleFinancialAdmin},
	OpQueryResolve:        {},
	OpCalendarWrite:       {RoleMedicalStaff, RoleDoctor, RoleFinancialAdmin},
	OpDashboardRead:       {RoleMedicalStaff, RoleDoctor, RoleFinancialAdmin},
}

// Allowed reports whether the role may perform the operation.
func Allowed(role, op string) bool {
	if role == RoleAdmin {
		return true
	}
	for _, r := range policy[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Require returns middleware enforcing the policy table for an operation.
func Require(op string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if !Allowed(id.Role, op) {
				allowed := append([]string{RoleAdmin}, policy[op]...)
				return echo.NewHTTPError(http.StatusForbidden,
					fmt.Sprintf("operation %s requires role: %s", op, strings.Join(allowed, " or ")))
			}
			return next(c)
		}
	}
}
