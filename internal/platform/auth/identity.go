// Package auth carries the caller's identity through the request and decides
// which roles may perform which operations.
package auth

import "context"

// Staff roles.
const (
	RoleAdmin          = "admin"
	RoleMedicalStaff   = "medical_staff"
	RoleDoctor         = "doctor"
	RoleFinancialAdmin = "financial_admin"
)

// Identity is the authenticated caller.
type Identity struct {
	UserID      string
	Name        string
	Role        string
	Verified    bool
	CanDownload bool
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the caller identity, or false if the request
// was not authenticated.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// ValidRole reports whether s is one of the known staff roles.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleMedicalStaff, RoleDoctor, RoleFinancialAdmin:
		return true
	}
	return false
}
