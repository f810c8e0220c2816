package domain

import "errors"

// ErrPermissionDenied indicates that the caller's role does not allow the operation.
var ErrPermissionDenied = errors.New("permission denied")

// Role is the capability set granted to a caller.
type Role string

// Supported roles.
const (
	RoleAdmin    Role = "ADMIN"
	RoleAuditor  Role = "AUDITOR"
	RoleCustomer Role = "CUSTOMER"
)

// CanAudit returns true if the role grants read access to the audit surface.
func (r Role) CanAudit() bool {
	return r == RoleAdmin || r == RoleAuditor
}
