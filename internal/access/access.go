// Package access holds the ownership/role authorization predicate applied
// before every mutating operation on users, posts and comments.
package access

import "github.com/post-hub/iam-service/internal/models"

// IsPrivileged reports whether the role set grants admin-level access.
func IsPrivileged(roles []models.SystemRole) bool {
	for _, r := range roles {
		if r == models.RoleAdmin || r == models.RoleSuperAdmin {
			return true
		}
	}
	return false
}

// Authorize allows a caller acting on a resource when the caller owns it
// or holds a privileged role. Pure: no I/O, no ambient state.
func Authorize(callerID, ownerID uint, roles []models.SystemRole) bool {
	if callerID == ownerID {
		return true
	}
	return IsPrivileged(roles)
}
