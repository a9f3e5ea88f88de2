// File: internal/common/roles.go
package common

// User roles. The set is closed: anything else is rejected at the API
// boundary before it reaches storage.
const (
	RoleUser  = "USER"
	RoleAgent = "AGENT"
	RoleAdmin = "ADMIN"
)

// IsValidRole reports whether s is one of the known role values.
func IsValidRole(s string) bool {
	switch s {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}
