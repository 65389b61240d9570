package models

// Roles assignable to a user. New accounts always start as RoleUser;
// promotion to RoleAdmin goes through the admin role endpoint.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	return s == RoleUser || s == RoleAdmin
}
