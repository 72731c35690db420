package model

// Role is the authorization dimension of a User.
// The set of role strings is open; only RoleAdmin grants privileges,
// every other value is treated as a restricted role.
type Role string

// RoleAdmin is the privileged role. Matching is exact and case-sensitive.
const RoleAdmin Role = "ADMIN"

// IsAdmin reports whether the role is the privileged administrator role.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User is the person a report is generated for.
type User struct {
	// Name is rendered in report headers and CSV rows.
	Name string `json:"name" yaml:"name"`

	// Role decides which items are visible and whether they are annotated.
	Role Role `json:"role" yaml:"role"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u User) IsAdmin() bool {
	return u.Role.IsAdmin()
}
