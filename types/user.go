package types

import "time"

// Supported account roles. A user holds exactly one role, fixed at
// registration.
const (
	RoleCandidate = "candidate"
	RoleCompany   = "company"
)

// ValidRole reports whether role is one of the supported account roles.
func ValidRole(role string) bool {
	return role == RoleCandidate || role == RoleCompany
}

// User represents an account in the system.
// It contains identity, role, acquired skills, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Name is the user's display or full name.
	Name string `json:"name" db:"name"`

	// Email is the user's email address. Uniqueness is enforced by a
	// storage-level index, case-sensitively.
	Email string `json:"email" db:"email"`

	// Role indicates whether the account belongs to a candidate or a
	// company. Immutable after creation.
	Role string `json:"role" db:"role"`

	// Skills is the set of skill tags the user has earned by passing
	// challenges. Tags are unique and only ever appended.
	Skills []string `json:"skills" db:"skills"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PublicView is the reduced user representation returned from login.
type PublicView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Public returns the user's public view.
func (u User) Public() PublicView {
	return PublicView{ID: u.ID, Name: u.Name, Role: u.Role}
}
