package entity

import "time"

// Role is the authorization role assigned to a user account.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash, never the plaintext.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}
