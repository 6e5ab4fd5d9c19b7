package model

import "time"

// Role values stored in users.role.  Promotion to admin happens through an
// explicit administrative action, never through self-service registration.
const (
    RoleUser  = "user"
    RoleAdmin = "admin"
)

// User represents a principal as stored in the `users` table.  The password
// hash never leaves the repository layer; handlers expose only public fields.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – "user" or "admin".
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    // users.id
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    CreatedAt    time.Time // users.created_at
}

// IsAdmin reports whether the principal carries the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
