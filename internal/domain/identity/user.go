package identity

import (
	"context"
	"strings"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role controls what a staff account may do
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleReception Role = "reception"
	RoleLawyer    Role = "lawyer"
)

// IsValid checks whether the role is one of the known values
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleReception, RoleLawyer:
		return true
	}
	return false
}

// User is a staff account
type User struct {
	shared.BaseAggregateRoot
	Username     string
	DisplayName  string
	Phone        string
	PasswordHash string
	Role         Role
	Active       bool
	LastLoginAt  *time.Time
}

// NewUser creates a staff account with a bcrypt-hashed password
func NewUser(username, displayName, phone, password string, role Role) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Username is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		DisplayName:       strings.TrimSpace(displayName),
		Phone:             strings.TrimSpace(phone),
		PasswordHash:      string(hash),
		Role:              role,
		Active:            true,
	}, nil
}

// CheckPassword verifies a candidate password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the password after verifying the current one
func (u *User) ChangePassword(current, next string) error {
	if !u.CheckPassword(current) {
		return shared.NewDomainError("UNAUTHORIZED", "Current password is incorrect")
	}
	if len(next) < 8 {
		return shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = time.Now()
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
}

// Activate re-enables the account
func (u *User) Activate() {
	u.Active = true
	u.UpdatedAt = time.Now()
}

// UserRepository defines persistence operations for staff accounts
type UserRepository interface {
	shared.Repository[User]
	FindByUsername(ctx context.Context, username string) (*User, error)
}
