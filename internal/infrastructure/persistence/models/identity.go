package models

import (
	"time"

	"github.com/clubgate/backend/internal/domain/identity"
)

// UserModel is the persistence model for staff accounts.
type UserModel struct {
	AggregateModel
	Username     string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayName  string        `gorm:"type:varchar(200)"`
	Phone        string        `gorm:"type:varchar(50)"`
	PasswordHash string        `gorm:"type:varchar(200);not null"`
	Role         identity.Role `gorm:"type:varchar(20);not null;index"`
	Active       bool          `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User aggregate.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.aggregateRoot(),
		Username:          m.Username,
		DisplayName:       m.DisplayName,
		Phone:             m.Phone,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		Active:            m.Active,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User aggregate.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.DisplayName = u.DisplayName
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.Active = u.Active
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User aggregate.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
