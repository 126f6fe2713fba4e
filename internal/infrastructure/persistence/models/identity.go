package models

import (
	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	AggregateModel
	Name         string              `gorm:"type:varchar(200);not null"`
	Email        string              `gorm:"type:varchar(254);not null;uniqueIndex"`
	PhoneNumber  string              `gorm:"type:varchar(30)"`
	PasswordHash string              `gorm:"type:varchar(200);not null"`
	Role         identity.Role       `gorm:"type:varchar(20);not null;default:'buyer';index"`
	Language     identity.Language   `gorm:"type:varchar(5);not null;default:'fr'"`
	Address      valueobject.Address `gorm:"type:jsonb"`
	IsActive     bool                `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		PhoneNumber:       m.PhoneNumber,
		PasswordHash:      m.PasswordHash,
		Role:              m.Role,
		Language:          m.Language,
		Address:           m.Address,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Name = u.Name
	m.Email = u.Email
	m.PhoneNumber = u.PhoneNumber
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role
	m.Language = u.Language
	m.Address = u.Address
	m.IsActive = u.IsActive
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
