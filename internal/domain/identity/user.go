package identity

import (
	"strings"

	"github.com/pyasti/backend/internal/domain/shared"
	"github.com/pyasti/backend/internal/domain/shared/valueobject"
)

// Role represents a user's role in the storefront
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// IsValid returns true if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Language is a user's preferred notification language
type Language string

const (
	LanguageFrench  Language = "fr"
	LanguageEnglish Language = "en"
)

// DefaultLanguage is applied when no preference is set
const DefaultLanguage = LanguageFrench

// IsValid returns true if the language is supported
func (l Language) IsValid() bool {
	return l == LanguageFrench || l == LanguageEnglish
}

// User represents a storefront account (buyer, seller, or admin)
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
	Role         Role
	Language     Language
	Address      valueobject.Address
	IsActive     bool
}

// NewUser creates a new user account
func NewUser(name, email, phoneNumber, passwordHash string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PhoneNumber:       strings.TrimSpace(phoneNumber),
		PasswordHash:      passwordHash,
		Role:              role,
		Language:          DefaultLanguage,
		IsActive:          true,
	}, nil
}

// SetLanguage updates the preferred language; unsupported values fall back
// to the default
func (u *User) SetLanguage(lang Language) {
	if !lang.IsValid() {
		lang = DefaultLanguage
	}
	u.Language = lang
	u.Touch()
	u.IncrementVersion()
}

// SetAddress updates the user's shipping address
func (u *User) SetAddress(address valueobject.Address) {
	u.Address = address
	u.Touch()
	u.IncrementVersion()
}

// Update edits the fields an administrator manages: name, email, and
// role. The same rules as NewUser apply.
func (u *User) Update(name, email string, role Role) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	u.Name = name
	u.Email = email
	u.Role = role
	u.Touch()
	u.IncrementVersion()
	return nil
}

// Deactivate disables the account
func (u *User) Deactivate() error {
	if !u.IsActive {
		return shared.NewDomainError("ALREADY_INACTIVE", "User is already inactive")
	}
	u.IsActive = false
	u.Touch()
	u.IncrementVersion()
	return nil
}

// IsSeller returns true for seller accounts
func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

// IsAdmin returns true for admin accounts
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
