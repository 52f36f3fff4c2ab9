package domain

import (
	"strings"
	"time"
)

// Password length bounds. bcrypt ignores input beyond 72 bytes.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User represents a registered author.
//
// Password holds the plaintext only between request decoding and hashing;
// neither it nor HashedPassword is ever serialized.
type User struct {
	ID             string    `json:"_id"`
	Name           string    `json:"name"  validate:"required"`
	Email          string    `json:"email" validate:"required,email"`
	Password       string    `json:"-"     validate:"omitempty,min=8,max=72"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a validated User. The password is required here and must be
// hashed before the user is stored.
func NewUser(name, email, password string) (*User, error) {
	u := &User{
		Name:     strings.TrimSpace(name),
		Email:    NormalizeEmail(email),
		Password: password,
	}
	if password == "" {
		return nil, NewValidationError("User", "password", "is required", nil)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks name, email and, when present, the plaintext password.
// A user must carry either a plaintext or a hashed password.
func (u *User) Validate() error {
	if err := validateStruct("User", u); err != nil {
		return err
	}
	if u.Password == "" && u.HashedPassword == "" {
		return NewValidationError("User", "password", "is required", nil)
	}
	return nil
}

// Profile returns the public author view of the user.
func (u *User) Profile() *Author {
	return &Author{ID: u.ID, Name: u.Name, Email: u.Email}
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserPatch holds a partial user update. Nil fields are left unchanged.
type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Password *string `json:"password"  validate:"omitempty,min=8,max=72"`

	// HashedPassword is set by the handler after hashing Password.
	HashedPassword *string `json:"-"`
}

// IsEmpty reports whether the patch changes no stored field.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.HashedPassword == nil
}

// Validate rejects blank names, malformed emails and out-of-range passwords.
func (p *UserPatch) Validate() error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return NewValidationError("User", "name", "is required", nil)
		}
		p.Name = &name
	}
	if p.Email != nil {
		normalized := NormalizeEmail(*p.Email)
		if normalized == "" {
			return NewValidationError("User", "email", "is required", nil)
		}
		p.Email = &normalized
	}
	if p.Password != nil && *p.Password == "" {
		return NewValidationError("User", "password", "is required", nil)
	}
	return validateStruct("User", p)
}
