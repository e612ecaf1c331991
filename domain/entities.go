package domain

import "time"

// Roles a user can hold. Tokens and gates only ever see these values.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// IsValidRole reports whether role is one of the enumerated roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// User represents an identity record. At least one of Email or Phone is set.
type User struct {
	ID           uint
	Name         string
	Email        string
	Phone        string
	PasswordHash string `gorm:"column:password"`
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the caller-facing view of a User. The password hash never
// leaves the service.
type PublicUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

// Public returns the serializable view of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  u.Role,
	}
}

// OtpChallenge is the single live OTP record for a phone number. A new
// request replaces any prior challenge; verification consumes it.
type OtpChallenge struct {
	Phone     string
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c *OtpChallenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// AuthResult represents a successful login outcome.
type AuthResult struct {
	User    *PublicUser
	Token   string
	Message string
}

// TokenClaims is the minimal identity payload carried inside a session token.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Identity is what the authorization gate attaches to a request context.
// Both fields are always resolved together.
type Identity struct {
	UserID uint
	Role   string
}
