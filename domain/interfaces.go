package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	// CreateWithPhone creates a user with the default role for an unseen
	// phone number. Returns ErrUserAlreadyExists on a uniqueness race.
	CreateWithPhone(ctx context.Context, phone string) (*User, error)
	FindByPhone(ctx context.Context, phone string) (*User, error)
	// FindByEmailWithSecret includes the password hash, for password-based
	// strategies layered on top of this service.
	FindByEmailWithSecret(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
}

// OtpRepository defines OTP challenge persistence. Both mutating operations
// are atomic per phone key.
type OtpRepository interface {
	// Upsert stores the challenge, replacing any live one for the phone.
	Upsert(ctx context.Context, challenge *OtpChallenge) error
	// Consume deletes the challenge if it exists, is unexpired and the code
	// matches, returning true. Any other condition returns false and leaves
	// the stored state unchanged. At most one concurrent call returns true.
	Consume(ctx context.Context, phone, code string) (bool, error)
	// Throttled marks the phone for the resend window and reports whether a
	// prior mark was still active.
	Throttled(ctx context.Context, phone string, window time.Duration) (bool, error)
}

// AuthService defines the authentication orchestration logic
type AuthService interface {
	RequestOTP(ctx context.Context, phone string) error
	VerifyOTPAndLogin(ctx context.Context, phone, code string) (*AuthResult, error)
}

// TokenService defines session token operations
type TokenService interface {
	Issue(user *User) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// NotificationService delivers codes to users out of band
type NotificationService interface {
	SendSMS(to, message string) error
}
