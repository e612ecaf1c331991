package domain

import "errors"

// User errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// OTP errors. A failed verification is deliberately a single error so the
// caller cannot distinguish a missing, expired or mismatched code.
var (
	ErrOTPInvalidOrExpired = errors.New("invalid or expired OTP")
	ErrOTPThrottled        = errors.New("otp recently sent, wait before retrying")
)

// Token errors
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Authorization errors
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)

// Validation errors
var (
	ErrInvalidPhone = errors.New("phone number must be a valid international format")
	ErrInvalidCode  = errors.New("OTP must be a 6 digit numeric code")
)
