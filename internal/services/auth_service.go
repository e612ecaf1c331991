package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/you/phoneauth/domain"
)

// AuthConfig holds the orchestrator's fixed windows and code shape.
type AuthConfig struct {
	OTPLength    int
	OTPTTL       time.Duration
	ResendWindow time.Duration
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo        domain.UserRepository
	otpRepo         domain.OtpRepository
	tokenSvc        domain.TokenService
	notificationSvc domain.NotificationService
	config          AuthConfig
	logger          *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	otpRepo domain.OtpRepository,
	tokenSvc domain.TokenService,
	notificationSvc domain.NotificationService,
	config AuthConfig,
	logger *zap.Logger,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		otpRepo:         otpRepo,
		tokenSvc:        tokenSvc,
		notificationSvc: notificationSvc,
		config:          config,
		logger:          logger,
	}
}

// RequestOTP implements domain.AuthService. The generated code is stored and
// dispatched out of band; it is never returned to the caller.
func (s *AuthServiceImpl) RequestOTP(ctx context.Context, phone string) error {
	throttled, err := s.otpRepo.Throttled(ctx, phone, s.config.ResendWindow)
	if err != nil {
		return fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if throttled {
		return domain.ErrOTPThrottled
	}

	code, err := GenerateOTP(s.config.OTPLength, DigitsAlphabet)
	if err != nil {
		return fmt.Errorf("failed to generate OTP code: %w", err)
	}

	now := time.Now()
	challenge := &domain.OtpChallenge{
		Phone:     phone,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.config.OTPTTL),
	}
	if err := s.otpRepo.Upsert(ctx, challenge); err != nil {
		return fmt.Errorf("failed to store OTP challenge: %w", err)
	}

	message := fmt.Sprintf("Your verification code is: %s. Valid for %d minutes.", code, int(s.config.OTPTTL.Minutes()))
	if err := s.notificationSvc.SendSMS(phone, message); err != nil {
		return fmt.Errorf("failed to send OTP SMS: %w", err)
	}

	s.logger.Info("otp dispatched", zap.String("phone", phone))
	return nil
}

// VerifyOTPAndLogin implements domain.AuthService. Missing, expired and
// mismatched codes all fail with the same error.
func (s *AuthServiceImpl) VerifyOTPAndLogin(ctx context.Context, phone, code string) (*domain.AuthResult, error) {
	ok, err := s.otpRepo.Consume(ctx, phone, code)
	if err != nil {
		return nil, fmt.Errorf("failed to verify OTP: %w", err)
	}
	if !ok {
		return nil, domain.ErrOTPInvalidOrExpired
	}

	user, err := s.userRepo.FindByPhone(ctx, phone)
	if errors.Is(err, domain.ErrUserNotFound) {
		// Implicit signup. A concurrent verification may win the creation
		// race; fall back to the record it created.
		user, err = s.userRepo.CreateWithPhone(ctx, phone)
		switch {
		case err == nil:
			s.logger.Info("user created on first login", zap.Uint("user_id", user.ID))
		case errors.Is(err, domain.ErrUserAlreadyExists):
			user, err = s.userRepo.FindByPhone(ctx, phone)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	token, err := s.tokenSvc.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("login successful", zap.Uint("user_id", user.ID), zap.String("role", user.Role))

	return &domain.AuthResult{
		User:    user.Public(),
		Token:   token,
		Message: "Login successful",
	}, nil
}
