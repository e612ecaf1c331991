package mocks

import (
	"time"

	"github.com/you/phoneauth/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueFunc    func(user *domain.User) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue mints a session token
func (m *MockTokenService) Issue(user *domain.User) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(user)
	}
	// Default behavior: opaque placeholder token
	return "mock-token", nil
}

// Validate checks a session token
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: valid user-role claims
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    1,
		Role:      domain.RoleUser,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
