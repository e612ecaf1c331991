package mocks

import (
	"context"

	"github.com/you/phoneauth/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateWithPhoneFunc       func(ctx context.Context, phone string) (*domain.User, error)
	FindByPhoneFunc           func(ctx context.Context, phone string) (*domain.User, error)
	FindByEmailWithSecretFunc func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc              func(ctx context.Context, id uint) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// CreateWithPhone creates a user for an unseen phone number
func (m *MockUserRepository) CreateWithPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.CreateWithPhoneFunc != nil {
		return m.CreateWithPhoneFunc(ctx, phone)
	}
	// Default behavior: fresh user with default role
	return &domain.User{ID: 1, Phone: phone, Role: domain.RoleUser}, nil
}

// FindByPhone finds a user by phone number
func (m *MockUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByEmailWithSecret finds a user by email including the password hash
func (m *MockUserRepository) FindByEmailWithSecret(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailWithSecretFunc != nil {
		return m.FindByEmailWithSecretFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
