package mocks

import (
	"context"
	"time"

	"github.com/you/phoneauth/domain"
)

// MockOtpRepository implements domain.OtpRepository for testing
type MockOtpRepository struct {
	UpsertFunc    func(ctx context.Context, challenge *domain.OtpChallenge) error
	ConsumeFunc   func(ctx context.Context, phone, code string) (bool, error)
	ThrottledFunc func(ctx context.Context, phone string, window time.Duration) (bool, error)

	// Upserted records the challenges passed to Upsert
	Upserted []*domain.OtpChallenge
}

// NewMockOtpRepository creates a new MockOtpRepository with default behaviors
func NewMockOtpRepository() *MockOtpRepository {
	return &MockOtpRepository{}
}

// Upsert stores a challenge
func (m *MockOtpRepository) Upsert(ctx context.Context, challenge *domain.OtpChallenge) error {
	m.Upserted = append(m.Upserted, challenge)
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, challenge)
	}
	// Default behavior: success
	return nil
}

// Consume verifies and deletes a challenge
func (m *MockOtpRepository) Consume(ctx context.Context, phone, code string) (bool, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, phone, code)
	}
	// Default behavior: no live challenge
	return false, nil
}

// Throttled checks the resend window
func (m *MockOtpRepository) Throttled(ctx context.Context, phone string, window time.Duration) (bool, error) {
	if m.ThrottledFunc != nil {
		return m.ThrottledFunc(ctx, phone, window)
	}
	// Default behavior: not throttled
	return false, nil
}

// Compile-time interface compliance verification
var _ domain.OtpRepository = (*MockOtpRepository)(nil)
