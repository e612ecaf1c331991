package services

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/you/phoneauth/domain"
	"github.com/you/phoneauth/internal/infrastructure/auth"
	"github.com/you/phoneauth/internal/infrastructure/repositories"
	"github.com/you/phoneauth/internal/mocks"
)

var codePattern = regexp.MustCompile(`\d{6}`)

type flowFixture struct {
	svc             domain.AuthService
	tokenSvc        domain.TokenService
	notificationSvc *mocks.MockNotificationService
	redis           *miniredis.Miniredis
}

// newFlowFixture wires the real stores (miniredis, sqlite) through the real
// orchestrator, stubbing only the SMS sink.
func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "flow.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&repositories.DBUser{}))

	tokenSvc := auth.NewJWTService("flow-test-secret", "phoneauth", 7*24*time.Hour)
	notificationSvc := mocks.NewMockNotificationService()

	svc := NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewOtpRepository(client),
		tokenSvc,
		notificationSvc,
		AuthConfig{OTPLength: 6, OTPTTL: 5 * time.Minute, ResendWindow: time.Minute},
		zap.NewNop(),
	)

	return &flowFixture{svc: svc, tokenSvc: tokenSvc, notificationSvc: notificationSvc, redis: mr}
}

// lastCode extracts the OTP code from the most recent dispatched SMS
func (f *flowFixture) lastCode(t *testing.T) string {
	t.Helper()
	sent := f.notificationSvc.Sent()
	require.NotEmpty(t, sent)
	code := codePattern.FindString(sent[len(sent)-1].Message)
	require.Len(t, code, 6)
	return code
}

func TestAuthFlow_RequestVerifyLogin(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()
	phone := "+15551234567"

	require.NoError(t, f.svc.RequestOTP(ctx, phone))
	code := f.lastCode(t)

	// Three wrong attempts leave the challenge pending.
	for i := 0; i < 3; i++ {
		_, err := f.svc.VerifyOTPAndLogin(ctx, phone, "000000")
		require.ErrorIs(t, err, domain.ErrOTPInvalidOrExpired)
	}

	result, err := f.svc.VerifyOTPAndLogin(ctx, phone, code)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, result.User.Role)
	assert.NotEmpty(t, result.Token)

	claims, err := f.tokenSvc.Validate(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	// The challenge is consumed; the same code cannot log in again.
	_, err = f.svc.VerifyOTPAndLogin(ctx, phone, code)
	require.ErrorIs(t, err, domain.ErrOTPInvalidOrExpired)
}

func TestAuthFlow_SecondLoginReusesUser(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()
	phone := "+15551234567"

	require.NoError(t, f.svc.RequestOTP(ctx, phone))
	first, err := f.svc.VerifyOTPAndLogin(ctx, phone, f.lastCode(t))
	require.NoError(t, err)

	f.redis.FastForward(2 * time.Minute) // past the resend window

	require.NoError(t, f.svc.RequestOTP(ctx, phone))
	second, err := f.svc.VerifyOTPAndLogin(ctx, phone, f.lastCode(t))
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID, "the same phone must map to one record")
}

func TestAuthFlow_NewRequestInvalidatesOldCode(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()
	phone := "+15551234567"

	require.NoError(t, f.svc.RequestOTP(ctx, phone))
	oldCode := f.lastCode(t)

	f.redis.FastForward(2 * time.Minute)

	require.NoError(t, f.svc.RequestOTP(ctx, phone))
	newCode := f.lastCode(t)

	if oldCode != newCode {
		_, err := f.svc.VerifyOTPAndLogin(ctx, phone, oldCode)
		require.ErrorIs(t, err, domain.ErrOTPInvalidOrExpired, "old code must be invalidated")
	}

	result, err := f.svc.VerifyOTPAndLogin(ctx, phone, newCode)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestAuthFlow_ExpiredCodeFails(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()
	phone := "+15551234567"

	require.NoError(t, f.svc.RequestOTP(ctx, phone))
	code := f.lastCode(t)

	f.redis.FastForward(6 * time.Minute)

	_, err := f.svc.VerifyOTPAndLogin(ctx, phone, code)
	require.ErrorIs(t, err, domain.ErrOTPInvalidOrExpired)
}

func TestAuthFlow_ResendThrottle(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()
	phone := "+15551234567"

	require.NoError(t, f.svc.RequestOTP(ctx, phone))
	require.ErrorIs(t, f.svc.RequestOTP(ctx, phone), domain.ErrOTPThrottled)

	f.redis.FastForward(2 * time.Minute)
	require.NoError(t, f.svc.RequestOTP(ctx, phone))
}
