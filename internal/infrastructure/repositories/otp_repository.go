package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/phoneauth/domain"
)

// consumeScript compares the stored code and deletes it in a single step, so
// two racing verifications cannot both observe the same live challenge.
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OtpRepositoryImpl implements domain.OtpRepository using Redis. The key TTL
// is the challenge expiry, so expired challenges evict themselves and an
// expired code can never match.
type OtpRepositoryImpl struct {
	client *redis.Client
	prefix string
}

// NewOtpRepository creates a new Redis-backed OTP repository
func NewOtpRepository(client *redis.Client) domain.OtpRepository {
	return &OtpRepositoryImpl{
		client: client,
		prefix: "otp:",
	}
}

// Upsert implements domain.OtpRepository. SET replaces any live challenge
// atomically, so a new request always invalidates the previous code.
func (r *OtpRepositoryImpl) Upsert(ctx context.Context, challenge *domain.OtpChallenge) error {
	ttl := time.Until(challenge.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("challenge for %s already expired", challenge.Phone)
	}
	key := r.prefix + challenge.Phone
	if err := r.client.Set(ctx, key, challenge.Code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store OTP challenge: %w", err)
	}
	return nil
}

// Consume implements domain.OtpRepository
func (r *OtpRepositoryImpl) Consume(ctx context.Context, phone, code string) (bool, error) {
	key := r.prefix + phone
	deleted, err := consumeScript.Run(ctx, r.client, []string{key}, code).Int()
	if err != nil {
		return false, fmt.Errorf("failed to consume OTP challenge: %w", err)
	}
	return deleted == 1, nil
}

// Throttled implements domain.OtpRepository. SET NX places the resend mark
// only when none is active, in one round trip.
func (r *OtpRepositoryImpl) Throttled(ctx context.Context, phone string, window time.Duration) (bool, error) {
	key := r.prefix + "res:" + phone
	set, err := r.client.SetNX(ctx, key, 1, window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check resend throttle: %w", err)
	}
	return !set, nil
}
