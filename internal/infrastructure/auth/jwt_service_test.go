package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/you/phoneauth/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    42,
		Name:  "Test User",
		Email: "test@example.com",
		Phone: "+15551234567",
		Role:  domain.RoleAdmin,
	}
}

func TestJWTServiceImpl_IssueAndValidate(t *testing.T) {
	svc := NewJWTService("test-secret", "phoneauth", 7*24*time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("expected role %q, got %q", domain.RoleAdmin, claims.Role)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Error("expiry must be after issuance")
	}
}

func TestJWTServiceImpl_PayloadCarriesNoPII(t *testing.T) {
	svc := NewJWTService("test-secret", "phoneauth", time.Hour)

	token, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)

	for _, forbidden := range []string{"email", "phone", "name", "password"} {
		if _, ok := claims[forbidden]; ok {
			t.Errorf("claim %q must not be embedded in the token", forbidden)
		}
	}
}

func TestJWTServiceImpl_ValidateFailures(t *testing.T) {
	svc := NewJWTService("test-secret", "phoneauth", time.Hour)

	tests := []struct {
		name        string
		token       func(t *testing.T) string
		expectedErr error
	}{
		{
			name: "garbage token",
			token: func(t *testing.T) string {
				return "not-a-jwt"
			},
			expectedErr: domain.ErrTokenInvalid,
		},
		{
			name: "wrong signing key",
			token: func(t *testing.T) string {
				other := NewJWTService("other-secret", "phoneauth", time.Hour)
				token, err := other.Issue(testUser())
				if err != nil {
					t.Fatalf("issue failed: %v", err)
				}
				return token
			},
			expectedErr: domain.ErrTokenInvalid,
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				expired := NewJWTService("test-secret", "phoneauth", -time.Minute)
				token, err := expired.Issue(testUser())
				if err != nil {
					t.Fatalf("issue failed: %v", err)
				}
				return token
			},
			expectedErr: domain.ErrTokenInvalid,
		},
		{
			name: "unsigned algorithm",
			token: func(t *testing.T) string {
				tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
					"user_id": 42,
					"role":    domain.RoleAdmin,
					"iat":     time.Now().Unix(),
					"exp":     time.Now().Add(time.Hour).Unix(),
				})
				signed, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
				if err != nil {
					t.Fatalf("sign failed: %v", err)
				}
				return signed
			},
			expectedErr: domain.ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token(t))
			if err == nil {
				t.Fatal("expected validation to fail")
			}
			if !errors.Is(err, domain.ErrTokenInvalid) && !errors.Is(err, domain.ErrTokenExpired) {
				t.Fatalf("expected a token error, got %v", err)
			}
		})
	}
}

func TestJWTServiceImpl_TokensAreUnique(t *testing.T) {
	svc := NewJWTService("test-secret", "phoneauth", time.Hour)

	a, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	b, err := svc.Issue(testUser())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if a == b {
		t.Error("two issued tokens must differ (jti)")
	}
}
