package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/you/phoneauth/domain"
	"github.com/you/phoneauth/internal/http/middleware"
)

// phoneRe accepts international formats with an optional leading plus.
var phoneRe = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)

var codeRe = regexp.MustCompile(`^\d+$`)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc   domain.AuthService
	userRepo  domain.UserRepository
	otpLength int
	cookieTTL time.Duration
	logger    *zap.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, userRepo domain.UserRepository, otpLength int, cookieTTL time.Duration, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authSvc:   authSvc,
		userRepo:  userRepo,
		otpLength: otpLength,
		cookieTTL: cookieTTL,
		logger:    logger,
	}
}

// OTPRequest represents an OTP request
type OTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// OTPVerifyRequest represents an OTP verification request
type OTPVerifyRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// RequestOTP handles OTP generation and dispatch. The response never
// carries the code.
func (h *AuthHandlers) RequestOTP(c *gin.Context) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Phone number is required")
		return
	}
	if !phoneRe.MatchString(req.Phone) {
		fail(c, http.StatusBadRequest, domain.ErrInvalidPhone.Error())
		return
	}

	if err := h.authSvc.RequestOTP(c.Request.Context(), req.Phone); err != nil {
		if errors.Is(err, domain.ErrOTPThrottled) {
			fail(c, http.StatusTooManyRequests, "OTP recently sent, please wait before retrying")
			return
		}
		h.logger.Error("otp request failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to send OTP")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP sent successfully",
		"data":    nil,
	})
}

// VerifyOTP handles OTP verification and login. The token is returned in
// the body and attached to the cookie carrier.
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Phone number and OTP are required")
		return
	}
	if !phoneRe.MatchString(req.Phone) {
		fail(c, http.StatusBadRequest, domain.ErrInvalidPhone.Error())
		return
	}
	if len(req.OTP) != h.otpLength || !codeRe.MatchString(req.OTP) {
		fail(c, http.StatusBadRequest, domain.ErrInvalidCode.Error())
		return
	}

	result, err := h.authSvc.VerifyOTPAndLogin(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		if errors.Is(err, domain.ErrOTPInvalidOrExpired) {
			fail(c, http.StatusUnauthorized, "Invalid or expired OTP")
			return
		}
		h.logger.Error("otp verification failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Login failed")
		return
	}

	h.setTokenCookie(c, result.Token)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": result.Message,
		"data": gin.H{
			"user":  result.User,
			"token": result.Token,
		},
	})
}

// Logout clears the cookie carrier. Tokens are stateless, so there is
// nothing to invalidate server side.
func (h *AuthHandlers) Logout(c *gin.Context) {
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
		"data":    nil,
	})
}

// Me returns the authenticated user's public profile.
func (h *AuthHandlers) Me(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Unauthenticated")
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("profile lookup failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Failed to get user profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User data retrieved successfully",
		"data": gin.H{
			"user": user.Public(),
		},
	})
}

func (h *AuthHandlers) setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(middleware.TokenCookie, token, int(h.cookieTTL.Seconds()), "/", "", false, true)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
