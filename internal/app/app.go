package app

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/you/phoneauth/internal/config"
	httpx "github.com/you/phoneauth/internal/http"
	"github.com/you/phoneauth/internal/http/handlers"
	"github.com/you/phoneauth/internal/http/middleware"
	"github.com/you/phoneauth/internal/infrastructure/auth"
	"github.com/you/phoneauth/internal/infrastructure/database"
	"github.com/you/phoneauth/internal/infrastructure/notifications"
	"github.com/you/phoneauth/internal/infrastructure/repositories"
	"github.com/you/phoneauth/internal/services"
)

func Run(cfg *config.Config, logger *zap.Logger) error {
	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}

	// Infrastructure services
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, logger)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	otpRepo := repositories.NewOtpRepository(rdb.Client)

	// Orchestrator
	authSvc := services.NewAuthService(userRepo, otpRepo, tokenSvc, notificationSvc, services.AuthConfig{
		OTPLength:    cfg.OTP_Length,
		OTPTTL:       cfg.OTP_TTL,
		ResendWindow: cfg.OTP_ResendWindow,
	}, logger)

	// Boundary
	authH := handlers.NewAuthHandlers(authSvc, userRepo, cfg.OTP_Length, cfg.TokenTTL, logger)
	authMW := middleware.NewAuthMW(tokenSvc)

	r := httpx.BuildRouter(authH, authMW)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
