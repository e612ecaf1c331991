package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/phoneauth/domain"
	"github.com/you/phoneauth/internal/http/handlers"
	"github.com/you/phoneauth/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, authMW *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/v1/auth")
	auth.POST("/request-otp", ah.RequestOTP)
	auth.POST("/login-phone", ah.VerifyOTP)
	auth.POST("/logout", ah.Logout)

	// Any authenticated user
	auth.GET("/me", authMW.Authorize(), ah.Me)
	auth.GET("/profile", authMW.Authorize(), ah.Me)

	// Admin only
	auth.GET("/admin-dashboard", authMW.Authorize(domain.RoleAdmin), func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"message": "Admin dashboard data retrieved successfully",
			"data": gin.H{
				"adminStats": gin.H{
					"totalUsers":  100,
					"activeUsers": 75,
				},
			},
		})
	})

	// Admin or super admin
	auth.GET("/management", authMW.Authorize(domain.RoleAdmin, domain.RoleSuperAdmin), func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"message": "Management data retrieved successfully",
			"data": gin.H{
				"managementData": gin.H{
					"systemStatus": "operational",
				},
			},
		})
	})

	return r
}
