package routes

import (
	"os"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/paybridge/nochex/controllers"
	"github.com/paybridge/nochex/middleware"
	"github.com/paybridge/nochex/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "nochex-session-secret"
	}
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24, // 1 day
		Path:     "/",
		Secure:   false, // Set to true in production with HTTPS
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("nochexpay", store))

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	payment := router.Group("/payment/nochex")
	{
		payment.POST("/initiate", controllers.InitiateNochexPayment)
		// Server-to-server APC callback from Nochex; must stay
		// unauthenticated.
		payment.POST("/apc", controllers.APCHandler)
		payment.GET("/success", controllers.SuccessOrder)
		payment.GET("/cancel", controllers.CancelOrder)
	}

	router.GET("/orders/:id/receipt", controllers.DownloadReceipt)

	admin := router.Group("/admin")
	{
		admin.POST("/login", controllers.AdminLogin)
		admin.GET("/google/login", controllers.GoogleLogin)
		admin.GET("/google/callback", controllers.GoogleCallback)

		authed := admin.Group("")
		authed.Use(middleware.AdminAuthMiddleware())
		{
			authed.GET("/settings", controllers.GetSettings)
			authed.PUT("/settings", controllers.UpdateSettings)
			authed.GET("/callbacks", controllers.ListCallbacks)
			authed.GET("/callbacks/export", controllers.ExportCallbacksExcel)
		}
	}

	return router
}
