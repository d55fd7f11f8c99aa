package Routes

import (
	"DocTools/Controllers"
	"DocTools/Middleware"
	"DocTools/SSE"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

func ConfigRoutes(router *gin.Engine) {
	// Gzip Compression
	router.Use(gzip.Gzip(gzip.BestSpeed))

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/login", Controllers.Login)
		public.POST("/register", Controllers.Register)

		// Push delivery: the cloud backend posts here, windows post clicks
		// and navigations back.
		public.POST("/ReceivePush", Controllers.ReceivePush)
		public.POST("/NotificationClicked", Controllers.NotificationClicked)
		public.POST("/UpdateWindowURL", SSE.UpdateWindowURL)

		// SSE (Server-Sent Events) route: windows attach here
		public.GET("/RequestSSE", SSE.RequestSSE)
	}

	// Authorized routes
	authorized := router.Group("/api/protected")
	authorized.Use(Middleware.JwtAuthMiddleware())
	{
		// User-related routes
		authorized.GET("/user", Controllers.CurrentUser)
		authorized.POST("/SaveFcmToken", Controllers.SaveFcmToken)

		// Delivery log routes
		authorized.GET("/FetchNotificationHistory", Controllers.FetchNotificationHistory)
		authorized.POST("/ExportDeliveryReport", Controllers.ExportDeliveryReport)
	}

	// Static file serving
	router.Static("/Web", "./Static")
}
