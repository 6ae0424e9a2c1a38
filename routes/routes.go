package routes

import (
	"net/http"
	"time"

	"github.com/StevenOyar/RegenArdhi/controllers"
	"github.com/StevenOyar/RegenArdhi/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Controllers groups everything the router wires up.
type Controllers struct {
	Project      *controllers.ProjectController
	Monitoring   *controllers.MonitoringController
	Notification *controllers.NotificationController
	Insight      *controllers.InsightController
	Chat         *controllers.ChatController
	Dashboard    *controllers.DashboardController
	Device       *controllers.DeviceController
	Realtime     *controllers.RealtimeController
}

func SetupRouter(ctrl Controllers) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"modules": gin.H{
				"projects":      "active",
				"monitoring":    "active",
				"insights":      "active",
				"chat":          "active",
				"notifications": "active",
				"dashboard":     "active",
			},
		})
	})

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.POST("/devices", ctrl.Device.RegisterDevice)
		user.POST("/notifications/toggle", ctrl.Device.TogglePush)
	}

	projects := r.Group("/projects")
	projects.Use(middlewares.AuthMiddleware())
	{
		projects.GET("/api/list", ctrl.Project.List)
		projects.POST("/create", ctrl.Project.Create)
		projects.POST("/api/analyze", ctrl.Project.Analyze)
		projects.GET("/:id", ctrl.Project.Get)
		projects.PUT("/:id", ctrl.Project.Update)
		projects.DELETE("/:id", ctrl.Project.Delete)
		projects.POST("/:id/reanalyze", ctrl.Project.Reanalyze)
		projects.POST("/:id/update-progress", ctrl.Project.UpdateProgress)
	}

	monitoring := r.Group("/monitoring")
	monitoring.Use(middlewares.AuthMiddleware())
	{
		monitoring.GET("/api/project/:id/data", ctrl.Monitoring.Data)
		monitoring.POST("/api/project/:id/update", ctrl.Monitoring.Update)
		monitoring.POST("/api/project/:id/generate-history", ctrl.Monitoring.GenerateHistory)
		monitoring.GET("/api/project/:id/reports", ctrl.Monitoring.ListReports)
		monitoring.POST("/api/project/:id/report", ctrl.Monitoring.SubmitReport)
		monitoring.GET("/api/project/:id/actions", ctrl.Monitoring.ListActions)
		monitoring.POST("/api/project/:id/action", ctrl.Monitoring.AddAction)
		monitoring.PUT("/api/action/:id", ctrl.Monitoring.UpdateAction)
	}

	notifications := r.Group("/notifications")
	notifications.Use(middlewares.AuthMiddleware())
	{
		notifications.GET("/api/list", ctrl.Notification.List)
		notifications.GET("/api/unread-count", ctrl.Notification.UnreadCount)
		notifications.POST("/api/mark-read", ctrl.Notification.MarkRead)
		notifications.POST("/api/archive", ctrl.Notification.Archive)
		notifications.DELETE("/api/delete/:id", ctrl.Notification.Delete)
		notifications.GET("/api/preferences", ctrl.Notification.GetPreferences)
		notifications.POST("/api/preferences", ctrl.Notification.UpdatePreferences)
	}

	insights := r.Group("/insights")
	insights.Use(middlewares.AuthMiddleware())
	{
		insights.GET("/api/project/:id/insights", ctrl.Insight.ProjectInsights)
		insights.GET("/api/project/:id/analytics", ctrl.Insight.ProjectAnalytics)
	}

	chat := r.Group("/chat")
	chat.Use(middlewares.AuthMiddleware())
	{
		chat.POST("/api/message", ctrl.Chat.Message)
		chat.GET("/api/history", ctrl.Chat.History)
		chat.POST("/api/clear", ctrl.Chat.Clear)
		chat.GET("/api/suggestions", ctrl.Chat.Suggestions)
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(middlewares.AuthMiddleware())
	{
		dashboard.GET("/api/stats", ctrl.Dashboard.Stats)
		dashboard.GET("/api/recent-projects", ctrl.Dashboard.RecentProjects)
		dashboard.GET("/api/activities", ctrl.Dashboard.Activities)
		dashboard.GET("/api/summary", ctrl.Dashboard.Summary)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/notifications", ctrl.Realtime.NotificationsWS)
	}

	return r
}
