package main

import (
	"log"
	"os"

	"github.com/StevenOyar/RegenArdhi/config"
	"github.com/StevenOyar/RegenArdhi/controllers"
	"github.com/StevenOyar/RegenArdhi/routes"
	"github.com/StevenOyar/RegenArdhi/services"
	"github.com/StevenOyar/RegenArdhi/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()

	// external API clients
	weather := services.NewWeatherService()
	geo := services.NewGeoService()
	climate := services.NewNASAPowerService()
	analysis := services.NewAnalysisService(weather, geo, climate)

	rek, err := services.NewRekognitionService()
	if err != nil {
		log.Printf("rekognition unavailable, reports will skip labeling: %v", err)
		rek = nil
	}

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push service unavailable: %v", err)
		push = nil
	}
	notify := services.NewNotificationService(config.DB, hub, push)

	projects := services.NewProjectService(config.DB, analysis, notify)
	monitoring := services.NewMonitoringService(config.DB, weather, notify, push)
	reports := services.NewReportService(config.DB, rek)
	actions := services.NewActionService(config.DB)
	insights := services.NewInsightService(config.DB, climate)
	chat := services.NewChatService(config.DB)
	dashboard := services.NewDashboardService(config.DB)

	r := routes.SetupRouter(routes.Controllers{
		Project:      controllers.NewProjectController(projects, analysis, geo),
		Monitoring:   controllers.NewMonitoringController(projects, monitoring, reports, actions),
		Notification: controllers.NewNotificationController(notify),
		Insight:      controllers.NewInsightController(projects, insights),
		Chat:         controllers.NewChatController(projects, chat),
		Dashboard:    controllers.NewDashboardController(dashboard),
		Device:       controllers.NewDeviceController(push),
		Realtime:     controllers.NewRealtimeController(hub),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
