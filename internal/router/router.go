package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studytrack/internal/handler"
	"studytrack/internal/middleware"
	"studytrack/internal/service"
)

func New(
	authService *service.AuthService,
	reportHandler *handler.ReportHandler,
	adminHandler *handler.AdminHandler,
	authHandler *handler.AuthHandler,
	corsOrigins []string,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	// Report API: spoken by the browser extension, never authenticated.
	engine.GET("/health", reportHandler.Health)
	engine.GET("/courses", reportHandler.Courses)
	engine.POST("/status", reportHandler.Status)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.POST("/auth/login", authHandler.Login)

	api := engine.Group("/api")
	api.Use(middleware.Auth(authService))

	api.GET("/courses", adminHandler.ListCourses)
	api.POST("/courses", adminHandler.CreateCourse)
	api.PUT("/courses/:id", adminHandler.UpdateCourse)
	api.DELETE("/courses/:id", adminHandler.DeleteCourse)

	api.GET("/today", adminHandler.GetToday)
	api.GET("/session", adminHandler.GetSession)
	api.GET("/statistics", adminHandler.GetStatistics)

	api.GET("/settings/daily-goal", adminHandler.GetDailyGoal)
	api.PUT("/settings/daily-goal", adminHandler.SetDailyGoal)
	api.GET("/settings/exam-date", adminHandler.GetExamDate)
	api.PUT("/settings/exam-date", adminHandler.SetExamDate)
	api.GET("/settings/sync", adminHandler.GetSyncConfig)
	api.PUT("/settings/sync", adminHandler.SetSyncConfig)
	api.GET("/settings/auto-sync", adminHandler.GetAutoSyncConfig)
	api.PUT("/settings/auto-sync", adminHandler.SetAutoSyncConfig)
	api.GET("/settings/notifications", adminHandler.GetNotifications)
	api.PUT("/settings/notifications", adminHandler.SetNotifications)
	api.PUT("/settings/admin-password", adminHandler.SetAdminPassword)

	api.GET("/sync/data", adminHandler.GetSyncData)
	api.POST("/sync/push", adminHandler.PushSync)

	return engine
}
