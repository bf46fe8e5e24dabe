package app

import (
	"quiz_ai_backend/docs"
	"quiz_ai_backend/internal/config"
	"quiz_ai_backend/internal/middleware"
	"quiz_ai_backend/internal/model"
	"quiz_ai_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的用户路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerUserRoutes(authGroup, c)
	}

	// 3. 管理员路由
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.POST("/profile/avatar", c.user.UploadAvatar)

	rg.GET("/topics", c.question.Topics)

	// 测验
	rg.POST("/quiz/start", c.quiz.Start)
	rg.POST("/quiz/answer", c.quiz.Answer)
	rg.POST("/quiz/submit", c.quiz.Submit)
	rg.GET("/quiz/history", c.quiz.History)
	rg.POST("/quiz/explanation", c.quiz.Explain)

	// 个人统计与AI建议
	rg.GET("/stats/me", c.analytics.MyStats)
	rg.GET("/stats/me/coaching", c.insight.Coaching)
	rg.GET("/stats/topics/:topic/guidance", c.insight.TopicGuidance)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(cfg),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.RoleAdmin),
	)
	{
		// 题库管理
		admin.POST("/questions/generate", c.question.Generate)
		admin.POST("/questions", c.question.Save)
		admin.GET("/questions", c.question.List)
		admin.PUT("/questions/:id", c.question.Update)
		admin.DELETE("/questions/:id", c.question.Delete)

		// 平台统计
		admin.GET("/stats/overview", c.analytics.Overview)
		admin.GET("/stats/daily", c.analytics.Daily)
		admin.GET("/stats/topics", c.analytics.Topics)
		admin.GET("/stats/difficult", c.analytics.Difficult)
		admin.GET("/stats/popular", c.analytics.Popular)
		admin.GET("/stats/durations", c.analytics.Durations)

		// AI分析
		admin.GET("/stats/insights", c.insight.Platform)
	}
}
