package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/incial/incial-workhub-sub000/config"
	"github.com/incial/incial-workhub-sub000/internal/api/handler"
	"github.com/incial/incial-workhub-sub000/internal/api/middleware"
	"github.com/incial/incial-workhub-sub000/pkg/jwt"
	"github.com/incial/incial-workhub-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			// 登录接口限流，防止暴力破解
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth("admin", "manager"), h.User.ListUsers)
				users.GET("/assignees", h.User.ListAssignees)
				users.GET("/:id", h.User.GetUser)
			}

			// 任务模块
			tasks := authorized.Group("/tasks")
			{
				tasks.GET("", h.Task.ListTasks)
				tasks.GET("/queue", h.Task.GetQueue)
				tasks.GET("/:id", h.Task.GetTask)
				tasks.POST("", h.Task.CreateTask)
				tasks.PUT("/:id", h.Task.UpdateTask)
				tasks.DELETE("/:id", middleware.RoleAuth("admin", "manager"), h.Task.DeleteTask)
			}

			// 会议模块
			meetings := authorized.Group("/meetings")
			{
				meetings.GET("", h.Meeting.ListMeetings)
				meetings.GET("/feed.ics", h.Meeting.GetICSFeed)
				meetings.GET("/:id", h.Meeting.GetMeeting)
				meetings.POST("", h.Meeting.CreateMeeting)
				meetings.PUT("/:id", h.Meeting.UpdateMeeting)
				meetings.DELETE("/:id", middleware.RoleAuth("admin", "manager"), h.Meeting.DeleteMeeting)
			}

			// 商机模块
			deals := authorized.Group("/deals")
			{
				deals.GET("", h.Deal.ListDeals)
				deals.GET("/:id", h.Deal.GetDeal)
				deals.POST("", h.Deal.CreateDeal)
				deals.PUT("/:id", h.Deal.UpdateDeal)
				deals.DELETE("/:id", middleware.RoleAuth("admin", "manager"), h.Deal.DeleteDeal)
			}

			// 日历模块
			calendar := authorized.Group("/calendar")
			{
				calendar.GET("", h.Calendar.GetMonth)
				calendar.GET("/grid", h.Calendar.GetMonthGrid)
			}

			// 仪表盘模块
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/stats", h.Dashboard.GetStats)
				dashboard.GET("/leaderboard", h.Dashboard.GetLeaderboard)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/stats", middleware.RoleAuth("admin", "manager"), h.Export.ExportStats)
				export.GET("/tasks", middleware.RoleAuth("admin", "manager"), h.Export.ExportTasks)
				export.GET("/deals", middleware.RoleAuth("admin", "manager"), h.Export.ExportDeals)
			}
		}
	}

	return r
}
