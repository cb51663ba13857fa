package api

import (
	"fmt"
	"net/http"
	"time"

	"FootballPredict/internal/config"
	"FootballPredict/internal/service"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Version 对外展示的接口版本
const Version = "1.0.0"

// NewRouter 注册全部中间件与路由
func NewRouter(cfg *config.Config, services *service.Services, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	// 客户端 IP 只信任配置的代理转发头，限流依赖它
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.WithError(err).Warn("可信代理配置非法，忽略转发头")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger), CORS(cfg.Server.AllowedOrigin))

	// 注册pprof 方便调试和监测性能问题
	if cfg.Server.Pprof {
		pprof.Register(r)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   Version,
		})
	})

	release := cfg.Server.IsRelease()
	matchHandler := NewMatchHandler(services.Matches, logger, release)
	predictionHandler := NewPredictionHandler(services.Predictions, logger, release)
	leagueHandler := NewLeagueHandler(services.Leagues, logger, release)
	adminHandler := NewAdminHandler(services, logger, release)

	apiGroup := r.Group("/api", RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))

	matches := apiGroup.Group("/matches")
	matches.GET("", matchHandler.ListMatches)
	matches.GET("/upcoming", matchHandler.Upcoming)
	matches.GET("/previous", matchHandler.Previous)
	matches.GET("/league/:leagueId", matchHandler.ByLeague)
	matches.GET("/:id", matchHandler.GetMatch)

	predictions := apiGroup.Group("/predictions")
	predictions.GET("/match/:matchId", predictionHandler.ByMatch)
	predictions.GET("/league/:leagueId", predictionHandler.ByLeague)

	leagues := apiGroup.Group("/leagues")
	leagues.GET("", leagueHandler.ListLeagues)
	leagues.GET("/:leagueId/stats", leagueHandler.Stats)
	leagues.GET("/:leagueId/data", leagueHandler.Data)

	admin := apiGroup.Group("/admin")
	admin.GET("/matches", adminHandler.ListMatches)
	admin.GET("/matches/:matchId", adminHandler.MatchDetail)
	admin.POST("/results/update", adminHandler.UpdateResult)
	admin.POST("/results/bulk-update", adminHandler.BulkUpdate)
	admin.GET("/stats/accuracy", adminHandler.AccuracyStats)
	admin.POST("/maintenance/move-completed", adminHandler.MoveCompleted)
	admin.POST("/maintenance/sweep", adminHandler.Sweep)
	admin.POST("/maintenance/cleanup", adminHandler.Cleanup)
	admin.POST("/maintenance/rebuild-stats", adminHandler.RebuildStats)
	admin.GET("/categories", adminHandler.Categories)
	admin.GET("/leagues", adminHandler.Leagues)
	admin.GET("/statuses", adminHandler.Statuses)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Route not found",
			"message": fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path),
		})
	})
	return r
}
