package api

import (
	"FootballPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LeagueHandler 联赛查询接口
type LeagueHandler struct {
	leagueService *service.LeagueService
	errorResponder
}

// NewLeagueHandler 创建 LeagueHandler
func NewLeagueHandler(svc *service.LeagueService, logger *logrus.Logger, release bool) *LeagueHandler {
	return &LeagueHandler{
		leagueService:  svc,
		errorResponder: errorResponder{logger: logger, release: release},
	}
}

// ListLeagues 启用中的联赛，附比赛数量与最新统计
// GET /api/leagues
func (h *LeagueHandler) ListLeagues(c *gin.Context) {
	leagues, err := h.leagueService.ListLeagues(c.Request.Context())
	if err != nil {
		h.fail(c, "ListLeagues", err)
		return
	}
	ok(c, leagues)
}

// Stats 联赛最新统计快照
// GET /api/leagues/:leagueId/stats
func (h *LeagueHandler) Stats(c *gin.Context) {
	stats, err := h.leagueService.LatestStats(c.Request.Context(), c.Param("leagueId"))
	if err != nil {
		h.fail(c, "LeagueStats", err)
		return
	}
	ok(c, stats)
}

// Data 联赛首页数据：联赛、即将开赛、近两周已结束、最新统计
// GET /api/leagues/:leagueId/data
func (h *LeagueHandler) Data(c *gin.Context) {
	data, err := h.leagueService.LeagueData(c.Request.Context(), c.Param("leagueId"))
	if err != nil {
		h.fail(c, "LeagueData", err)
		return
	}
	ok(c, data)
}
