package api

import (
	"FootballPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// MatchHandler 比赛查询接口
type MatchHandler struct {
	matchService *service.MatchService
	errorResponder
}

// NewMatchHandler 创建 MatchHandler
func NewMatchHandler(svc *service.MatchService, logger *logrus.Logger, release bool) *MatchHandler {
	return &MatchHandler{
		matchService:   svc,
		errorResponder: errorResponder{logger: logger, release: release},
	}
}

// ListMatches 比赛列表，按开赛时间倒序
// GET /api/matches?status=FINISHED&league=PL&from=2024-01-01&to=2024-02-01
func (h *MatchHandler) ListMatches(c *gin.Context) {
	from, err := queryTime(c, "from")
	if err != nil {
		h.fail(c, "ListMatches", err)
		return
	}
	to, err := queryEndTime(c, "to")
	if err != nil {
		h.fail(c, "ListMatches", err)
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		h.fail(c, "ListMatches", err)
		return
	}

	matches, err := h.matchService.ListMatches(c.Request.Context(), service.MatchQuery{
		LeagueID: c.Query("league"),
		Status:   c.Query("status"),
		From:     from,
		To:       to,
		Limit:    limit,
	})
	if err != nil {
		h.fail(c, "ListMatches", err)
		return
	}
	ok(c, matches)
}

// Upcoming 未开赛比赛，按开赛时间正序
// GET /api/matches/upcoming?leagueId=PL&limit=10
func (h *MatchHandler) Upcoming(c *gin.Context) {
	limit, err := queryInt(c, "limit", 10)
	if err != nil {
		h.fail(c, "Upcoming", err)
		return
	}
	matches, err := h.matchService.Upcoming(c.Request.Context(), c.Query("leagueId"), limit)
	if err != nil {
		h.fail(c, "Upcoming", err)
		return
	}
	ok(c, matches)
}

// Previous 最近 N 周已结束的比赛
// GET /api/matches/previous?leagueId=PL&weeks=2
func (h *MatchHandler) Previous(c *gin.Context) {
	weeks, err := queryInt(c, "weeks", 2)
	if err != nil {
		h.fail(c, "Previous", err)
		return
	}
	matches, err := h.matchService.Previous(c.Request.Context(), c.Query("leagueId"), weeks)
	if err != nil {
		h.fail(c, "Previous", err)
		return
	}
	ok(c, matches)
}

// ByLeague 某联赛的比赛
// GET /api/matches/league/:leagueId?status=UPCOMING&limit=20
func (h *MatchHandler) ByLeague(c *gin.Context) {
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		h.fail(c, "ByLeague", err)
		return
	}
	matches, err := h.matchService.ListMatches(c.Request.Context(), service.MatchQuery{
		LeagueID: c.Param("leagueId"),
		Status:   c.Query("status"),
		Limit:    limit,
	})
	if err != nil {
		h.fail(c, "ByLeague", err)
		return
	}
	ok(c, matches)
}

// GetMatch 比赛详情
// GET /api/matches/:id
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		h.fail(c, "GetMatch", err)
		return
	}
	match, err := h.matchService.GetMatch(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "GetMatch", err)
		return
	}
	ok(c, match)
}
