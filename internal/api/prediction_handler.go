package api

import (
	"FootballPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PredictionHandler 预测查询接口
type PredictionHandler struct {
	predictionService *service.PredictionService
	errorResponder
}

// NewPredictionHandler 创建 PredictionHandler
func NewPredictionHandler(svc *service.PredictionService, logger *logrus.Logger, release bool) *PredictionHandler {
	return &PredictionHandler{
		predictionService: svc,
		errorResponder:    errorResponder{logger: logger, release: release},
	}
}

// ByMatch 某场比赛的全部预测
// GET /api/predictions/match/:matchId
func (h *PredictionHandler) ByMatch(c *gin.Context) {
	id, err := paramID(c, "matchId")
	if err != nil {
		h.fail(c, "PredictionsByMatch", err)
		return
	}
	predictions, err := h.predictionService.ByMatch(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "PredictionsByMatch", err)
		return
	}
	ok(c, predictions)
}

// ByLeague 某联赛的预测，可按类别筛选
// GET /api/predictions/league/:leagueId?category=MATCH_RESULT&limit=50
func (h *PredictionHandler) ByLeague(c *gin.Context) {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		h.fail(c, "PredictionsByLeague", err)
		return
	}
	predictions, err := h.predictionService.ByLeague(c.Request.Context(), c.Param("leagueId"), c.Query("category"), limit)
	if err != nil {
		h.fail(c, "PredictionsByLeague", err)
		return
	}
	ok(c, predictions)
}
