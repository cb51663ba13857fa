package api

import (
	"net/http"

	"FootballPredict/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AdminHandler 管理后台接口：判定结果录入、准确率统计、维护任务
type AdminHandler struct {
	services *service.Services
	errorResponder
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(services *service.Services, logger *logrus.Logger, release bool) *AdminHandler {
	return &AdminHandler{
		services:       services,
		errorResponder: errorResponder{logger: logger, release: release},
	}
}

// ListMatches 下拉框用的比赛列表
// GET /api/admin/matches?status=FINISHED&league=PL
func (h *AdminHandler) ListMatches(c *gin.Context) {
	options, err := h.services.Matches.AdminOptions(c.Request.Context(), service.MatchQuery{
		LeagueID: c.Query("league"),
		Status:   c.Query("status"),
	})
	if err != nil {
		h.fail(c, "AdminListMatches", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": options, "total": len(options)})
}

// MatchDetail 比赛详情，每条预测附带判定结果（无则为 null）
// GET /api/admin/matches/:matchId
func (h *AdminHandler) MatchDetail(c *gin.Context) {
	id, err := paramID(c, "matchId")
	if err != nil {
		h.fail(c, "AdminMatchDetail", err)
		return
	}
	detail, err := h.services.Matches.AdminDetail(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "AdminMatchDetail", err)
		return
	}
	ok(c, detail)
}

// UpdateResult 录入单条判定
// POST /api/admin/results/update
func (h *AdminHandler) UpdateResult(c *gin.Context) {
	var req service.UpdateResultRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, "UpdateResult", err)
		return
	}
	result, err := h.services.Results.UpdateResult(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "UpdateResult", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Result updated successfully",
		"data":    result,
	})
}

// BulkUpdate 批量录入判定，逐条失败不影响其余条目
// POST /api/admin/results/bulk-update
func (h *AdminHandler) BulkUpdate(c *gin.Context) {
	var req service.BulkUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, "BulkUpdate", err)
		return
	}
	out, err := h.services.Results.BulkUpdate(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "BulkUpdate", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"updated": out.Updated,
		"errors":  out.Errors,
	})
}

// AccuracyStats 时间窗口内的准确率
// GET /api/admin/stats/accuracy?leagueId=PL&period=month
// GET /api/admin/stats/accuracy?period=custom&start=2024-01-01&end=2024-01-31
func (h *AdminHandler) AccuracyStats(c *gin.Context) {
	start, err := queryTime(c, "start")
	if err != nil {
		h.fail(c, "AccuracyStats", err)
		return
	}
	end, err := queryEndTime(c, "end")
	if err != nil {
		h.fail(c, "AccuracyStats", err)
		return
	}
	report, err := h.services.Accuracy.Report(c.Request.Context(), service.AccuracyQuery{
		LeagueID: c.Query("leagueId"),
		Period:   c.Query("period"),
		Start:    start,
		End:      end,
	})
	if err != nil {
		h.fail(c, "AccuracyStats", err)
		return
	}
	ok(c, report)
}

type moveCompletedRequest struct {
	WeekOffset *int `json:"weekOffset"`
}

// MoveCompleted 统计开赛早于 weekOffset 周前的已结束比赛，只报告不修改
// POST /api/admin/maintenance/move-completed
func (h *AdminHandler) MoveCompleted(c *gin.Context) {
	var req moveCompletedRequest
	if c.Request.ContentLength != 0 {
		if err := bindJSON(c, &req); err != nil {
			h.fail(c, "MoveCompleted", err)
			return
		}
	}
	weekOffset := 1
	if req.WeekOffset != nil {
		weekOffset = *req.WeekOffset
	}
	report, err := h.services.Lifecycle.CountCompleted(c.Request.Context(), weekOffset)
	if err != nil {
		h.fail(c, "MoveCompleted", err)
		return
	}
	ok(c, report)
}

// Sweep 手动触发一次状态推进
// POST /api/admin/maintenance/sweep
func (h *AdminHandler) Sweep(c *gin.Context) {
	sweep, err := h.services.Lifecycle.SweepStatuses(c.Request.Context())
	if err != nil {
		h.fail(c, "Sweep", err)
		return
	}
	ok(c, gin.H{"toLive": sweep.ToLive, "toFinished": sweep.ToFinished})
}

// Cleanup 手动触发一次过期数据清理
// POST /api/admin/maintenance/cleanup
func (h *AdminHandler) Cleanup(c *gin.Context) {
	report, err := h.services.Lifecycle.Cleanup(c.Request.Context())
	if err != nil {
		h.fail(c, "Cleanup", err)
		return
	}
	ok(c, report)
}

// RebuildStats 重新计算全部启用联赛的统计快照
// POST /api/admin/maintenance/rebuild-stats
func (h *AdminHandler) RebuildStats(c *gin.Context) {
	n, err := h.services.Accuracy.RefreshAll(c.Request.Context())
	if err != nil {
		h.fail(c, "RebuildStats", err)
		return
	}
	ok(c, gin.H{"leagues": n})
}

// Categories 预测类别选项
// GET /api/admin/categories
func (h *AdminHandler) Categories(c *gin.Context) {
	ok(c, service.CategoryOptions())
}

// Leagues 联赛选项
// GET /api/admin/leagues
func (h *AdminHandler) Leagues(c *gin.Context) {
	options, err := h.services.Leagues.LeagueOptions(c.Request.Context())
	if err != nil {
		h.fail(c, "AdminLeagues", err)
		return
	}
	ok(c, options)
}

// Statuses 比赛状态选项
// GET /api/admin/statuses
func (h *AdminHandler) Statuses(c *gin.Context) {
	ok(c, service.StatusOptions())
}
