package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"FootballPredict/internal/model"
	"FootballPredict/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 命名统计周期
const (
	PeriodWeek   = "week"
	PeriodMonth  = "month"
	PeriodSeason = "season"
	PeriodCustom = "custom"
)

// Accuracy 一组判定结果的命中情况
type Accuracy struct {
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// AccuracyReport 准确率统计：总体 / 按类别 / 按联赛（仅未指定联赛时）
type AccuracyReport struct {
	Overall    Accuracy                    `json:"overall"`
	ByCategory map[model.Category]Accuracy `json:"byCategory"`
	ByLeague   map[string]Accuracy         `json:"byLeague"`
	Period     string                      `json:"period"`
	Start      time.Time                   `json:"start"`
	End        time.Time                   `json:"end"`
}

// Window 统计时间窗口（闭区间）
type Window struct {
	Period string
	Start  time.Time
	End    time.Time
}

// AccuracyQuery 统计查询参数
type AccuracyQuery struct {
	LeagueID string
	Period   string
	Start    *time.Time
	End      *time.Time
}

// Percentage correct/total*100 保留一位小数；total 为 0 时返回 0
func Percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*100*10) / 10
}

// ResolveWindow 显式起止时间优先，否则按命名周期换算：week=7天，month=30天，season=6个月，缺省=30天
func ResolveWindow(period string, start, end *time.Time, now time.Time) (Window, error) {
	if start != nil || end != nil {
		w := Window{Period: PeriodCustom, End: now}
		if end != nil {
			w.End = *end
		}
		if start != nil {
			w.Start = *start
		} else {
			w.Start = w.End.AddDate(0, 0, -30)
		}
		if w.End.Before(w.Start) {
			return Window{}, invalid("end", "must not be before start")
		}
		return w, nil
	}

	switch period {
	case PeriodWeek:
		return Window{Period: PeriodWeek, Start: now.AddDate(0, 0, -7), End: now}, nil
	case PeriodMonth, "":
		return Window{Period: PeriodMonth, Start: now.AddDate(0, 0, -30), End: now}, nil
	case PeriodSeason:
		return Window{Period: PeriodSeason, Start: now.AddDate(0, -6, 0), End: now}, nil
	}
	return Window{}, invalid("period", "must be one of week, month, season, got %q", period)
}

// FoldAccuracy 把判定结果累加到总体 / 类别 / 联赛三个累加器；byLeague 以联赛名称为键
func FoldAccuracy(rows []repository.GradedResultView, withLeagues bool) (Accuracy, map[model.Category]Accuracy, map[string]Accuracy) {
	var overall Accuracy
	byCategory := make(map[model.Category]Accuracy, len(model.Categories))
	for _, c := range model.Categories {
		byCategory[c] = Accuracy{}
	}
	byLeague := make(map[string]Accuracy)

	hit := func(a Accuracy, correct bool) Accuracy {
		a.Total++
		if correct {
			a.Correct++
		}
		return a
	}
	for _, row := range rows {
		overall = hit(overall, row.IsCorrect)
		byCategory[row.Category] = hit(byCategory[row.Category], row.IsCorrect)
		if withLeagues {
			byLeague[row.LeagueName] = hit(byLeague[row.LeagueName], row.IsCorrect)
		}
	}

	overall.Accuracy = Percentage(overall.Correct, overall.Total)
	for k, a := range byCategory {
		a.Accuracy = Percentage(a.Correct, a.Total)
		byCategory[k] = a
	}
	for k, a := range byLeague {
		a.Accuracy = Percentage(a.Correct, a.Total)
		byLeague[k] = a
	}
	return overall, byCategory, byLeague
}

// AccuracyService 准确率统计与联赛快照写入（league_stats 的唯一写入方）
type AccuracyService struct {
	results repository.ResultRepository
	stats   repository.StatsRepository
	leagues repository.LeagueRepository
	logger  *logrus.Logger
	now     func() time.Time
}

// NewAccuracyService 创建 AccuracyService
func NewAccuracyService(results repository.ResultRepository, stats repository.StatsRepository, leagues repository.LeagueRepository, logger *logrus.Logger) *AccuracyService {
	return &AccuracyService{
		results: results,
		stats:   stats,
		leagues: leagues,
		logger:  logger,
		now:     utcNow,
	}
}

// Report 统计窗口内的准确率；结果只取决于调用时刻的 results 表
func (s *AccuracyService) Report(ctx context.Context, q AccuracyQuery) (*AccuracyReport, error) {
	w, err := ResolveWindow(q.Period, q.Start, q.End, s.now())
	if err != nil {
		return nil, err
	}
	rows, err := s.results.ListGradedInWindow(ctx, q.LeagueID, w.Start, w.End)
	if err != nil {
		return nil, persistence("list graded results", err)
	}
	overall, byCategory, byLeague := FoldAccuracy(rows, q.LeagueID == "")
	return &AccuracyReport{
		Overall:    overall,
		ByCategory: byCategory,
		ByLeague:   byLeague,
		Period:     w.Period,
		Start:      w.Start,
		End:        w.End,
	}, nil
}

// SnapshotWindow 滚动一个月窗口，起点归一到 UTC 零点，同一天内多次刷新落到同一行
func SnapshotWindow(now time.Time) Window {
	start := now.UTC().AddDate(0, -1, 0)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	return Window{Period: PeriodMonth, Start: start, End: now.UTC()}
}

// RefreshLeague 按滚动一个月窗口重算联赛快照
func (s *AccuracyService) RefreshLeague(ctx context.Context, leagueID string) (*model.LeagueStats, error) {
	return s.RefreshLeagueWindow(ctx, leagueID, SnapshotWindow(s.now()))
}

// RefreshLeagueWindow 计算指定窗口四个类别的准确率并 upsert (league, season, period_start) 快照
func (s *AccuracyService) RefreshLeagueWindow(ctx context.Context, leagueID string, w Window) (*model.LeagueStats, error) {
	if leagueID == "" {
		return nil, invalid("leagueId", "is required")
	}
	if _, err := s.leagues.GetLeagueByID(ctx, leagueID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("league", "%s", leagueID)
		}
		return nil, persistence("get league", err)
	}

	rows, err := s.results.ListGradedInWindow(ctx, leagueID, w.Start, w.End)
	if err != nil {
		return nil, persistence("list graded results", err)
	}
	overall, byCategory, _ := FoldAccuracy(rows, false)
	breakdown, err := json.Marshal(byCategory)
	if err != nil {
		return nil, err
	}

	now := s.now()
	snapshot := &model.LeagueStats{
		LeagueID:           leagueID,
		Season:             strconv.Itoa(now.Year()),
		PeriodStart:        w.Start,
		PeriodEnd:          w.End,
		MatchResultAcc:     byCategory[model.CategoryMatchResult].Accuracy,
		HandicapAcc:        byCategory[model.CategoryHandicap].Accuracy,
		OverUnderAcc:       byCategory[model.CategoryOverUnder].Accuracy,
		CornersAcc:         byCategory[model.CategoryCorners].Accuracy,
		TotalPredictions:   overall.Total,
		CorrectPredictions: overall.Correct,
		Breakdown:          datatypes.JSON(breakdown),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.stats.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, persistence("upsert league stats", err)
	}
	return snapshot, nil
}

// RefreshAll 重算所有启用联赛的快照（定时任务 / rebuild-stats）；单个联赛失败不阻塞其它联赛
func (s *AccuracyService) RefreshAll(ctx context.Context) (int, error) {
	leagues, err := s.leagues.ListActiveLeagues(ctx)
	if err != nil {
		return 0, persistence("list leagues", err)
	}
	refreshed := 0
	for _, l := range leagues {
		if _, err := s.RefreshLeague(ctx, l.ID); err != nil {
			s.logger.WithError(err).WithField("league_id", l.ID).Warn("联赛统计刷新失败，跳过")
			continue
		}
		refreshed++
	}
	s.logger.WithField("leagues", refreshed).Info("联赛统计刷新完成")
	return refreshed, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
