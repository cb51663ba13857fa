package service

import (
	"context"
	"time"

	"FootballPredict/internal/config"
	"FootballPredict/internal/repository"

	"github.com/sirupsen/logrus"
)

// LiveWindow 开赛后多久视为比赛结束
const LiveWindow = 2 * time.Hour

// CleanupReport 一次过期数据清理的删除数量
type CleanupReport struct {
	DeletedMatches int64 `json:"deletedMatches"`
	DeletedStats   int64 `json:"deletedStats"`
}

// CompletedReport 已结束且早于截止时间的比赛数量（仅统计，不搬移数据）
type CompletedReport struct {
	MatchesFound int64     `json:"matchesFound"`
	CutoffDate   time.Time `json:"cutoffDate"`
}

// LifecycleService 比赛状态推进与过期数据清理
type LifecycleService struct {
	matches   repository.MatchRepository
	stats     repository.StatsRepository
	retention config.RetentionConfig
	logger    *logrus.Logger
	now       func() time.Time
}

// NewLifecycleService 创建 LifecycleService，保留月数未配置时取 6 / 3
func NewLifecycleService(matches repository.MatchRepository, stats repository.StatsRepository, retention config.RetentionConfig, logger *logrus.Logger) *LifecycleService {
	if retention.MatchMonths <= 0 {
		retention.MatchMonths = 6
	}
	if retention.StatsMonths <= 0 {
		retention.StatsMonths = 3
	}
	return &LifecycleService{
		matches:   matches,
		stats:     stats,
		retention: retention,
		logger:    logger,
		now:       utcNow,
	}
}

// SweepStatuses 以当前时间推进比赛状态
func (s *LifecycleService) SweepStatuses(ctx context.Context) (repository.StatusSweep, error) {
	return s.SweepStatusesAt(ctx, s.now())
}

// SweepStatusesAt UPCOMING 且开赛时间 <= now 置为 LIVE；LIVE 且开赛时间 <= now-2h 置为 FINISHED。
// POSTPONED / CANCELLED 不受影响；任一更新失败则整次推进回滚，由下次调度重试
func (s *LifecycleService) SweepStatusesAt(ctx context.Context, now time.Time) (repository.StatusSweep, error) {
	sweep, err := s.matches.AdvanceStatuses(ctx, now, LiveWindow)
	if err != nil {
		return repository.StatusSweep{}, persistence("advance match statuses", err)
	}
	s.logger.WithFields(logrus.Fields{
		"to_live":     sweep.ToLive,
		"to_finished": sweep.ToFinished,
	}).Info("比赛状态推进完成")
	return sweep, nil
}

// Cleanup 以当前时间清理过期数据
func (s *LifecycleService) Cleanup(ctx context.Context) (CleanupReport, error) {
	return s.CleanupAt(ctx, s.now())
}

// CleanupAt 删除开赛早于保留期的已结束比赛（级联删除预测与判定结果）及过期的联赛快照
func (s *LifecycleService) CleanupAt(ctx context.Context, now time.Time) (CleanupReport, error) {
	var report CleanupReport
	matchCutoff := now.AddDate(0, -s.retention.MatchMonths, 0)
	deleted, err := s.matches.DeleteFinishedBefore(ctx, matchCutoff)
	if err != nil {
		return report, persistence("delete expired matches", err)
	}
	report.DeletedMatches = deleted

	statsCutoff := now.AddDate(0, -s.retention.StatsMonths, 0)
	deleted, err = s.stats.DeleteCreatedBefore(ctx, statsCutoff)
	if err != nil {
		return report, persistence("delete expired league stats", err)
	}
	report.DeletedStats = deleted

	s.logger.WithFields(logrus.Fields{
		"deleted_matches": report.DeletedMatches,
		"deleted_stats":   report.DeletedStats,
	}).Info("过期数据清理完成")
	return report, nil
}

// CountCompleted 已结束且开赛早于 weekOffset 周前的比赛数量，前端据此归档展示
func (s *LifecycleService) CountCompleted(ctx context.Context, weekOffset int) (CompletedReport, error) {
	if weekOffset < 0 {
		return CompletedReport{}, invalid("weekOffset", "must not be negative")
	}
	cutoff := s.now().AddDate(0, 0, -7*weekOffset)
	total, err := s.matches.CountFinishedBefore(ctx, cutoff)
	if err != nil {
		return CompletedReport{}, persistence("count completed matches", err)
	}
	return CompletedReport{MatchesFound: total, CutoffDate: cutoff}, nil
}
