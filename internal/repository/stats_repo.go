package repository

import (
	"context"
	"errors"
	"time"

	"FootballPredict/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsRepository 联赛统计快照仓储
type StatsRepository interface {
	// UpsertSnapshot 按 (league_id, season, period_start) upsert 快照
	UpsertSnapshot(ctx context.Context, s *model.LeagueStats) error
	// LatestByLeague 联赛最新快照，不存在时返回 nil, nil
	LatestByLeague(ctx context.Context, leagueID string) (*model.LeagueStats, error)
	// DeleteCreatedBefore 删除早于 cutoff 创建的快照
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建 StatsRepository 实例
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) UpsertSnapshot(ctx context.Context, s *model.LeagueStats) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "league_id"}, {Name: "season"}, {Name: "period_start"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"period_end", "match_result_acc", "handicap_acc", "over_under_acc", "corners_acc",
			"total_predictions", "correct_predictions", "breakdown", "updated_at",
		}),
	}).Create(s).Error; err != nil {
		return err
	}
	// 冲突更新时部分驱动不回填主键，按唯一键回查
	var stored model.LeagueStats
	if err := r.db.WithContext(ctx).
		Where("league_id = ? AND season = ? AND period_start = ?", s.LeagueID, s.Season, s.PeriodStart).
		First(&stored).Error; err != nil {
		return err
	}
	*s = stored
	return nil
}

func (r *statsRepository) LatestByLeague(ctx context.Context, leagueID string) (*model.LeagueStats, error) {
	var s model.LeagueStats
	err := r.db.WithContext(ctx).
		Where("league_id = ?", leagueID).
		Order("period_start DESC").Order("id DESC").
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *statsRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.LeagueStats{})
	return res.RowsAffected, res.Error
}
