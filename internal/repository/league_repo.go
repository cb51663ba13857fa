package repository

import (
	"context"

	"FootballPredict/internal/model"

	"gorm.io/gorm"
)

// LeagueRepository 联赛查询
type LeagueRepository interface {
	// ListActiveLeagues 启用中的联赛，按名称排序
	ListActiveLeagues(ctx context.Context) ([]*model.League, error)
	// GetLeagueByID 通过短代码获取联赛
	GetLeagueByID(ctx context.Context, id string) (*model.League, error)
	// CountMatchesByLeague 各联赛比赛数量
	CountMatchesByLeague(ctx context.Context, leagueIDs []string) (map[string]int64, error)
}

type leagueRepository struct {
	db *gorm.DB
}

// NewLeagueRepository 创建 LeagueRepository 实例
func NewLeagueRepository(db *gorm.DB) LeagueRepository {
	return &leagueRepository{db: db}
}

func (r *leagueRepository) ListActiveLeagues(ctx context.Context) ([]*model.League, error) {
	var leagues []*model.League
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&leagues).Error; err != nil {
		return nil, err
	}
	return leagues, nil
}

func (r *leagueRepository) GetLeagueByID(ctx context.Context, id string) (*model.League, error) {
	var league model.League
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&league).Error; err != nil {
		return nil, err
	}
	return &league, nil
}

func (r *leagueRepository) CountMatchesByLeague(ctx context.Context, leagueIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(leagueIDs))
	if len(leagueIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		LeagueID string
		Total    int64
	}
	if err := r.db.WithContext(ctx).Model(&model.Match{}).
		Select("league_id, COUNT(*) AS total").
		Where("league_id IN ?", leagueIDs).
		Group("league_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.LeagueID] = row.Total
	}
	return counts, nil
}
