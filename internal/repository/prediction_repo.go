package repository

import (
	"context"

	"FootballPredict/internal/model"

	"gorm.io/gorm"
)

// PredictionFilter 预测列表筛选条件
type PredictionFilter struct {
	MatchID  uint64
	LeagueID string
	Category model.Category
	Limit    int
}

// PredictionRepository 预测查询
type PredictionRepository interface {
	// ListPredictions 按条件查询预测，附带比赛（含联赛）与判定结果，按创建时间倒序
	ListPredictions(ctx context.Context, filter PredictionFilter) ([]*model.Prediction, error)
}

type predictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository 创建 PredictionRepository 实例
func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) ListPredictions(ctx context.Context, filter PredictionFilter) ([]*model.Prediction, error) {
	db := r.db.WithContext(ctx).Model(&model.Prediction{})
	if filter.MatchID != 0 {
		db = db.Where("predictions.match_id = ?", filter.MatchID)
	}
	if filter.LeagueID != "" {
		db = db.Joins("JOIN matches ON matches.id = predictions.match_id").
			Where("matches.league_id = ?", filter.LeagueID)
	}
	if filter.Category != "" {
		db = db.Where("predictions.category = ?", filter.Category)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}

	var predictions []*model.Prediction
	if err := db.
		Preload("Match.League").
		Preload("Results").
		Order("predictions.created_at DESC").Order("predictions.id DESC").
		Find(&predictions).Error; err != nil {
		return nil, err
	}
	return predictions, nil
}
