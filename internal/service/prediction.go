package service

import (
	"context"

	"FootballPredict/internal/model"
	"FootballPredict/internal/repository"
)

// PredictionService 预测查询
type PredictionService struct {
	predictions repository.PredictionRepository
}

// NewPredictionService 创建 PredictionService
func NewPredictionService(predictions repository.PredictionRepository) *PredictionService {
	return &PredictionService{predictions: predictions}
}

// ByMatch 单场比赛的全部预测
func (s *PredictionService) ByMatch(ctx context.Context, matchID uint64) ([]*model.Prediction, error) {
	list, err := s.predictions.ListPredictions(ctx, repository.PredictionFilter{MatchID: matchID})
	if err != nil {
		return nil, persistence("list match predictions", err)
	}
	return list, nil
}

// ByLeague 联赛下的预测，可按类别过滤，默认 50 条
func (s *PredictionService) ByLeague(ctx context.Context, leagueID, category string, limit int) ([]*model.Prediction, error) {
	c := model.Category(category)
	if category != "" && !c.Valid() {
		return nil, invalid("category", "unknown category %q", category)
	}
	if limit <= 0 {
		limit = 50
	}
	list, err := s.predictions.ListPredictions(ctx, repository.PredictionFilter{
		LeagueID: leagueID,
		Category: c,
		Limit:    limit,
	})
	if err != nil {
		return nil, persistence("list league predictions", err)
	}
	return list, nil
}
