package service

import (
	"FootballPredict/internal/config"
	"FootballPredict/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Services 应用内全部服务，由 cmd 构建一次后注入到路由与调度器
type Services struct {
	Matches     *MatchService
	Predictions *PredictionService
	Leagues     *LeagueService
	Accuracy    *AccuracyService
	Results     *ResultService
	Lifecycle   *LifecycleService
}

// NewServices 基于同一个 *gorm.DB 组装仓储与服务
func NewServices(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Services {
	leagueRepo := repository.NewLeagueRepository(db)
	matchRepo := repository.NewMatchRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)
	resultRepo := repository.NewResultRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	matches := NewMatchService(matchRepo, logger)
	accuracy := NewAccuracyService(resultRepo, statsRepo, leagueRepo, logger)
	return &Services{
		Matches:     matches,
		Predictions: NewPredictionService(predictionRepo),
		Leagues:     NewLeagueService(leagueRepo, statsRepo, matches),
		Accuracy:    accuracy,
		Results:     NewResultService(resultRepo, matchRepo, accuracy, logger),
		Lifecycle:   NewLifecycleService(matchRepo, statsRepo, cfg.Retention, logger),
	}
}
