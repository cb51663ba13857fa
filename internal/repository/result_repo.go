package repository

import (
	"context"
	"errors"
	"time"

	"FootballPredict/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrPredictionNotFound 比赛在该类别下没有预测
var ErrPredictionNotFound = errors.New("prediction not found")

// ResultUpsert 写入判定结果的参数
type ResultUpsert struct {
	MatchID       uint64
	Category      model.Category
	IsCorrect     bool
	ActualOutcome string
	UpdatedBy     string
	At            time.Time
}

// GradedResultView 只暴露给 service 的轻量视图结构（判定结果 + 所属联赛）
type GradedResultView struct {
	Category   model.Category
	IsCorrect  bool
	LeagueID   string
	LeagueName string
}

// ResultRepository 判定结果仓储
type ResultRepository interface {
	// UpsertResult 事务内查预测并按 (match_id, category) upsert，返回最新行
	UpsertResult(ctx context.Context, in ResultUpsert) (*model.Result, error)
	// ListGradedInWindow 创建时间落在 [start, end] 的判定结果；leagueID 为空表示全部联赛
	ListGradedInWindow(ctx context.Context, leagueID string, start, end time.Time) ([]GradedResultView, error)
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository 创建 ResultRepository 实例
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) UpsertResult(ctx context.Context, in ResultUpsert) (*model.Result, error) {
	var out model.Result
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prediction model.Prediction
		if err := tx.Where("match_id = ? AND category = ?", in.MatchID, in.Category).
			Order("id ASC").
			First(&prediction).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPredictionNotFound
			}
			return err
		}

		row := &model.Result{
			MatchID:       in.MatchID,
			PredictionID:  prediction.ID,
			Category:      in.Category,
			IsCorrect:     in.IsCorrect,
			ActualOutcome: in.ActualOutcome,
			UpdatedBy:     in.UpdatedBy,
			CreatedAt:     in.At,
			UpdatedAt:     in.At,
		}
		// 唯一索引 uq_result_match_category 兜底并发写，冲突则原地更新
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "match_id"}, {Name: "category"}},
			DoUpdates: clause.AssignmentColumns([]string{"prediction_id", "is_correct", "actual_outcome", "updated_by", "updated_at"}),
		}).Create(row).Error; err != nil {
			return err
		}
		return tx.Where("match_id = ? AND category = ?", in.MatchID, in.Category).First(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *resultRepository) ListGradedInWindow(ctx context.Context, leagueID string, start, end time.Time) ([]GradedResultView, error) {
	db := r.db.WithContext(ctx).Table("results").
		Select("results.category, results.is_correct, matches.league_id, leagues.name AS league_name").
		Joins("JOIN matches ON matches.id = results.match_id").
		Joins("JOIN leagues ON leagues.id = matches.league_id").
		Where("results.created_at >= ? AND results.created_at <= ?", start, end)
	if leagueID != "" {
		db = db.Where("matches.league_id = ?", leagueID)
	}

	var rows []GradedResultView
	if err := db.Order("results.id ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
