package repository

import (
	"context"
	"time"

	"FootballPredict/internal/model"

	"gorm.io/gorm"
)

// MatchFilter 比赛列表筛选条件
type MatchFilter struct {
	LeagueID  string            // 联赛短代码
	Status    model.MatchStatus // 比赛状态
	From      *time.Time        // 开赛时间起（含）
	To        *time.Time        // 开赛时间止（含）
	Ascending bool              // 默认按开赛时间倒序，upcoming 列表为正序
	Limit     int               // 0 表示不限制
}

// StatusSweep 一次状态推进的结果
type StatusSweep struct {
	ToLive     int64
	ToFinished int64
}

// MatchRepository 比赛仓储
type MatchRepository interface {
	// ListMatches 按条件查询比赛，附带联赛、预测与判定结果
	ListMatches(ctx context.Context, filter MatchFilter) ([]*model.Match, error)
	// GetMatchByID 通过 id 获取比赛，附带联赛、预测与判定结果
	GetMatchByID(ctx context.Context, id uint64) (*model.Match, error)
	// CountFinishedBefore 开赛时间早于 cutoff 的已结束比赛数量
	CountFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// AdvanceStatuses 批量推进比赛状态：LIVE->FINISHED（开赛满 finishAfter）与 UPCOMING->LIVE
	AdvanceStatuses(ctx context.Context, now time.Time, finishAfter time.Duration) (StatusSweep, error)
	// DeleteFinishedBefore 删除过期的已结束比赛，连同其预测与判定结果
	DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository 创建 MatchRepository 实例
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("League").
		Preload("Predictions", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Results", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func (r *matchRepository) ListMatches(ctx context.Context, filter MatchFilter) ([]*model.Match, error) {
	db := r.db.WithContext(ctx).Model(&model.Match{})
	if filter.LeagueID != "" {
		db = db.Where("league_id = ?", filter.LeagueID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		db = db.Where("match_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("match_date <= ?", *filter.To)
	}
	if filter.Ascending {
		db = db.Order("match_date ASC").Order("id ASC")
	} else {
		db = db.Order("match_date DESC").Order("id DESC")
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}

	var matches []*model.Match
	if err := r.withRelations(db).Find(&matches).Error; err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) GetMatchByID(ctx context.Context, id uint64) (*model.Match, error) {
	var m model.Match
	if err := r.withRelations(r.db.WithContext(ctx)).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) CountFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Match{}).
		Where("status = ? AND match_date < ?", model.StatusFinished, cutoff).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// AdvanceStatuses 先处理 LIVE->FINISHED 再处理 UPCOMING->LIVE，并要求 status_changed_at 早于 now，
// 同一次推进中一场比赛最多前进一步；同一 now 重复执行不会再产生变更
func (r *matchRepository) AdvanceStatuses(ctx context.Context, now time.Time, finishAfter time.Duration) (StatusSweep, error) {
	var sweep StatusSweep
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		finished := tx.Model(&model.Match{}).
			Where("status = ? AND match_date <= ?", model.StatusLive, now.Add(-finishAfter)).
			Where("status_changed_at IS NULL OR status_changed_at < ?", now).
			Updates(map[string]interface{}{
				"status":            model.StatusFinished,
				"status_changed_at": now,
				"updated_at":        now,
			})
		if finished.Error != nil {
			return finished.Error
		}
		sweep.ToFinished = finished.RowsAffected

		live := tx.Model(&model.Match{}).
			Where("status = ? AND match_date <= ?", model.StatusUpcoming, now).
			Updates(map[string]interface{}{
				"status":            model.StatusLive,
				"status_changed_at": now,
				"updated_at":        now,
			})
		if live.Error != nil {
			return live.Error
		}
		sweep.ToLive = live.RowsAffected
		return nil
	})
	if err != nil {
		return StatusSweep{}, err
	}
	return sweep, nil
}

func (r *matchRepository) DeleteFinishedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		expired := tx.Model(&model.Match{}).Select("id").
			Where("status = ? AND match_date < ?", model.StatusFinished, cutoff)

		if err := tx.Where("match_id IN (?)", expired).Delete(&model.Result{}).Error; err != nil {
			return err
		}
		if err := tx.Where("match_id IN (?)", expired).Delete(&model.Prediction{}).Error; err != nil {
			return err
		}
		res := tx.Where("status = ? AND match_date < ?", model.StatusFinished, cutoff).Delete(&model.Match{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
