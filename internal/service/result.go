package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"FootballPredict/internal/model"
	"FootballPredict/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const defaultUpdatedBy = "admin"

// UpdateResultRequest 单条判定请求 POST /api/admin/results/update
type UpdateResultRequest struct {
	MatchID       uint64         `json:"matchId"`
	Category      model.Category `json:"category"`
	IsCorrect     *bool          `json:"isCorrect"`
	ActualOutcome string         `json:"actualOutcome"`
	UpdatedBy     string         `json:"updatedBy"`
}

// Validate matchId / category / isCorrect 必填，category 必须是四种类别之一
func (r *UpdateResultRequest) Validate() error {
	if r.MatchID == 0 {
		return invalid("matchId", "is required")
	}
	if r.Category == "" {
		return invalid("category", "is required")
	}
	if !r.Category.Valid() {
		return invalid("category", "unknown category %q", r.Category)
	}
	if r.IsCorrect == nil {
		return invalid("isCorrect", "is required and must be a boolean")
	}
	return nil
}

// BulkUpdateRequest 批量判定请求，updatedBy 对整批生效。
// Updates 逐条延迟解码，单条字段类型错误只影响该条
type BulkUpdateRequest struct {
	Updates   []json.RawMessage `json:"updates"`
	UpdatedBy string            `json:"updatedBy"`
}

// decodeUpdate 解码单条判定，类型错误转换为带字段名的 ValidationError
func decodeUpdate(raw json.RawMessage) (*UpdateResultRequest, error) {
	var item UpdateResultRequest
	if err := json.Unmarshal(raw, &item); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, invalid(typeErr.Field, "must be a %s", typeErr.Type.String())
		}
		return nil, invalid("update", "%v", err)
	}
	return &item, nil
}

// BulkUpdateResult 批量判定结果：成功条数 + 逐条错误
type BulkUpdateResult struct {
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// StatsRefresher 判定写入后刷新联赛快照
type StatsRefresher interface {
	RefreshLeague(ctx context.Context, leagueID string) (*model.LeagueStats, error)
}

// ResultService 管理员判定预测对错
type ResultService struct {
	results   repository.ResultRepository
	matches   repository.MatchRepository
	refresher StatsRefresher
	logger    *logrus.Logger
	now       func() time.Time
}

// NewResultService 创建 ResultService。refresher 为 nil 时不刷新联赛快照
func NewResultService(results repository.ResultRepository, matches repository.MatchRepository, refresher StatsRefresher, logger *logrus.Logger) *ResultService {
	return &ResultService{
		results:   results,
		matches:   matches,
		refresher: refresher,
		logger:    logger,
		now:       utcNow,
	}
}

// UpdateResult 校验后 upsert 判定结果，成功后尽力刷新所属联赛快照（失败只记日志，不回滚）
func (s *ResultService) UpdateResult(ctx context.Context, req *UpdateResultRequest) (*model.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	updatedBy := req.UpdatedBy
	if updatedBy == "" {
		updatedBy = defaultUpdatedBy
	}

	result, err := s.upsert(ctx, req, updatedBy)
	if err != nil {
		return nil, err
	}

	s.refreshForMatches(ctx, req.MatchID)
	return result, nil
}

// BulkUpdate 逐条独立处理，单条失败记入 errors 不影响其余条目；整批完成后每个涉及联赛刷新一次快照
func (s *ResultService) BulkUpdate(ctx context.Context, req *BulkUpdateRequest) (*BulkUpdateResult, error) {
	if len(req.Updates) == 0 {
		return nil, invalid("updates", "must be a non-empty array")
	}

	out := &BulkUpdateResult{Errors: []string{}}
	var touched []uint64
	for i, raw := range req.Updates {
		item, err := decodeUpdate(raw)
		if err == nil {
			err = item.Validate()
		}
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("Invalid update #%d: %v", i+1, err))
			continue
		}
		updatedBy := req.UpdatedBy
		if updatedBy == "" {
			updatedBy = item.UpdatedBy
		}
		if updatedBy == "" {
			updatedBy = defaultUpdatedBy
		}

		if _, err := s.upsert(ctx, item, updatedBy); err != nil {
			var nf *NotFoundError
			if errors.As(err, &nf) {
				out.Errors = append(out.Errors, fmt.Sprintf("Prediction not found for match %d, category %s", item.MatchID, item.Category))
			} else {
				out.Errors = append(out.Errors, fmt.Sprintf("Error updating match %d: %v", item.MatchID, err))
			}
			continue
		}
		out.Updated++
		touched = append(touched, item.MatchID)
	}

	s.refreshForMatches(ctx, touched...)
	return out, nil
}

func (s *ResultService) upsert(ctx context.Context, req *UpdateResultRequest, updatedBy string) (*model.Result, error) {
	result, err := s.results.UpsertResult(ctx, repository.ResultUpsert{
		MatchID:       req.MatchID,
		Category:      req.Category,
		IsCorrect:     *req.IsCorrect,
		ActualOutcome: req.ActualOutcome,
		UpdatedBy:     updatedBy,
		At:            s.now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrPredictionNotFound) {
			return nil, notFound("prediction", "match %d, category %s", req.MatchID, req.Category)
		}
		return nil, persistence("upsert result", err)
	}
	return result, nil
}

// refreshForMatches 按比赛找到联赛并刷新快照，同一联赛只刷新一次；失败视为 AggregationSkipped 仅记日志
func (s *ResultService) refreshForMatches(ctx context.Context, matchIDs ...uint64) {
	if s.refresher == nil || len(matchIDs) == 0 {
		return
	}
	seen := make(map[string]bool)
	for _, id := range matchIDs {
		match, err := s.matches.GetMatchByID(ctx, id)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.WithError(err).WithField("match_id", id).Warn("AggregationSkipped: 查询比赛失败")
			}
			continue
		}
		if seen[match.LeagueID] {
			continue
		}
		seen[match.LeagueID] = true
		if _, err := s.refresher.RefreshLeague(ctx, match.LeagueID); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"match_id":  id,
				"league_id": match.LeagueID,
			}).Warn("AggregationSkipped: 联赛统计刷新失败")
		}
	}
}
