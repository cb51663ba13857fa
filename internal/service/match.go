package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FootballPredict/internal/model"
	"FootballPredict/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MatchQuery 比赛列表查询参数
type MatchQuery struct {
	LeagueID string
	Status   string
	From     *time.Time
	To       *time.Time
	Limit    int
}

// MatchOption 管理后台下拉框中的一场比赛
type MatchOption struct {
	ID         uint64            `json:"id"`
	Label      string            `json:"label"`
	HomeTeam   string            `json:"homeTeam"`
	AwayTeam   string            `json:"awayTeam"`
	Date       time.Time         `json:"date"`
	Time       string            `json:"time"`
	League     string            `json:"league"`
	Status     model.MatchStatus `json:"status"`
	HasResults bool              `json:"hasResults"`
}

// ResultSummary 预测对应的判定结果
type ResultSummary struct {
	IsCorrect     bool      `json:"isCorrect"`
	ActualOutcome string    `json:"actualOutcome"`
	UpdatedBy     string    `json:"updatedBy"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PredictionWithResult 预测 + 判定结果（未判定为 null，而不是错误）
type PredictionWithResult struct {
	model.Prediction
	Result *ResultSummary `json:"result"`
}

// MatchDetail 管理后台比赛详情
type MatchDetail struct {
	*model.Match
	Predictions []PredictionWithResult `json:"predictions"`
}

// MatchService 比赛查询（纯投影，无业务逻辑）
type MatchService struct {
	matches repository.MatchRepository
	logger  *logrus.Logger
	now     func() time.Time
}

// NewMatchService 创建 MatchService
func NewMatchService(matches repository.MatchRepository, logger *logrus.Logger) *MatchService {
	return &MatchService{matches: matches, logger: logger, now: utcNow}
}

func parseStatus(raw string) (model.MatchStatus, error) {
	if raw == "" {
		return "", nil
	}
	status := model.MatchStatus(raw)
	if !status.Valid() {
		return "", invalid("status", "unknown status %q", raw)
	}
	return status, nil
}

// ListMatches 按联赛 / 状态 / 开赛时间筛选，开赛时间倒序
func (s *MatchService) ListMatches(ctx context.Context, q MatchQuery) ([]*model.Match, error) {
	status, err := parseStatus(q.Status)
	if err != nil {
		return nil, err
	}
	matches, err := s.matches.ListMatches(ctx, repository.MatchFilter{
		LeagueID: q.LeagueID,
		Status:   status,
		From:     q.From,
		To:       q.To,
		Limit:    q.Limit,
	})
	if err != nil {
		return nil, persistence("list matches", err)
	}
	return matches, nil
}

// Upcoming 未开赛且开赛时间在未来的比赛，开赛时间正序
func (s *MatchService) Upcoming(ctx context.Context, leagueID string, limit int) ([]*model.Match, error) {
	if limit <= 0 {
		limit = 10
	}
	now := s.now()
	matches, err := s.matches.ListMatches(ctx, repository.MatchFilter{
		LeagueID:  leagueID,
		Status:    model.StatusUpcoming,
		From:      &now,
		Ascending: true,
		Limit:     limit,
	})
	if err != nil {
		return nil, persistence("list upcoming matches", err)
	}
	return matches, nil
}

// Previous 最近 weeks 周内已结束的比赛，开赛时间倒序
func (s *MatchService) Previous(ctx context.Context, leagueID string, weeks int) ([]*model.Match, error) {
	if weeks <= 0 {
		weeks = 2
	}
	now := s.now()
	from := now.AddDate(0, 0, -7*weeks)
	matches, err := s.matches.ListMatches(ctx, repository.MatchFilter{
		LeagueID: leagueID,
		Status:   model.StatusFinished,
		From:     &from,
		To:       &now,
	})
	if err != nil {
		return nil, persistence("list previous matches", err)
	}
	return matches, nil
}

// GetMatch 通过 id 获取比赛
func (s *MatchService) GetMatch(ctx context.Context, id uint64) (*model.Match, error) {
	match, err := s.matches.GetMatchByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("match", "%d", id)
		}
		return nil, persistence("get match", err)
	}
	return match, nil
}

// AdminOptions 管理后台比赛下拉框
func (s *MatchService) AdminOptions(ctx context.Context, q MatchQuery) ([]MatchOption, error) {
	matches, err := s.ListMatches(ctx, q)
	if err != nil {
		return nil, err
	}
	options := make([]MatchOption, 0, len(matches))
	for _, m := range matches {
		var leagueName string
		if m.League != nil {
			leagueName = m.League.Name
		}
		options = append(options, MatchOption{
			ID:         m.ID,
			Label:      fmt.Sprintf("#%d - %s vs %s", m.ID, m.HomeTeam, m.AwayTeam),
			HomeTeam:   m.HomeTeam,
			AwayTeam:   m.AwayTeam,
			Date:       m.MatchDate,
			Time:       m.MatchTime,
			League:     leagueName,
			Status:     m.Status,
			HasResults: len(m.Results) > 0,
		})
	}
	return options, nil
}

// AdminDetail 比赛详情，每个预测附带同类别的判定结果
func (s *MatchService) AdminDetail(ctx context.Context, id uint64) (*MatchDetail, error) {
	match, err := s.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[model.Category]*model.Result, len(match.Results))
	for i := range match.Results {
		byCategory[match.Results[i].Category] = &match.Results[i]
	}
	detail := &MatchDetail{Match: match, Predictions: make([]PredictionWithResult, 0, len(match.Predictions))}
	for _, p := range match.Predictions {
		item := PredictionWithResult{Prediction: p}
		if r, ok := byCategory[p.Category]; ok {
			item.Result = &ResultSummary{
				IsCorrect:     r.IsCorrect,
				ActualOutcome: r.ActualOutcome,
				UpdatedBy:     r.UpdatedBy,
				UpdatedAt:     r.UpdatedAt,
			}
		}
		detail.Predictions = append(detail.Predictions, item)
	}
	return detail, nil
}
