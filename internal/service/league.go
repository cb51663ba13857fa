package service

import (
	"context"
	"errors"
	"fmt"

	"FootballPredict/internal/model"
	"FootballPredict/internal/repository"

	"gorm.io/gorm"
)

// LeagueSummary 联赛列表项：联赛 + 比赛数量 + 最新快照
type LeagueSummary struct {
	*model.League
	MatchCount  int64              `json:"matchCount"`
	LatestStats *model.LeagueStats `json:"latestStats"`
}

// LeagueData 联赛页数据
type LeagueData struct {
	League          *model.League      `json:"league"`
	UpcomingMatches []*model.Match     `json:"upcomingMatches"`
	PreviousMatches []*model.Match     `json:"previousMatches"`
	Stats           *model.LeagueStats `json:"stats"`
}

// Option 下拉框选项
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LeagueService 联赛查询
type LeagueService struct {
	leagues repository.LeagueRepository
	stats   repository.StatsRepository
	matches *MatchService
}

// NewLeagueService 创建 LeagueService
func NewLeagueService(leagues repository.LeagueRepository, stats repository.StatsRepository, matches *MatchService) *LeagueService {
	return &LeagueService{leagues: leagues, stats: stats, matches: matches}
}

// ListLeagues 启用联赛，附带比赛数量与最新快照
func (s *LeagueService) ListLeagues(ctx context.Context) ([]LeagueSummary, error) {
	leagues, err := s.leagues.ListActiveLeagues(ctx)
	if err != nil {
		return nil, persistence("list leagues", err)
	}
	ids := make([]string, 0, len(leagues))
	for _, l := range leagues {
		ids = append(ids, l.ID)
	}
	counts, err := s.leagues.CountMatchesByLeague(ctx, ids)
	if err != nil {
		return nil, persistence("count league matches", err)
	}

	out := make([]LeagueSummary, 0, len(leagues))
	for _, l := range leagues {
		latest, err := s.stats.LatestByLeague(ctx, l.ID)
		if err != nil {
			return nil, persistence("latest league stats", err)
		}
		out = append(out, LeagueSummary{League: l, MatchCount: counts[l.ID], LatestStats: latest})
	}
	return out, nil
}

// LatestStats 联赛最新快照；尚无快照时返回全零快照
func (s *LeagueService) LatestStats(ctx context.Context, leagueID string) (*model.LeagueStats, error) {
	latest, err := s.stats.LatestByLeague(ctx, leagueID)
	if err != nil {
		return nil, persistence("latest league stats", err)
	}
	if latest == nil {
		return &model.LeagueStats{LeagueID: leagueID}, nil
	}
	return latest, nil
}

// LeagueData 联赛信息 + 未来 10 场 + 最近两周已结束比赛 + 最新快照
func (s *LeagueService) LeagueData(ctx context.Context, leagueID string) (*LeagueData, error) {
	league, err := s.leagues.GetLeagueByID(ctx, leagueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("league", "%s", leagueID)
		}
		return nil, persistence("get league", err)
	}
	upcoming, err := s.matches.Upcoming(ctx, leagueID, 10)
	if err != nil {
		return nil, err
	}
	previous, err := s.matches.Previous(ctx, leagueID, 2)
	if err != nil {
		return nil, err
	}
	stats, err := s.LatestStats(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return &LeagueData{
		League:          league,
		UpcomingMatches: upcoming,
		PreviousMatches: previous,
		Stats:           stats,
	}, nil
}

// LeagueOptions 管理后台联赛下拉框
func (s *LeagueService) LeagueOptions(ctx context.Context) ([]Option, error) {
	leagues, err := s.leagues.ListActiveLeagues(ctx)
	if err != nil {
		return nil, persistence("list leagues", err)
	}
	out := make([]Option, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, Option{Value: l.ID, Label: fmt.Sprintf("%s (%s)", l.Name, l.Country)})
	}
	return out, nil
}

// CategoryOptions 预测类别下拉框
func CategoryOptions() []Option {
	out := make([]Option, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, Option{Value: string(c), Label: c.Label()})
	}
	return out
}

// StatusOptions 比赛状态下拉框
func StatusOptions() []Option {
	out := make([]Option, 0, len(model.MatchStatuses))
	for _, st := range model.MatchStatuses {
		out = append(out, Option{Value: string(st), Label: st.Label()})
	}
	return out
}
