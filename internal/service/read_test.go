package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"FootballPredict/internal/model"
)

func TestMatchQueries(t *testing.T) {
	db, svcs := newTestServices(t)
	ctx := context.Background()
	seedLeague(t, db, "PL", "Premier League")
	seedLeague(t, db, "PD", "La Liga")

	soon := seedMatch(t, db, "PL", testNow.Add(24*time.Hour), model.StatusUpcoming)
	later := seedMatch(t, db, "PL", testNow.Add(72*time.Hour), model.StatusUpcoming)
	seedMatch(t, db, "PD", testNow.Add(48*time.Hour), model.StatusUpcoming)
	lastWeek := seedMatch(t, db, "PL", testNow.AddDate(0, 0, -5), model.StatusFinished)
	seedMatch(t, db, "PL", testNow.AddDate(0, 0, -30), model.StatusFinished)

	upcoming, err := svcs.Matches.Upcoming(ctx, "PL", 0)
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].ID != soon.ID || upcoming[1].ID != later.ID {
		t.Fatalf("upcoming: want [%d %d] got=%v", soon.ID, later.ID, matchIDs(upcoming))
	}
	if upcoming[0].League == nil || upcoming[0].League.Name != "Premier League" {
		t.Fatalf("upcoming league not loaded: %+v", upcoming[0].League)
	}

	previous, err := svcs.Matches.Previous(ctx, "PL", 0)
	if err != nil {
		t.Fatalf("Previous: %v", err)
	}
	if len(previous) != 1 || previous[0].ID != lastWeek.ID {
		t.Fatalf("previous: want [%d] got=%v", lastWeek.ID, matchIDs(previous))
	}

	all, err := svcs.Matches.ListMatches(ctx, MatchQuery{LeagueID: "PL"})
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(all) != 4 || all[0].ID != later.ID {
		t.Fatalf("list: want 4 matches newest first got=%v", matchIDs(all))
	}

	var ve *ValidationError
	if _, err := svcs.Matches.ListMatches(ctx, MatchQuery{Status: "HALF_TIME"}); !errors.As(err, &ve) {
		t.Fatalf("bad status: want ValidationError got=%v", err)
	}
	var nf *NotFoundError
	if _, err := svcs.Matches.GetMatch(ctx, 9999); !errors.As(err, &nf) {
		t.Fatalf("missing match: want NotFoundError got=%v", err)
	}
}

func TestAdminDetailPairsResults(t *testing.T) {
	db, svcs := newTestServices(t)
	ctx := context.Background()
	seedLeague(t, db, "PL", "Premier League")
	m := seedMatch(t, db, "PL", testNow.AddDate(0, 0, -1), model.StatusFinished)
	seedGraded(t, db, m.ID, model.CategoryMatchResult, true, testNow)
	seedPrediction(t, db, m.ID, model.CategoryHandicap)

	detail, err := svcs.Matches.AdminDetail(ctx, m.ID)
	if err != nil {
		t.Fatalf("AdminDetail: %v", err)
	}
	if len(detail.Predictions) != 2 {
		t.Fatalf("predictions: want=2 got=%d", len(detail.Predictions))
	}
	for _, p := range detail.Predictions {
		switch p.Category {
		case model.CategoryMatchResult:
			if p.Result == nil || !p.Result.IsCorrect {
				t.Fatalf("match result should carry its verdict: %+v", p.Result)
			}
		case model.CategoryHandicap:
			if p.Result != nil {
				t.Fatalf("handicap has no verdict yet: %+v", p.Result)
			}
		}
	}

	options, err := svcs.Matches.AdminOptions(ctx, MatchQuery{})
	if err != nil {
		t.Fatalf("AdminOptions: %v", err)
	}
	if len(options) != 1 || !options[0].HasResults || options[0].League != "Premier League" {
		t.Fatalf("options: got=%+v", options)
	}
	if want := "#1 - Arsenal vs Chelsea"; options[0].Label != want {
		t.Fatalf("label: want=%q got=%q", want, options[0].Label)
	}
}

func TestLeagueQueries(t *testing.T) {
	db, svcs := newTestServices(t)
	ctx := context.Background()
	seedLeague(t, db, "PL", "Premier League")
	seedLeague(t, db, "BL1", "Bundesliga")
	seedMatch(t, db, "PL", testNow.Add(time.Hour), model.StatusUpcoming)
	seedMatch(t, db, "PL", testNow.AddDate(0, 0, -3), model.StatusFinished)

	leagues, err := svcs.Leagues.ListLeagues(ctx)
	if err != nil {
		t.Fatalf("ListLeagues: %v", err)
	}
	if len(leagues) != 2 || leagues[0].ID != "BL1" {
		t.Fatalf("leagues: want BL1 first got=%+v", leagues)
	}
	if leagues[1].MatchCount != 2 || leagues[0].MatchCount != 0 || leagues[1].LatestStats != nil {
		t.Fatalf("summaries: got=%+v %+v", leagues[0], leagues[1])
	}

	stats, err := svcs.Leagues.LatestStats(ctx, "PL")
	if err != nil {
		t.Fatalf("LatestStats: %v", err)
	}
	if stats.LeagueID != "PL" || stats.TotalPredictions != 0 {
		t.Fatalf("zero snapshot: got=%+v", stats)
	}

	data, err := svcs.Leagues.LeagueData(ctx, "PL")
	if err != nil {
		t.Fatalf("LeagueData: %v", err)
	}
	if len(data.UpcomingMatches) != 1 || len(data.PreviousMatches) != 1 {
		t.Fatalf("league data: upcoming=%d previous=%d", len(data.UpcomingMatches), len(data.PreviousMatches))
	}
	var nf *NotFoundError
	if _, err := svcs.Leagues.LeagueData(ctx, "XX"); !errors.As(err, &nf) {
		t.Fatalf("missing league: want NotFoundError got=%v", err)
	}

	if got := len(CategoryOptions()); got != 4 {
		t.Fatalf("category options: want=4 got=%d", got)
	}
	if got := len(StatusOptions()); got != 5 {
		t.Fatalf("status options: want=5 got=%d", got)
	}
}

func TestPredictionQueries(t *testing.T) {
	db, svcs := newTestServices(t)
	ctx := context.Background()
	seedLeague(t, db, "PL", "Premier League")
	seedLeague(t, db, "PD", "La Liga")
	pl := seedMatch(t, db, "PL", testNow.Add(time.Hour), model.StatusUpcoming)
	pd := seedMatch(t, db, "PD", testNow.Add(time.Hour), model.StatusUpcoming)
	seedPrediction(t, db, pl.ID, model.CategoryMatchResult)
	seedPrediction(t, db, pl.ID, model.CategoryCorners)
	seedPrediction(t, db, pd.ID, model.CategoryCorners)

	byMatch, err := svcs.Predictions.ByMatch(ctx, pl.ID)
	if err != nil {
		t.Fatalf("ByMatch: %v", err)
	}
	if len(byMatch) != 2 {
		t.Fatalf("by match: want=2 got=%d", len(byMatch))
	}

	corners, err := svcs.Predictions.ByLeague(ctx, "PD", string(model.CategoryCorners), 0)
	if err != nil {
		t.Fatalf("ByLeague: %v", err)
	}
	if len(corners) != 1 || corners[0].MatchID != pd.ID {
		t.Fatalf("PD corners: got=%d", len(corners))
	}

	var ve *ValidationError
	if _, err := svcs.Predictions.ByLeague(ctx, "PL", "CORNERS_KICKS", 0); !errors.As(err, &ve) {
		t.Fatalf("bad category: want ValidationError got=%v", err)
	}
}

func matchIDs(matches []*model.Match) []uint64 {
	ids := make([]uint64, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	return ids
}
