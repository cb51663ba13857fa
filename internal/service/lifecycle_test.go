package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"FootballPredict/internal/model"

	"gorm.io/gorm"
)

func statusOf(t *testing.T, db *gorm.DB, id uint64) model.MatchStatus {
	t.Helper()
	var m model.Match
	if err := db.First(&m, id).Error; err != nil {
		t.Fatalf("load match %d: %v", id, err)
	}
	return m.Status
}

func TestSweepAdvancesOneStepPerRun(t *testing.T) {
	db, svcs := newTestServices(t)
	ctx := context.Background()
	seedLeague(t, db, "PL", "Premier League")
	m := seedMatch(t, db, "PL", testNow.Add(-3*time.Hour), model.StatusUpcoming)

	sweep, err := svcs.Lifecycle.SweepStatusesAt(ctx, testNow)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if sweep.ToLive != 1 || sweep.ToFinished != 0 {
		t.Fatalf("first sweep: want live=1 finished=0 got=%+v", sweep)
	}
	if got := statusOf(t, db, m.ID); got != model.StatusLive {
		t.Fatalf("after first sweep: want=LIVE got=%s", got)
	}

	// 时间不前进则无变化
	sweep, err = svcs.Lifecycle.SweepStatusesAt(ctx, testNow)
	if err != nil {
		t.Fatalf("repeat sweep: %v", err)
	}
	if sweep.ToLive != 0 || sweep.ToFinished != 0 {
		t.Fatalf("repeat sweep: want no transitions got=%+v", sweep)
	}

	sweep, err = svcs.Lifecycle.SweepStatusesAt(ctx, testNow.Add(time.Minute))
	if err != nil {
		t.Fatalf("later sweep: %v", err)
	}
	if sweep.ToFinished != 1 {
		t.Fatalf("later sweep: want finished=1 got=%+v", sweep)
	}
	if got := statusOf(t, db, m.ID); got != model.StatusFinished {
		t.Fatalf("after later sweep: want=FINISHED got=%s", got)
	}
}

func TestSweepLeavesOtherMatchesAlone(t *testing.T) {
	db, svcs := newTestServices(t)
	seedLeague(t, db, "PL", "Premier League")

	postponed := seedMatch(t, db, "PL", testNow.Add(-5*time.Hour), model.StatusPostponed)
	cancelled := seedMatch(t, db, "PL", testNow.Add(-5*time.Hour), model.StatusCancelled)
	future := seedMatch(t, db, "PL", testNow.Add(time.Hour), model.StatusUpcoming)
	recentLive := seedMatch(t, db, "PL", testNow.Add(-time.Hour), model.StatusLive)
	staleLive := seedMatch(t, db, "PL", testNow.Add(-3*time.Hour), model.StatusLive)
	finished := seedMatch(t, db, "PL", testNow.Add(-30*time.Hour), model.StatusFinished)

	sweep, err := svcs.Lifecycle.SweepStatusesAt(context.Background(), testNow)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if sweep.ToLive != 0 || sweep.ToFinished != 1 {
		t.Fatalf("sweep: want live=0 finished=1 got=%+v", sweep)
	}

	want := map[uint64]model.MatchStatus{
		postponed.ID:  model.StatusPostponed,
		cancelled.ID:  model.StatusCancelled,
		future.ID:     model.StatusUpcoming,
		recentLive.ID: model.StatusLive,
		staleLive.ID:  model.StatusFinished,
		finished.ID:   model.StatusFinished,
	}
	for id, status := range want {
		if got := statusOf(t, db, id); got != status {
			t.Fatalf("match %d: want=%s got=%s", id, status, got)
		}
	}
}

func TestSweepNeverMovesBackwards(t *testing.T) {
	db, svcs := newTestServices(t)
	seedLeague(t, db, "PL", "Premier League")
	kickoffs := []time.Duration{-10 * time.Hour, -2 * time.Hour, -30 * time.Minute, time.Hour, 4 * time.Hour}
	var ids []uint64
	for _, d := range kickoffs {
		ids = append(ids, seedMatch(t, db, "PL", testNow.Add(d), model.StatusUpcoming).ID)
	}

	rank := map[model.MatchStatus]int{model.StatusUpcoming: 0, model.StatusLive: 1, model.StatusFinished: 2}
	last := make(map[uint64]int)
	for step := 0; step < 8; step++ {
		now := testNow.Add(time.Duration(step) * time.Hour)
		if _, err := svcs.Lifecycle.SweepStatusesAt(context.Background(), now); err != nil {
			t.Fatalf("sweep %d: %v", step, err)
		}
		for _, id := range ids {
			r := rank[statusOf(t, db, id)]
			if r < last[id] || r > last[id]+1 {
				t.Fatalf("match %d at step %d: rank %d -> %d", id, step, last[id], r)
			}
			last[id] = r
		}
	}
	for _, id := range ids {
		if last[id] != 2 {
			t.Fatalf("match %d: want FINISHED eventually got rank=%d", id, last[id])
		}
	}
}

func TestCleanupCascades(t *testing.T) {
	db, svcs := newTestServices(t)
	ctx := context.Background()
	seedLeague(t, db, "PL", "Premier League")

	expired := seedMatch(t, db, "PL", testNow.AddDate(0, -7, 0), model.StatusFinished)
	seedGraded(t, db, expired.ID, model.CategoryMatchResult, true, testNow.AddDate(0, -7, 0))
	seedPrediction(t, db, expired.ID, model.CategoryCorners)

	recent := seedMatch(t, db, "PL", testNow.AddDate(0, -1, 0), model.StatusFinished)
	seedGraded(t, db, recent.ID, model.CategoryMatchResult, false, testNow.AddDate(0, -1, 0))
	oldPostponed := seedMatch(t, db, "PL", testNow.AddDate(0, -8, 0), model.StatusPostponed)

	for _, created := range []time.Time{testNow.AddDate(0, -4, 0), testNow.AddDate(0, 0, -5)} {
		s := &model.LeagueStats{
			LeagueID:    "PL",
			Season:      "2024",
			PeriodStart: created.AddDate(0, -1, 0),
			PeriodEnd:   created,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		if err := db.Create(s).Error; err != nil {
			t.Fatalf("seed stats: %v", err)
		}
	}

	report, err := svcs.Lifecycle.CleanupAt(ctx, testNow)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if report.DeletedMatches != 1 || report.DeletedStats != 1 {
		t.Fatalf("report: want matches=1 stats=1 got=%+v", report)
	}

	if err := db.First(&model.Match{}, expired.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expired match should be gone, err=%v", err)
	}
	var orphans int64
	db.Model(&model.Prediction{}).Where("match_id = ?", expired.ID).Count(&orphans)
	if orphans != 0 {
		t.Fatalf("predictions of expired match: want=0 got=%d", orphans)
	}
	db.Model(&model.Result{}).Where("match_id = ?", expired.ID).Count(&orphans)
	if orphans != 0 {
		t.Fatalf("results of expired match: want=0 got=%d", orphans)
	}

	for _, id := range []uint64{recent.ID, oldPostponed.ID} {
		if err := db.First(&model.Match{}, id).Error; err != nil {
			t.Fatalf("match %d should be kept: %v", id, err)
		}
	}
	if n := countRows(t, db, &model.Result{}); n != 1 {
		t.Fatalf("remaining results: want=1 got=%d", n)
	}
}

func TestCountCompleted(t *testing.T) {
	db, svcs := newTestServices(t)
	seedLeague(t, db, "PL", "Premier League")
	seedMatch(t, db, "PL", testNow.AddDate(0, 0, -10), model.StatusFinished)
	seedMatch(t, db, "PL", testNow.AddDate(0, 0, -3), model.StatusFinished)
	seedMatch(t, db, "PL", testNow.AddDate(0, 0, -20), model.StatusCancelled)

	report, err := svcs.Lifecycle.CountCompleted(context.Background(), 1)
	if err != nil {
		t.Fatalf("CountCompleted: %v", err)
	}
	if report.MatchesFound != 1 {
		t.Fatalf("matches found: want=1 got=%d", report.MatchesFound)
	}
	if !report.CutoffDate.Equal(testNow.AddDate(0, 0, -7)) {
		t.Fatalf("cutoff: got=%v", report.CutoffDate)
	}

	var ve *ValidationError
	if _, err := svcs.Lifecycle.CountCompleted(context.Background(), -1); !errors.As(err, &ve) {
		t.Fatalf("negative offset: want ValidationError got=%v", err)
	}
}
