package service

import (
	"io"
	"testing"
	"time"

	"FootballPredict/internal/config"
	"FootballPredict/internal/database"
	"FootballPredict/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testNow 所有用例共用的固定时刻
var testNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// 内存库每个连接各自独立
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestServices 组装服务并把所有时钟固定到 testNow
func newTestServices(t *testing.T) (*gorm.DB, *Services) {
	t.Helper()
	db := newTestDB(t)
	svcs := NewServices(db, &config.Config{}, quietLogger())
	clock := func() time.Time { return testNow }
	svcs.Matches.now = clock
	svcs.Accuracy.now = clock
	svcs.Results.now = clock
	svcs.Lifecycle.now = clock
	return db, svcs
}

func seedLeague(t *testing.T, db *gorm.DB, id, name string) *model.League {
	t.Helper()
	l := &model.League{ID: id, Name: name, Country: "England", Season: "2023-24", IsActive: true}
	if err := db.Create(l).Error; err != nil {
		t.Fatalf("seed league %s: %v", id, err)
	}
	return l
}

func seedMatch(t *testing.T, db *gorm.DB, leagueID string, kickoff time.Time, status model.MatchStatus) *model.Match {
	t.Helper()
	m := &model.Match{
		LeagueID:  leagueID,
		HomeTeam:  "Arsenal",
		AwayTeam:  "Chelsea",
		MatchDate: kickoff,
		MatchTime: kickoff.Format("15:04"),
		Status:    status,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed match: %v", err)
	}
	return m
}

func seedPrediction(t *testing.T, db *gorm.DB, matchID uint64, c model.Category) *model.Prediction {
	t.Helper()
	p := &model.Prediction{MatchID: matchID, Category: c, Prediction: "Home Win", Confidence: 72.5, ModelVersion: "v2"}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed prediction: %v", err)
	}
	return p
}

// seedGraded 写入一条预测与其判定结果，判定时间为 at
func seedGraded(t *testing.T, db *gorm.DB, matchID uint64, c model.Category, correct bool, at time.Time) {
	t.Helper()
	p := seedPrediction(t, db, matchID, c)
	r := &model.Result{
		MatchID:      matchID,
		PredictionID: p.ID,
		Category:     c,
		IsCorrect:    correct,
		UpdatedBy:    "seed",
		CreatedAt:    at,
		UpdatedAt:    at,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("seed result: %v", err)
	}
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func boolPtr(b bool) *bool { return &b }
