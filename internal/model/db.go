package model

import (
	"time"

	"gorm.io/datatypes"
)

// League 联赛（id 为短代码，如 PL / PD）
type League struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(16)" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Country   string    `gorm:"column:country;type:varchar(64)" json:"country"`
	Season    string    `gorm:"column:season;type:varchar(16)" json:"season"`
	IsActive  bool      `gorm:"column:is_active;type:boolean;not null" json:"isActive"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// Match 比赛。MatchDate 为开赛时刻，MatchTime 仅用于展示（HH:MM）
type Match struct {
	ID              uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	LeagueID        string      `gorm:"column:league_id;type:varchar(16);not null;index" json:"leagueId"`
	HomeTeam        string      `gorm:"column:home_team;type:varchar(128);not null" json:"homeTeam"`
	AwayTeam        string      `gorm:"column:away_team;type:varchar(128);not null" json:"awayTeam"`
	MatchDate       time.Time   `gorm:"column:match_date;type:timestamp;not null;index" json:"matchDate"`
	MatchTime       string      `gorm:"column:match_time;type:varchar(8)" json:"matchTime"`
	Status          MatchStatus `gorm:"column:status;type:varchar(16);not null;default:UPCOMING;index" json:"status"`
	HomeScore       *int        `gorm:"column:home_score" json:"homeScore"`
	AwayScore       *int        `gorm:"column:away_score" json:"awayScore"`
	StatusChangedAt *time.Time  `gorm:"column:status_changed_at;type:timestamp" json:"statusChangedAt,omitempty"` // 最近一次状态推进时间
	CreatedAt       time.Time   `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	League      *League      `gorm:"foreignKey:LeagueID;constraint:OnDelete:CASCADE" json:"league,omitempty"`
	Predictions []Prediction `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE" json:"predictions,omitempty"`
	Results     []Result     `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE" json:"results,omitempty"`
}

// Prediction 单场比赛某一类别的预测
type Prediction struct {
	ID           uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MatchID      uint64    `gorm:"column:match_id;not null;index:idx_prediction_match_category" json:"matchId"`
	Category     Category  `gorm:"column:category;type:varchar(16);not null;index:idx_prediction_match_category" json:"category"`
	Prediction   string    `gorm:"column:prediction;type:varchar(128);not null" json:"prediction"`
	Confidence   float64   `gorm:"column:confidence;type:numeric(5,2);not null" json:"confidence"` // 0-100
	ModelVersion string    `gorm:"column:model_version;type:varchar(32)" json:"modelVersion"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`

	Match   *Match   `gorm:"foreignKey:MatchID" json:"match,omitempty"`
	Results []Result `gorm:"foreignKey:PredictionID;constraint:OnDelete:CASCADE" json:"results,omitempty"`
}

// Result 预测判定结果，(match_id, category) 唯一，重复提交即覆盖
type Result struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MatchID       uint64    `gorm:"column:match_id;not null;uniqueIndex:uq_result_match_category" json:"matchId"`
	PredictionID  uint64    `gorm:"column:prediction_id;not null;index" json:"predictionId"`
	Category      Category  `gorm:"column:category;type:varchar(16);not null;uniqueIndex:uq_result_match_category" json:"category"`
	IsCorrect     bool      `gorm:"column:is_correct;type:boolean;not null" json:"isCorrect"`
	ActualOutcome string    `gorm:"column:actual_outcome;type:varchar(256)" json:"actualOutcome"`
	UpdatedBy     string    `gorm:"column:updated_by;type:varchar(64)" json:"updatedBy"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// LeagueStats 联赛准确率快照，可随时由 results 重新计算，不是事实来源
type LeagueStats struct {
	ID                 uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	LeagueID           string         `gorm:"column:league_id;type:varchar(16);not null;uniqueIndex:uq_league_stats_window" json:"leagueId"`
	Season             string         `gorm:"column:season;type:varchar(16);not null;uniqueIndex:uq_league_stats_window" json:"season"`
	PeriodStart        time.Time      `gorm:"column:period_start;type:timestamp;not null;uniqueIndex:uq_league_stats_window" json:"periodStart"`
	PeriodEnd          time.Time      `gorm:"column:period_end;type:timestamp;not null" json:"periodEnd"`
	MatchResultAcc     float64        `gorm:"column:match_result_acc;type:numeric(5,1);not null" json:"matchResultAcc"`
	HandicapAcc        float64        `gorm:"column:handicap_acc;type:numeric(5,1);not null" json:"handicapAcc"`
	OverUnderAcc       float64        `gorm:"column:over_under_acc;type:numeric(5,1);not null" json:"overUnderAcc"`
	CornersAcc         float64        `gorm:"column:corners_acc;type:numeric(5,1);not null" json:"cornersAcc"`
	TotalPredictions   int            `gorm:"column:total_predictions;not null" json:"totalPredictions"`
	CorrectPredictions int            `gorm:"column:correct_predictions;not null" json:"correctPredictions"`
	Breakdown          datatypes.JSON `gorm:"column:breakdown" json:"breakdown,omitempty"` // 各类别 correct/total 明细
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (League) TableName() string      { return "leagues" }
func (Match) TableName() string       { return "matches" }
func (Prediction) TableName() string  { return "predictions" }
func (Result) TableName() string      { return "results" }
func (LeagueStats) TableName() string { return "league_stats" }
