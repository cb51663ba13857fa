package model

// Category 预测类别枚举
type Category string

const (
	CategoryMatchResult Category = "MATCH_RESULT"
	CategoryHandicap    Category = "HANDICAP"
	CategoryOverUnder   Category = "OVER_UNDER"
	CategoryCorners     Category = "CORNERS"
)

// Categories 固定顺序的全部类别
var Categories = []Category{CategoryMatchResult, CategoryHandicap, CategoryOverUnder, CategoryCorners}

var categoryLabels = map[Category]string{
	CategoryMatchResult: "Match Result",
	CategoryHandicap:    "Handicap",
	CategoryOverUnder:   "Over/Under",
	CategoryCorners:     "Corners",
}

// Valid 是否为四种类别之一
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label 下拉框展示文案
func (c Category) Label() string {
	return categoryLabels[c]
}

// MatchStatus 比赛状态枚举
type MatchStatus string

const (
	StatusUpcoming  MatchStatus = "UPCOMING"
	StatusLive      MatchStatus = "LIVE"
	StatusFinished  MatchStatus = "FINISHED"
	StatusPostponed MatchStatus = "POSTPONED"
	StatusCancelled MatchStatus = "CANCELLED"
)

// MatchStatuses 固定顺序的全部状态
var MatchStatuses = []MatchStatus{StatusUpcoming, StatusLive, StatusFinished, StatusPostponed, StatusCancelled}

var statusLabels = map[MatchStatus]string{
	StatusUpcoming:  "Upcoming",
	StatusLive:      "Live",
	StatusFinished:  "Finished",
	StatusPostponed: "Postponed",
	StatusCancelled: "Cancelled",
}

// Valid 是否为合法状态
func (s MatchStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label 下拉框展示文案
func (s MatchStatus) Label() string {
	return statusLabels[s]
}
