// Package model provides the canonical game representation shared by the
// status resolver and the standings engine.
package model

import "time"

// Status is the canonical lifecycle state of a game.
type Status string

const (
	// StatusScheduled is a game that has not been played yet.
	StatusScheduled Status = "scheduled"
	// StatusCompleted is a game that has been played, with or without a result.
	StatusCompleted Status = "completed"
	// StatusFinal is a game whose result has been confirmed.
	StatusFinal Status = "final"
	// StatusCanceled is a game that will not be played.
	StatusCanceled Status = "canceled"
)

// IsDecided reports whether a game in this status may count towards standings.
func (s Status) IsDecided() bool {
	return s == StatusCompleted || s == StatusFinal
}

// Game is a single scheduled or played contest after normalization.
type Game struct {
	ID          string     `json:"id"`
	LeagueID    string     `json:"league_id"`
	DateTimeISO string     `json:"date_time_iso,omitempty"`
	StartTime   *time.Time `json:"-"`
	Location    string     `json:"location,omitempty"`

	HomeTeamID   string `json:"home_team_id,omitempty"`
	AwayTeamID   string `json:"away_team_id,omitempty"`
	HomeTeamName string `json:"home_team_name"`
	AwayTeamName string `json:"away_team_name"`

	// HomeScore and AwayScore are nil until a result that parses as a
	// non-negative integer is recorded.
	HomeScore *int `json:"home_score,omitempty"`
	AwayScore *int `json:"away_score,omitempty"`

	Status Status `json:"status"`
}

// HasScores reports whether both scores are present and valid.
func (g Game) HasScores() bool {
	return g.HomeScore != nil && g.AwayScore != nil
}

// IsEligible reports whether the game counts towards standings: the status is
// completed or final and both scores are valid.
func (g Game) IsEligible() bool {
	return g.Status.IsDecided() && g.HasScores()
}
