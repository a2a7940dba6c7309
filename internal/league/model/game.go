package model

import (
	"time"

	"gorm.io/gorm"

	gameModel "github.com/leaguedesk/standings/internal/game/model"
)

// Game sources.
const (
	SourceManual = "manual"
	SourceImport = "import"
)

// Game is a stored game record. Status is kept exactly as entered; the
// canonical status is derived when the game is read.
type Game struct {
	GameID       string    `gorm:"primaryKey;column:game_id;type:varchar(64)"`
	LeagueID     string    `gorm:"column:league_id;type:varchar(64);not null;index"`
	DateTimeISO  *string   `gorm:"column:date_time_iso;type:varchar(64)"`
	Location     *string   `gorm:"column:location;type:varchar(255)"`
	HomeTeamID   *string   `gorm:"column:home_team_id;type:varchar(64)"`
	AwayTeamID   *string   `gorm:"column:away_team_id;type:varchar(64)"`
	HomeTeamName *string   `gorm:"column:home_team_name;type:varchar(255)"`
	AwayTeamName *string   `gorm:"column:away_team_name;type:varchar(255)"`
	HomeScore    *int      `gorm:"column:home_score"`
	AwayScore    *int      `gorm:"column:away_score"`
	Status       string    `gorm:"column:status;type:varchar(32);not null;default:scheduled"`
	Source       string    `gorm:"column:source;type:varchar(32);not null;default:manual"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"`
}

// TableName specifies the table name for GORM.
func (Game) TableName() string {
	return "games"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (g *Game) BeforeUpdate(tx *gorm.DB) error {
	g.UpdatedAt = time.Now()
	return nil
}

// Raw exposes the row in the shape the status resolver reads.
func (g Game) Raw() gameModel.RawGame {
	raw := gameModel.RawGame{
		"id":       g.GameID,
		"leagueId": g.LeagueID,
		"status":   g.Status,
	}
	setString(raw, "dateTimeISO", g.DateTimeISO)
	setString(raw, "location", g.Location)
	setString(raw, "homeTeamId", g.HomeTeamID)
	setString(raw, "awayTeamId", g.AwayTeamID)
	setString(raw, "homeTeamName", g.HomeTeamName)
	setString(raw, "awayTeamName", g.AwayTeamName)
	if g.HomeScore != nil {
		raw["homeScore"] = *g.HomeScore
	}
	if g.AwayScore != nil {
		raw["awayScore"] = *g.AwayScore
	}
	return raw
}

func setString(raw gameModel.RawGame, key string, value *string) {
	if value != nil && *value != "" {
		raw[key] = *value
	}
}
