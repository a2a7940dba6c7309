// Package model provides domain models and DTOs for the league module.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Team is a roster entry of a league. Matches the teams table schema.
type Team struct {
	LeagueID  string    `gorm:"primaryKey;column:league_id;type:varchar(64)" json:"league_id"`
	TeamID    string    `gorm:"primaryKey;column:team_id;type:varchar(64)" json:"team_id"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (t *Team) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return nil
}
