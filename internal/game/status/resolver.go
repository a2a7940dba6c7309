// Package status normalizes raw game records into canonical games with a
// derived lifecycle status.
package status

import (
	"strings"
	"time"

	"github.com/google/uuid"

	gameModel "github.com/leaguedesk/standings/internal/game/model"
)

// DefaultGracePeriod is how long after its start a scheduled game without a
// result is presumed to have been played.
const DefaultGracePeriod = 120 * time.Minute

// Field aliases found in stored records, in lookup order.
var (
	idAliases       = []string{"id", "gameId", "game_id", "_id"}
	leagueAliases   = []string{"leagueId", "league_id", "league"}
	dateTimeAliases = []string{"dateTimeISO", "dateTime", "datetime", "date_time", "startTime", "start_time", "start", "date"}
	locationAliases = []string{"location", "venue", "court", "field"}
	statusAliases   = []string{"status", "state", "gameStatus"}

	homeNameAliases = []string{"homeTeamName", "home_team_name", "homeTeam", "home_team"}
	awayNameAliases = []string{"awayTeamName", "away_team_name", "awayTeam", "away_team"}
	homeIDAliases   = []string{"homeTeamId", "home_team_id", "homeId"}
	awayIDAliases   = []string{"awayTeamId", "away_team_id", "awayId"}

	nestedScoreAliases = []string{"score", "scores", "result"}
	homeScoreAliases   = []string{"homeScore", "home_score", "scoreHome"}
	awayScoreAliases   = []string{"awayScore", "away_score", "scoreAway"}
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var gameIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://leaguedesk.app/games"))

// Resolver maps raw game records to canonical games.
type Resolver struct {
	gracePeriod time.Duration
}

// New creates a resolver. A non-positive grace period selects DefaultGracePeriod.
func New(gracePeriod time.Duration) *Resolver {
	if gracePeriod <= 0 {
		gracePeriod = DefaultGracePeriod
	}
	return &Resolver{gracePeriod: gracePeriod}
}

// GracePeriod returns the completion grace period in use.
func (r *Resolver) GracePeriod() time.Duration {
	return r.gracePeriod
}

// Resolve normalizes one record. It has no side effects: the result depends
// only on raw, now and names (team id to display name).
func (r *Resolver) Resolve(raw gameModel.RawGame, now time.Time, names map[string]string) gameModel.Game {
	g := gameModel.Game{
		LeagueID:    raw.String(leagueAliases...),
		DateTimeISO: raw.String(dateTimeAliases...),
		Location:    raw.String(locationAliases...),
		HomeTeamID:  raw.String(homeIDAliases...),
		AwayTeamID:  raw.String(awayIDAliases...),
	}
	g.HomeTeamName = teamName(raw.String(homeNameAliases...), g.HomeTeamID, names)
	g.AwayTeamName = teamName(raw.String(awayNameAliases...), g.AwayTeamID, names)

	g.ID = raw.String(idAliases...)
	if g.ID == "" {
		g.ID = DeriveID(g.LeagueID, g.DateTimeISO, g.HomeTeamName, g.AwayTeamName)
	}

	if start, ok := ParseDateTime(g.DateTimeISO); ok {
		g.StartTime = &start
	}

	homeRaw, awayRaw, hasResults := scores(raw)
	if home, ok := gameModel.ParseScore(homeRaw); ok && hasResults {
		g.HomeScore = &home
	}
	if away, ok := gameModel.ParseScore(awayRaw); ok && hasResults {
		g.AwayScore = &away
	}

	g.Status = Classify(raw.String(statusAliases...))
	if g.Status == gameModel.StatusScheduled && !hasResults && g.StartTime != nil &&
		now.Sub(*g.StartTime) >= r.gracePeriod {
		g.Status = gameModel.StatusCompleted
	}

	return g
}

// ResolveAll normalizes every record in order.
func (r *Resolver) ResolveAll(raws []gameModel.RawGame, now time.Time, names map[string]string) []gameModel.Game {
	games := make([]gameModel.Game, 0, len(raws))
	for _, raw := range raws {
		games = append(games, r.Resolve(raw, now, names))
	}
	return games
}

// Classify maps a free-form status string to a canonical status by
// case-insensitive substring match. Precedence: final, canceled, completed.
// "cancel" also accepts the "cancelled" spelling; "complete" alone is not
// enough, so "incomplete" stays scheduled.
func Classify(raw string) gameModel.Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return gameModel.StatusScheduled
	case strings.Contains(s, "final"):
		return gameModel.StatusFinal
	case strings.Contains(s, "cancel"):
		return gameModel.StatusCanceled
	case strings.Contains(s, "completed"):
		return gameModel.StatusCompleted
	default:
		return gameModel.StatusScheduled
	}
}

// ParseDateTime parses a stored start time. Values without a zone are UTC.
func ParseDateTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DeriveID builds a stable identifier for a game stored without one.
func DeriveID(leagueID, dateTimeISO, homeTeamName, awayTeamName string) string {
	key := strings.Join([]string{leagueID, dateTimeISO, homeTeamName, awayTeamName}, "|")
	return uuid.NewSHA1(gameIDNamespace, []byte(key)).String()
}

func teamName(name, id string, names map[string]string) string {
	if name != "" {
		return name
	}
	if id == "" {
		return ""
	}
	if resolved := strings.TrimSpace(names[id]); resolved != "" {
		return resolved
	}
	return id
}

// scores returns the home and away values and whether both were entered.
// A nested {home, away} object wins over flat fields when it is complete.
func scores(raw gameModel.RawGame) (any, any, bool) {
	if nested, ok := raw.Map(nestedScoreAliases...); ok {
		home, away := nested["home"], nested["away"]
		if gameModel.IsPresent(home) && gameModel.IsPresent(away) {
			return home, away, true
		}
	}
	home, homeOK := raw.First(homeScoreAliases...)
	away, awayOK := raw.First(awayScoreAliases...)
	if homeOK && awayOK {
		return home, away, true
	}
	return home, away, false
}
