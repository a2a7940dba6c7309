// Package engine derives league standings from canonical games.
//
// Aggregation is keyed by team id. Games that only carry display names are
// matched to the roster by name, and teams that appear in games but not in
// the roster are added under a name-derived key so a stale roster does not
// lose results.
package engine

import (
	"strings"

	gameModel "github.com/leaguedesk/standings/internal/game/model"
	"github.com/leaguedesk/standings/internal/standings/model"
)

// Skip reasons for games that are decided but cannot be counted.
const (
	SkipMissingScore = "missing_score"
	SkipUnknownTeam  = "unknown_team"
	SkipSameTeam     = "same_team"
)

const discoveredKeyPrefix = "name:"

// Entry is a standings row together with the key it was aggregated under.
type Entry struct {
	Key string
	Row model.StandingRow
}

// SkippedGame records a decided game that did not contribute to standings.
type SkippedGame struct {
	GameID string
	Reason string
}

// Aggregation holds the folded totals of one run.
type Aggregation struct {
	entries map[string]*Entry
	order   []string
	byName  map[string]string
	pairs   map[pairKey]*pairRecord

	Counted int
	Skipped []SkippedGame
}

type pairKey struct {
	lo, hi string
}

type pairRecord struct {
	games int
	wins  map[string]int
}

func newPairKey(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Aggregate folds eligible games into per-team totals. Every roster team gets
// an entry, as does every team named by any game (eligible or not).
func Aggregate(teams []model.Team, games []gameModel.Game) *Aggregation {
	agg := &Aggregation{
		entries: make(map[string]*Entry, len(teams)),
		byName:  make(map[string]string, len(teams)),
		pairs:   make(map[pairKey]*pairRecord),
	}

	for _, team := range teams {
		name := strings.TrimSpace(team.Name)
		key := strings.TrimSpace(team.ID)
		if key == "" {
			key = discoveredKeyPrefix + name
		}
		agg.seed(key, key, name)
		if _, taken := agg.byName[name]; !taken && name != "" {
			agg.byName[name] = key
		}
	}

	for _, g := range games {
		agg.discover(g.HomeTeamID, g.HomeTeamName)
		agg.discover(g.AwayTeamID, g.AwayTeamName)
	}

	for _, g := range games {
		if !g.Status.IsDecided() {
			continue
		}
		if !g.HasScores() {
			agg.skip(g.ID, SkipMissingScore)
			continue
		}
		homeKey, homeOK := agg.keyFor(g.HomeTeamID, g.HomeTeamName)
		awayKey, awayOK := agg.keyFor(g.AwayTeamID, g.AwayTeamName)
		if !homeOK || !awayOK {
			agg.skip(g.ID, SkipUnknownTeam)
			continue
		}
		if homeKey == awayKey {
			agg.skip(g.ID, SkipSameTeam)
			continue
		}
		agg.fold(homeKey, awayKey, *g.HomeScore, *g.AwayScore)
	}

	for _, key := range agg.order {
		row := &agg.entries[key].Row
		row.WinPercentage = WinPercentage(row.Wins, row.Losses)
	}

	return agg
}

// WinPercentage returns wins / (wins + losses), or 0 when no game was won or lost.
func WinPercentage(wins, losses int) float64 {
	decided := wins + losses
	if decided <= 0 {
		return 0
	}
	return float64(wins) / float64(decided)
}

// Entries returns all entries in seeding order: roster first, then teams
// discovered from games in the order they were seen.
func (a *Aggregation) Entries() []Entry {
	out := make([]Entry, 0, len(a.order))
	for _, key := range a.order {
		out = append(out, *a.entries[key])
	}
	return out
}

// Rows returns the unordered rows keyed by aggregation key.
func (a *Aggregation) Rows() map[string]model.StandingRow {
	out := make(map[string]model.StandingRow, len(a.entries))
	for key, entry := range a.entries {
		out[key] = entry.Row
	}
	return out
}

// HeadToHead compares two teams using only the eligible games between them.
// It returns a negative number when teamA won more of those games, a positive
// number when teamB did, and 0 when they never met or split the wins.
func (a *Aggregation) HeadToHead(teamA, teamB string) int {
	record, ok := a.pairs[newPairKey(teamA, teamB)]
	if !ok || record.games == 0 {
		return 0
	}
	return record.wins[teamB] - record.wins[teamA]
}

func (a *Aggregation) seed(key, id, name string) {
	if _, exists := a.entries[key]; exists {
		return
	}
	if strings.HasPrefix(id, discoveredKeyPrefix) {
		id = ""
	}
	a.entries[key] = &Entry{Key: key, Row: model.StandingRow{TeamID: id, TeamName: name}}
	a.order = append(a.order, key)
}

func (a *Aggregation) discover(id, name string) {
	id, name = strings.TrimSpace(id), strings.TrimSpace(name)
	if _, ok := a.keyFor(id, name); ok {
		return
	}
	switch {
	case id != "":
		if name == "" {
			name = id
		}
		a.seed(id, id, name)
		if _, taken := a.byName[name]; !taken {
			a.byName[name] = id
		}
	case name != "":
		key := discoveredKeyPrefix + name
		a.seed(key, key, name)
		a.byName[name] = key
	}
}

// keyFor resolves a game side to an aggregation key: by id when the id is
// known, otherwise by display name.
func (a *Aggregation) keyFor(id, name string) (string, bool) {
	id, name = strings.TrimSpace(id), strings.TrimSpace(name)
	if id != "" {
		if _, ok := a.entries[id]; ok {
			return id, true
		}
	}
	if name != "" {
		if key, ok := a.byName[name]; ok {
			return key, true
		}
	}
	return "", false
}

func (a *Aggregation) fold(homeKey, awayKey string, homeScore, awayScore int) {
	home := &a.entries[homeKey].Row
	away := &a.entries[awayKey].Row

	home.GamesPlayed++
	away.GamesPlayed++
	home.PointsFor += homeScore
	home.PointsAgainst += awayScore
	away.PointsFor += awayScore
	away.PointsAgainst += homeScore

	pk := newPairKey(homeKey, awayKey)
	record, ok := a.pairs[pk]
	if !ok {
		record = &pairRecord{wins: make(map[string]int, 2)}
		a.pairs[pk] = record
	}
	record.games++

	switch {
	case homeScore > awayScore:
		home.Wins++
		away.Losses++
		record.wins[homeKey]++
	case awayScore > homeScore:
		away.Wins++
		home.Losses++
		record.wins[awayKey]++
	}
	// Equal scores count as played for both sides but as neither a win nor a loss.

	a.Counted++
}

func (a *Aggregation) skip(gameID, reason string) {
	a.Skipped = append(a.Skipped, SkippedGame{GameID: gameID, Reason: reason})
}
