package engine

import (
	"time"

	gameModel "github.com/leaguedesk/standings/internal/game/model"
	"github.com/leaguedesk/standings/internal/game/status"
	"github.com/leaguedesk/standings/internal/standings/model"
)

// Result is the outcome of one standings computation.
type Result struct {
	Rows    []model.StandingRow
	Games   []gameModel.Game
	Counted int
	Skipped []SkippedGame
}

// Engine resolves, aggregates and ranks. It holds no state between runs.
type Engine struct {
	resolver *status.Resolver
}

// New creates an engine around the given resolver.
func New(resolver *status.Resolver) *Engine {
	if resolver == nil {
		resolver = status.New(status.DefaultGracePeriod)
	}
	return &Engine{resolver: resolver}
}

// Compute runs the resolver over every raw game, folds the eligible ones into
// per-team totals and returns the ranked rows. names maps team ids to display
// names for records that reference teams only by id; roster names are added
// to it automatically.
func (e *Engine) Compute(teams []model.Team, raws []gameModel.RawGame, now time.Time, names map[string]string) Result {
	lookup := make(map[string]string, len(teams)+len(names))
	for id, name := range names {
		lookup[id] = name
	}
	for _, team := range teams {
		if team.ID != "" && team.Name != "" {
			lookup[team.ID] = team.Name
		}
	}

	games := e.resolver.ResolveAll(raws, now, lookup)
	return e.Standings(teams, games)
}

// Standings aggregates and ranks already canonical games.
func (e *Engine) Standings(teams []model.Team, games []gameModel.Game) Result {
	agg := Aggregate(teams, games)
	return Result{
		Rows:    Rank(agg.Entries(), agg.HeadToHead),
		Games:   games,
		Counted: agg.Counted,
		Skipped: agg.Skipped,
	}
}
