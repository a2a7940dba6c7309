package engine

import (
	"cmp"
	"slices"
	"strings"

	"github.com/leaguedesk/standings/internal/standings/model"
)

// HeadToHeadFunc compares two teams by their direct meetings. A negative
// result ranks teamA first, a positive one teamB, and 0 makes no decision.
type HeadToHeadFunc func(teamA, teamB string) int

// Rank orders entries. Teams that have played come first, ordered by
//
//	win percentage (desc), losses (asc), head-to-head, point differential
//	(desc), points against (asc), points for (desc), team name (asc)
//
// followed by teams without games in case-insensitive alphabetical order.
//
// The head-to-head step only looks at the two teams being compared, so the
// comparator is not transitive across three or more teams (A beats B, B beats
// C, C beats A). The sort is stable, so for a given input order the output is
// still deterministic.
func Rank(entries []Entry, headToHead HeadToHeadFunc) []model.StandingRow {
	played := make([]Entry, 0, len(entries))
	unplayed := make([]Entry, 0)
	for _, e := range entries {
		if e.Row.GamesPlayed > 0 {
			played = append(played, e)
		} else {
			unplayed = append(unplayed, e)
		}
	}

	slices.SortStableFunc(played, func(a, b Entry) int {
		return comparePlayed(a, b, headToHead)
	})
	slices.SortStableFunc(unplayed, compareUnplayed)

	rows := make([]model.StandingRow, 0, len(entries))
	for _, e := range played {
		rows = append(rows, e.Row)
	}
	for _, e := range unplayed {
		rows = append(rows, e.Row)
	}
	return rows
}

func comparePlayed(a, b Entry, headToHead HeadToHeadFunc) int {
	if c := cmp.Compare(b.Row.WinPercentage, a.Row.WinPercentage); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Row.Losses, b.Row.Losses); c != 0 {
		return c
	}
	if headToHead != nil {
		if c := headToHead(a.Key, b.Key); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(b.Row.PointDifferential(), a.Row.PointDifferential()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Row.PointsAgainst, b.Row.PointsAgainst); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Row.PointsFor, a.Row.PointsFor); c != 0 {
		return c
	}
	if c := strings.Compare(a.Row.TeamName, b.Row.TeamName); c != 0 {
		return c
	}
	return strings.Compare(a.Key, b.Key)
}

func compareUnplayed(a, b Entry) int {
	if c := strings.Compare(strings.ToLower(a.Row.TeamName), strings.ToLower(b.Row.TeamName)); c != 0 {
		return c
	}
	if c := strings.Compare(a.Row.TeamName, b.Row.TeamName); c != 0 {
		return c
	}
	return strings.Compare(a.Key, b.Key)
}
