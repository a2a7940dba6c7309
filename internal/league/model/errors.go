package model

import "errors"

var (
	// ErrInvalidLeagueID indicates that the league id is empty.
	ErrInvalidLeagueID = errors.New("invalid league id")
	// ErrTeamExists indicates that the team id or name is already on the roster.
	ErrTeamExists = errors.New("team already exists")
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeamName indicates that the provided team name is empty.
	ErrInvalidTeamName = errors.New("invalid team name")
	// ErrGameExists indicates that a game with the same id is already stored.
	ErrGameExists = errors.New("game already exists")
	// ErrGameNotFound indicates that the requested game does not exist.
	ErrGameNotFound = errors.New("game not found")
	// ErrInvalidGame indicates that a game is missing a home or away team.
	ErrInvalidGame = errors.New("game must name a home and an away team")
	// ErrInvalidScore indicates a negative score.
	ErrInvalidScore = errors.New("scores must be non-negative integers")
)
