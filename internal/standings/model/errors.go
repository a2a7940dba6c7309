package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLeagueID indicates that the league id is empty.
	ErrInvalidLeagueID = errors.New("invalid league id")
	// ErrStandingsNotFound indicates that no standings have been persisted yet.
	ErrStandingsNotFound = errors.New("standings not found")
	// ErrStandingsUnavailable indicates that the roster or game list could not
	// be read, so standings could not be calculated.
	ErrStandingsUnavailable = errors.New("standings could not be calculated")
	// ErrPersistFailed indicates that at least one standings key was not written.
	ErrPersistFailed = errors.New("standings could not be persisted")
)

// PersistError reports which standings keys failed to be written. Redis
// transactions do not roll back, so a failure may leave other keys updated.
type PersistError struct {
	FailedKeys []string
	Err        error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: keys [%s]: %v", ErrPersistFailed, strings.Join(e.FailedKeys, ", "), e.Err)
}

func (e *PersistError) Unwrap() []error {
	return []error{ErrPersistFailed, e.Err}
}
