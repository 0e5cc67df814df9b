package controller

import (
	"context"
	"errors"
	"math/rand"

	"github.com/itbasis/go-clock"
	"github.com/tvannaman2000/PyNFL/db"
	"github.com/tvannaman2000/PyNFL/model"
)

var (
	// ErrSeasonIncomplete means seed generation was requested while regular
	// season games are still unfinished. Seeds are never derived from a
	// partial season.
	ErrSeasonIncomplete = errors.New("regular season is not complete")

	// ErrSeedsNotFound means a later playoff round was requested before the
	// Wild Card round locked the seeds.
	ErrSeedsNotFound = errors.New("no playoff seeds found, generate the wild card round first")

	ErrNotEnoughTeams = errors.New("not enough teams for the configured playoff format")

	// ErrImpossibleSchedule means a division does not have enough
	// non-division opponents for the requested number of preseason weeks.
	ErrImpossibleSchedule = errors.New("preseason schedule is not possible with the current division layout")

	// ErrNoValidPairings means the preseason matchup search exhausted its
	// retry budget without finding a full legal pairing for some week.
	ErrNoValidPairings = errors.New("no valid preseason pairings found")
)

// C encapsulates the league business logic without worrying about any web layers
type C interface {
	// DivisionStandings returns every team's record, grouped by division and
	// ordered by the division tie-break rules within each group.
	DivisionStandings(ctx context.Context, leagueID int32, season int) ([]model.TeamRecord, error)
	// PlayoffPicture returns the locked seeds for each conference, in seed
	// order. Empty until the Wild Card round has been generated.
	PlayoffPicture(ctx context.Context, leagueID int32, season int) ([]model.PlayoffSeed, error)

	GenerateWildCardRound(ctx context.Context, leagueID int32, season int) ([]model.Game, error)
	GenerateDivisionalRound(ctx context.Context, leagueID int32, season int) ([]model.Game, error)
	GenerateConferenceChampionships(ctx context.Context, leagueID int32, season int) ([]model.Game, error)
	GenerateChampionship(ctx context.Context, leagueID int32, season int) ([]model.Game, error)
	// ClearPlayoffs removes all playoff games and the locked seeds for the season.
	ClearPlayoffs(ctx context.Context, leagueID int32, season int) error

	GeneratePreseason(ctx context.Context, leagueID int32, season int) ([]model.Game, error)
	ClearPreseason(ctx context.Context, leagueID int32, season int) error
}

// DefaultPreseasonAttempts is how many random re-shuffles the preseason
// matchup search tries per week before giving up. The retries are part of the
// search strategy, not fault tolerance; exhausting them is a hard failure.
const DefaultPreseasonAttempts = 100

type controller struct {
	clock clock.Clock
	db    db.DB

	rng               *rand.Rand
	preseasonAttempts int
}

func New(clock clock.Clock, db db.DB) (C, error) {
	c := &controller{
		clock:             clock,
		db:                db,
		rng:               rand.New(rand.NewSource(clock.Now().UnixNano())),
		preseasonAttempts: DefaultPreseasonAttempts,
	}
	return c, nil
}
