package db

import (
	"context"

	"github.com/tvannaman2000/PyNFL/model"
)

type DB interface {
	AddLeague(ctx context.Context, l *model.League) error
	GetLeague(ctx context.Context, id int32) (*model.League, error)

	AddConference(ctx context.Context, c *model.Conference) error
	// Conferences are returned in id order; the first conference listed hosts
	// the championship game.
	ListConferences(ctx context.Context, leagueID int32) ([]model.Conference, error)
	AddDivision(ctx context.Context, d *model.Division) error
	ListDivisions(ctx context.Context, conferenceID int32) ([]model.Division, error)
	AddTeam(ctx context.Context, t *model.Team) error
	ListTeams(ctx context.Context, leagueID int32) ([]model.Team, error)

	// InsertGames writes all games in a single transaction; either the whole
	// round/schedule is committed or nothing is.
	InsertGames(ctx context.Context, games []model.Game) error
	ListGames(ctx context.Context, leagueID int32, season int, gameType model.GameType) ([]model.Game, error)
	// RecordGameResult is the hook the stats processor uses to complete a game.
	RecordGameResult(ctx context.Context, id int32, homeScore, awayScore int) error
	CountIncompleteRegularSeason(ctx context.Context, leagueID int32, season int) (int, error)
	ClearPreseasonGames(ctx context.Context, leagueID int32, season int) error

	// SavePlayoffSeeds clears any existing seeds for the season and inserts
	// the new set in one transaction.
	SavePlayoffSeeds(ctx context.Context, leagueID int32, season int, seeds []model.PlayoffSeed) error
	GetPlayoffSeeds(ctx context.Context, leagueID int32, season int, conferenceID int32) ([]model.PlayoffSeed, error)
	SeedsExist(ctx context.Context, leagueID int32, season int) (bool, error)
	// ClearPlayoffs removes all playoff games and the locked seeds for the
	// season in one transaction.
	ClearPlayoffs(ctx context.Context, leagueID int32, season int) error
}
