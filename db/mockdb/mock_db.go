package mockdb

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tvannaman2000/PyNFL/model"
)

type DB struct {
	mock.Mock
}

func (db *DB) AddLeague(ctx context.Context, l *model.League) error {
	args := db.Called(ctx, l)
	return args.Error(0)
}

func (db *DB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	args := db.Called(ctx, id)

	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func (db *DB) AddConference(ctx context.Context, c *model.Conference) error {
	args := db.Called(ctx, c)
	return args.Error(0)
}

func (db *DB) ListConferences(ctx context.Context, leagueID int32) ([]model.Conference, error) {
	args := db.Called(ctx, leagueID)

	var r []model.Conference
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Conference)
	}
	return r, args.Error(1)
}

func (db *DB) AddDivision(ctx context.Context, d *model.Division) error {
	args := db.Called(ctx, d)
	return args.Error(0)
}

func (db *DB) ListDivisions(ctx context.Context, conferenceID int32) ([]model.Division, error) {
	args := db.Called(ctx, conferenceID)

	var r []model.Division
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Division)
	}
	return r, args.Error(1)
}

func (db *DB) AddTeam(ctx context.Context, t *model.Team) error {
	args := db.Called(ctx, t)
	return args.Error(0)
}

func (db *DB) ListTeams(ctx context.Context, leagueID int32) ([]model.Team, error) {
	args := db.Called(ctx, leagueID)

	var r []model.Team
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Team)
	}
	return r, args.Error(1)
}

func (db *DB) InsertGames(ctx context.Context, games []model.Game) error {
	args := db.Called(ctx, games)
	return args.Error(0)
}

func (db *DB) ListGames(ctx context.Context, leagueID int32, season int, gameType model.GameType) ([]model.Game, error) {
	args := db.Called(ctx, leagueID, season, gameType)

	var r []model.Game
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Game)
	}
	return r, args.Error(1)
}

func (db *DB) RecordGameResult(ctx context.Context, id int32, homeScore, awayScore int) error {
	args := db.Called(ctx, id, homeScore, awayScore)
	return args.Error(0)
}

func (db *DB) CountIncompleteRegularSeason(ctx context.Context, leagueID int32, season int) (int, error) {
	args := db.Called(ctx, leagueID, season)
	return args.Int(0), args.Error(1)
}

func (db *DB) ClearPreseasonGames(ctx context.Context, leagueID int32, season int) error {
	args := db.Called(ctx, leagueID, season)
	return args.Error(0)
}

func (db *DB) SavePlayoffSeeds(ctx context.Context, leagueID int32, season int, seeds []model.PlayoffSeed) error {
	args := db.Called(ctx, leagueID, season, seeds)
	return args.Error(0)
}

func (db *DB) GetPlayoffSeeds(ctx context.Context, leagueID int32, season int, conferenceID int32) ([]model.PlayoffSeed, error) {
	args := db.Called(ctx, leagueID, season, conferenceID)

	var r []model.PlayoffSeed
	if args.Get(0) != nil {
		r = args.Get(0).([]model.PlayoffSeed)
	}
	return r, args.Error(1)
}

func (db *DB) SeedsExist(ctx context.Context, leagueID int32, season int) (bool, error) {
	args := db.Called(ctx, leagueID, season)
	return args.Bool(0), args.Error(1)
}

func (db *DB) ClearPlayoffs(ctx context.Context, leagueID int32, season int) error {
	args := db.Called(ctx, leagueID, season)
	return args.Error(0)
}
