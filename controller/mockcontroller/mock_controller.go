package mockcontroller

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tvannaman2000/PyNFL/model"
)

type C struct {
	mock.Mock
}

func (c *C) DivisionStandings(ctx context.Context, leagueID int32, season int) ([]model.TeamRecord, error) {
	args := c.Called(ctx, leagueID, season)

	var res []model.TeamRecord
	if args.Get(0) != nil {
		res = args.Get(0).([]model.TeamRecord)
	}
	return res, args.Error(1)
}

func (c *C) PlayoffPicture(ctx context.Context, leagueID int32, season int) ([]model.PlayoffSeed, error) {
	args := c.Called(ctx, leagueID, season)

	var res []model.PlayoffSeed
	if args.Get(0) != nil {
		res = args.Get(0).([]model.PlayoffSeed)
	}
	return res, args.Error(1)
}

func (c *C) GenerateWildCardRound(ctx context.Context, leagueID int32, season int) ([]model.Game, error) {
	return c.gameResult(c.Called(ctx, leagueID, season))
}

func (c *C) GenerateDivisionalRound(ctx context.Context, leagueID int32, season int) ([]model.Game, error) {
	return c.gameResult(c.Called(ctx, leagueID, season))
}

func (c *C) GenerateConferenceChampionships(ctx context.Context, leagueID int32, season int) ([]model.Game, error) {
	return c.gameResult(c.Called(ctx, leagueID, season))
}

func (c *C) GenerateChampionship(ctx context.Context, leagueID int32, season int) ([]model.Game, error) {
	return c.gameResult(c.Called(ctx, leagueID, season))
}

func (c *C) ClearPlayoffs(ctx context.Context, leagueID int32, season int) error {
	args := c.Called(ctx, leagueID, season)
	return args.Error(0)
}

func (c *C) GeneratePreseason(ctx context.Context, leagueID int32, season int) ([]model.Game, error) {
	return c.gameResult(c.Called(ctx, leagueID, season))
}

func (c *C) ClearPreseason(ctx context.Context, leagueID int32, season int) error {
	args := c.Called(ctx, leagueID, season)
	return args.Error(0)
}

func (c *C) gameResult(args mock.Arguments) ([]model.Game, error) {
	var res []model.Game
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Game)
	}
	return res, args.Error(1)
}
