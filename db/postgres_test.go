package db_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/tvannaman2000/PyNFL/containers"
	"github.com/tvannaman2000/PyNFL/db"
	"github.com/tvannaman2000/PyNFL/model"
	"github.com/tvannaman2000/PyNFL/testutils"
)

var (
	// A test global db instance to use for all of the tests instead of setting up a new one each time.
	testDB db.DB

	// The league layout every test shares: 2 conferences, 2 divisions each,
	// 2 teams per division, ids 101-108.
	fixture *testutils.LeagueFixture

	// Tests isolate their games and seeds from each other by using a fresh
	// season number.
	seasonCtr = int32(2000)
)

func nextSeason() int {
	return int(atomic.AddInt32(&seasonCtr, 1))
}

// TestMain controls the main for the tests and allows for setup and shutdown of the tests
func TestMain(m *testing.M) {
	container := containers.NewDBContainer()

	clock := clock.New()

	defer func() {
		// Catch all panics to make sure the shutdown is successfully run
		if r := recover(); r != nil {
			if container != nil {
				container.Shutdown()
			}
			fmt.Println("panic")
		}
	}()

	var err error
	testDB, err = db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		fmt.Printf("error connecting to db: %v", err)
		os.Exit(-1)
	}

	fixture = testutils.NewLeagueFixture(2, 2, 2)
	if err := fixture.Insert(testDB); err != nil {
		fmt.Printf("error inserting league fixture: %v", err)
		container.Shutdown()
		os.Exit(-1)
	}

	code := m.Run()
	container.Shutdown()
	os.Exit(code)
}

func TestDB_leagueRoundTrip(t *testing.T) {
	ctx := context.Background()

	l, err := testDB.GetLeague(ctx, fixture.League.ID)
	assertFatalf(t, err == nil, "error loading league: %v", err)

	assertEquals(t, "ID", fixture.League.ID, l.ID)
	assertEquals(t, "Name", fixture.League.Name, l.Name)
	assertEquals(t, "PreseasonWeeks", fixture.League.PreseasonWeeks, l.PreseasonWeeks)
	assertEquals(t, "RegularSeasonWeeks", fixture.League.RegularSeasonWeeks, l.RegularSeasonWeeks)
	assertEquals(t, "PlayoffTeamsPerConf", fixture.League.PlayoffTeamsPerConf, l.PlayoffTeamsPerConf)
	assertEquals(t, "Active", fixture.League.Active, l.Active)

	_, err = testDB.GetLeague(ctx, 999)
	assertFatalf(t, err != nil, "expected an error for an unknown league")
	assertEquals(t, "error type", true, errors.Is(err, db.ErrLeagueNotFound))
}

func TestDB_leagueLayout(t *testing.T) {
	ctx := context.Background()

	confs, err := testDB.ListConferences(ctx, fixture.League.ID)
	assertFatalf(t, err == nil, "error listing conferences: %v", err)
	assertEquals(t, "conference count", 2, len(confs))
	// Conference order decides championship home field, so it must be stable.
	assertEquals(t, "first conference", int32(1), confs[0].ID)
	assertEquals(t, "second conference", int32(2), confs[1].ID)
	assertEquals(t, "abbreviation", "C1", confs[0].Abbreviation)

	divs, err := testDB.ListDivisions(ctx, confs[0].ID)
	assertFatalf(t, err == nil, "error listing divisions: %v", err)
	assertEquals(t, "division count", 2, len(divs))
	assertEquals(t, "first division", int32(1), divs[0].ID)

	teams, err := testDB.ListTeams(ctx, fixture.League.ID)
	assertFatalf(t, err == nil, "error listing teams: %v", err)
	assertEquals(t, "team count", 8, len(teams))
	for _, team := range teams {
		assertEquals(t, "team league", fixture.League.ID, team.LeagueID)
	}
}

func TestDB_gamesLifecycle(t *testing.T) {
	ctx := context.Background()
	season := nextSeason()

	games := []model.Game{
		testutils.CompletedGame(fixture.League.ID, season, 1, 101, 103, 24, 10),
		{
			LeagueID: fixture.League.ID, Season: season, Week: 2,
			Type: model.GAME_REGULAR, Status: model.STATUS_SCHEDULED,
			HomeTeamID: 102, AwayTeamID: 104, DayOfWeek: "Sunday",
			Notes: "week 2 opener",
		},
	}
	err := testDB.InsertGames(ctx, games)
	assertFatalf(t, err == nil, "error inserting games: %v", err)

	res, err := testDB.ListGames(ctx, fixture.League.ID, season, model.GAME_REGULAR)
	assertFatalf(t, err == nil, "error listing games: %v", err)
	assertFatalf(t, len(res) == 2, "expected 2 games, got %d", len(res))

	// Games come back in week order with every field round-tripped.
	assertEquals(t, "Week", 1, res[0].Week)
	assertEquals(t, "HomeTeamID", int32(101), res[0].HomeTeamID)
	assertEquals(t, "AwayTeamID", int32(103), res[0].AwayTeamID)
	assertEquals(t, "HomeScore", 24, res[0].HomeScore)
	assertEquals(t, "AwayScore", 10, res[0].AwayScore)
	assertEquals(t, "Status", model.STATUS_COMPLETED, res[0].Status)
	assertEquals(t, "DayOfWeek", "Sunday", res[1].DayOfWeek)
	assertEquals(t, "Notes", "week 2 opener", res[1].Notes)
	assertTrue(t, "ID assigned", res[0].ID > 0)
	assertTrue(t, "Created set", !res[0].Created.IsZero())

	count, err := testDB.CountIncompleteRegularSeason(ctx, fixture.League.ID, season)
	assertFatalf(t, err == nil, "error counting incomplete games: %v", err)
	assertEquals(t, "incomplete count", 1, count)

	// Completing the open game empties the incomplete count.
	err = testDB.RecordGameResult(ctx, res[1].ID, 17, 20)
	assertFatalf(t, err == nil, "error recording game result: %v", err)

	res, err = testDB.ListGames(ctx, fixture.League.ID, season, model.GAME_REGULAR)
	assertFatalf(t, err == nil, "error listing games after result: %v", err)
	assertEquals(t, "Status", model.STATUS_COMPLETED, res[1].Status)
	assertEquals(t, "HomeScore", 17, res[1].HomeScore)
	assertEquals(t, "AwayScore", 20, res[1].AwayScore)

	count, err = testDB.CountIncompleteRegularSeason(ctx, fixture.League.ID, season)
	assertFatalf(t, err == nil, "error counting incomplete games: %v", err)
	assertEquals(t, "incomplete count", 0, count)
}

func TestDB_insertGamesIsAtomic(t *testing.T) {
	ctx := context.Background()
	season := nextSeason()

	games := []model.Game{
		testutils.CompletedGame(fixture.League.ID, season, 1, 101, 103, 24, 10),
		// Unknown team id, fails the foreign key check.
		testutils.CompletedGame(fixture.League.ID, season, 1, 999, 104, 3, 0),
	}
	err := testDB.InsertGames(ctx, games)
	assertFatalf(t, err != nil, "expected a foreign key error")

	res, err := testDB.ListGames(ctx, fixture.League.ID, season, model.GAME_REGULAR)
	assertFatalf(t, err == nil, "error listing games: %v", err)
	assertEquals(t, "game count after rollback", 0, len(res))
}

func TestDB_clearPreseason(t *testing.T) {
	ctx := context.Background()
	season := nextSeason()

	games := []model.Game{
		{
			LeagueID: fixture.League.ID, Season: season, Week: 1,
			Type: model.GAME_PRESEASON, Status: model.STATUS_SCHEDULED,
			HomeTeamID: 101, AwayTeamID: 103,
		},
		{
			LeagueID: fixture.League.ID, Season: season, Week: 1,
			Type: model.GAME_PRESEASON, Status: model.STATUS_SCHEDULED,
			HomeTeamID: 102, AwayTeamID: 104,
		},
		testutils.CompletedGame(fixture.League.ID, season, 1, 101, 103, 20, 13),
	}
	err := testDB.InsertGames(ctx, games)
	assertFatalf(t, err == nil, "error inserting games: %v", err)

	err = testDB.ClearPreseasonGames(ctx, fixture.League.ID, season)
	assertFatalf(t, err == nil, "error clearing preseason: %v", err)

	pre, err := testDB.ListGames(ctx, fixture.League.ID, season, model.GAME_PRESEASON)
	assertFatalf(t, err == nil, "error listing preseason games: %v", err)
	assertEquals(t, "preseason games left", 0, len(pre))

	// The regular season game is untouched.
	reg, err := testDB.ListGames(ctx, fixture.League.ID, season, model.GAME_REGULAR)
	assertFatalf(t, err == nil, "error listing regular games: %v", err)
	assertEquals(t, "regular games left", 1, len(reg))
}

func TestDB_playoffSeeds(t *testing.T) {
	ctx := context.Background()
	season := nextSeason()

	exist, err := testDB.SeedsExist(ctx, fixture.League.ID, season)
	assertFatalf(t, err == nil, "error checking for seeds: %v", err)
	assertEquals(t, "seeds exist before save", false, exist)

	seeds := []model.PlayoffSeed{
		testSeed(season, 1, 1, 101, 1, model.SEED_DIVISION_WINNER),
		testSeed(season, 1, 2, 103, 2, model.SEED_WILD_CARD),
		testSeed(season, 2, 1, 105, 3, model.SEED_DIVISION_WINNER),
		testSeed(season, 2, 2, 107, 4, model.SEED_WILD_CARD),
	}
	err = testDB.SavePlayoffSeeds(ctx, fixture.League.ID, season, seeds)
	assertFatalf(t, err == nil, "error saving seeds: %v", err)

	exist, err = testDB.SeedsExist(ctx, fixture.League.ID, season)
	assertFatalf(t, err == nil, "error checking for seeds: %v", err)
	assertEquals(t, "seeds exist after save", true, exist)

	res, err := testDB.GetPlayoffSeeds(ctx, fixture.League.ID, season, 1)
	assertFatalf(t, err == nil, "error loading seeds: %v", err)
	assertFatalf(t, len(res) == 2, "expected 2 seeds, got %d", len(res))

	assertEquals(t, "SeedNumber", 1, res[0].SeedNumber)
	assertEquals(t, "TeamID", int32(101), res[0].TeamID)
	assertEquals(t, "Type", model.SEED_DIVISION_WINNER, res[0].Type)
	assertEquals(t, "DivisionWinner", true, res[0].DivisionWinner)
	assertEquals(t, "Wins", 10, res[0].Wins)
	assertEquals(t, "Losses", 4, res[0].Losses)
	assertEquals(t, "WinPct", 10.0/14.0, res[0].WinPct)
	// The team name and abbreviation are joined in on read.
	assertEquals(t, "TeamName", "Team 101", res[0].TeamName)
	assertEquals(t, "TeamAbbr", "T101", res[0].TeamAbbr)
	assertTrue(t, "Created set", !res[0].Created.IsZero())

	// Saving again replaces the whole set instead of stacking duplicates.
	reseeded := []model.PlayoffSeed{
		testSeed(season, 1, 1, 102, 1, model.SEED_DIVISION_WINNER),
		testSeed(season, 2, 1, 105, 3, model.SEED_DIVISION_WINNER),
	}
	err = testDB.SavePlayoffSeeds(ctx, fixture.League.ID, season, reseeded)
	assertFatalf(t, err == nil, "error replacing seeds: %v", err)

	res, err = testDB.GetPlayoffSeeds(ctx, fixture.League.ID, season, 1)
	assertFatalf(t, err == nil, "error loading replaced seeds: %v", err)
	assertFatalf(t, len(res) == 1, "expected 1 seed after replace, got %d", len(res))
	assertEquals(t, "TeamID", int32(102), res[0].TeamID)
}

func TestDB_clearPlayoffs(t *testing.T) {
	ctx := context.Background()
	season := nextSeason()

	seeds := []model.PlayoffSeed{
		testSeed(season, 1, 1, 101, 1, model.SEED_DIVISION_WINNER),
		testSeed(season, 1, 2, 103, 2, model.SEED_WILD_CARD),
	}
	err := testDB.SavePlayoffSeeds(ctx, fixture.League.ID, season, seeds)
	assertFatalf(t, err == nil, "error saving seeds: %v", err)

	games := []model.Game{
		{
			LeagueID: fixture.League.ID, Season: season, Week: 15,
			Type: model.GAME_WILDCARD, Status: model.STATUS_SCHEDULED,
			HomeTeamID: 101, AwayTeamID: 103, PlayoffRound: 1, PlayoffGameNumber: 1,
		},
		testutils.CompletedGame(fixture.League.ID, season, 14, 101, 103, 21, 7),
	}
	err = testDB.InsertGames(ctx, games)
	assertFatalf(t, err == nil, "error inserting games: %v", err)

	err = testDB.ClearPlayoffs(ctx, fixture.League.ID, season)
	assertFatalf(t, err == nil, "error clearing playoffs: %v", err)

	exist, err := testDB.SeedsExist(ctx, fixture.League.ID, season)
	assertFatalf(t, err == nil, "error checking for seeds: %v", err)
	assertEquals(t, "seeds exist after clear", false, exist)

	wc, err := testDB.ListGames(ctx, fixture.League.ID, season, model.GAME_WILDCARD)
	assertFatalf(t, err == nil, "error listing wild card games: %v", err)
	assertEquals(t, "wild card games left", 0, len(wc))

	// Regular season games survive a playoff reset.
	reg, err := testDB.ListGames(ctx, fixture.League.ID, season, model.GAME_REGULAR)
	assertFatalf(t, err == nil, "error listing regular games: %v", err)
	assertEquals(t, "regular games left", 1, len(reg))
}

func testSeed(season int, conferenceID int32, number int, teamID int32, divisionID int32, seedType model.SeedType) model.PlayoffSeed {
	return model.PlayoffSeed{
		LeagueID:       1,
		Season:         season,
		ConferenceID:   conferenceID,
		TeamID:         teamID,
		DivisionID:     divisionID,
		SeedNumber:     number,
		Type:           seedType,
		DivisionWinner: seedType == model.SEED_DIVISION_WINNER,
		Wins:           10,
		Losses:         4,
		WinPct:         10.0 / 14.0,
	}
}

func assertFatalf(t *testing.T, c bool, f string, args ...any) {
	if !c {
		t.Fatalf(f, args...)
	}
}

func assertEquals(t *testing.T, field string, expected, actual any) {
	if expected != actual {
		t.Errorf("%s - expected: '%v', got: '%v'", field, expected, actual)
	}
}

func assertTrue(t *testing.T, field string, cond bool) {
	if !cond {
		t.Errorf("%s - expected to be true but it was false", field)
	}
}
