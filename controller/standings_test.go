package controller

import (
	"context"
	"math/rand"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/mock"
	"github.com/tvannaman2000/PyNFL/db"
	"github.com/tvannaman2000/PyNFL/db/mockdb"
	"github.com/tvannaman2000/PyNFL/model"
	"github.com/tvannaman2000/PyNFL/testutils"
)

// testController builds a controller with a fixed rng seed so tests that
// touch the preseason search are reproducible.
func testController(db db.DB) *controller {
	return &controller{
		clock:             clock.New(),
		db:                db,
		rng:               rand.New(rand.NewSource(1)),
		preseasonAttempts: DefaultPreseasonAttempts,
	}
}

func TestDivisionCompare(t *testing.T) {
	tests := map[string]struct {
		a model.TeamRecord
		b model.TeamRecord
	}{
		// Each case is constructed so a ranks ahead of b, with every earlier
		// tie-break equal.
		"win pct": {
			a: model.TeamRecord{Wins: 10, Losses: 4},
			b: model.TeamRecord{Wins: 9, Losses: 5},
		},
		"head to head": {
			a: model.TeamRecord{Wins: 9, Losses: 5, HeadToHeadWins: 2, HeadToHeadLosses: 0},
			b: model.TeamRecord{Wins: 9, Losses: 5, HeadToHeadWins: 0, HeadToHeadLosses: 2},
		},
		"division pct": {
			a: model.TeamRecord{Wins: 9, Losses: 5, HeadToHeadWins: 1, HeadToHeadLosses: 1, DivisionWins: 4, DivisionLosses: 2},
			b: model.TeamRecord{Wins: 9, Losses: 5, HeadToHeadWins: 1, HeadToHeadLosses: 1, DivisionWins: 3, DivisionLosses: 3},
		},
		"conference pct": {
			a: model.TeamRecord{Wins: 9, Losses: 5, ConferenceWins: 8, ConferenceLosses: 2},
			b: model.TeamRecord{Wins: 9, Losses: 5, ConferenceWins: 7, ConferenceLosses: 3},
		},
		"points diff": {
			a: model.TeamRecord{Wins: 9, Losses: 5, PointsFor: 300, PointsAgainst: 250},
			b: model.TeamRecord{Wins: 9, Losses: 5, PointsFor: 300, PointsAgainst: 280},
		},
		"points for": {
			a: model.TeamRecord{Wins: 9, Losses: 5, PointsFor: 320, PointsAgainst: 300},
			b: model.TeamRecord{Wins: 9, Losses: 5, PointsFor: 300, PointsAgainst: 280},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if c := divisionCompare(tc.a, tc.b); c >= 0 {
				t.Errorf("expected a to sort before b, compare returned %d", c)
			}
			if c := divisionCompare(tc.b, tc.a); c <= 0 {
				t.Errorf("expected b to sort after a, compare returned %d", c)
			}
		})
	}
}

// Two teams with identical win and conference percentages but opposite
// head-to-head records. The division order follows head-to-head; the wildcard
// order must skip it and fall through to points differential.
func TestWildcardCompareIgnoresHeadToHead(t *testing.T) {
	a := model.TeamRecord{
		Wins: 9, Losses: 5,
		HeadToHeadWins: 2, HeadToHeadLosses: 0,
		ConferenceWins: 7, ConferenceLosses: 3,
		PointsFor: 280, PointsAgainst: 260,
	}
	b := model.TeamRecord{
		Wins: 9, Losses: 5,
		HeadToHeadWins: 0, HeadToHeadLosses: 2,
		ConferenceWins: 7, ConferenceLosses: 3,
		PointsFor: 310, PointsAgainst: 240,
	}

	if c := divisionCompare(a, b); c >= 0 {
		t.Errorf("division order should favor a on head-to-head, got %d", c)
	}
	if c := wildcardCompare(a, b); c <= 0 {
		t.Errorf("wildcard order should favor b on points diff, got %d", c)
	}
}

func TestBuildRecords(t *testing.T) {
	f := testutils.NewLeagueFixture(2, 2, 2)
	season := 2024

	games := []model.Game{
		// Same division: counts toward everything.
		testutils.CompletedGame(f.League.ID, season, 1, 101, 102, 21, 14),
		// Same conference, different division: no head-to-head or division record.
		testutils.CompletedGame(f.League.ID, season, 2, 101, 103, 28, 7),
		// Cross conference: overall record and points only.
		testutils.CompletedGame(f.League.ID, season, 3, 101, 105, 10, 17),
		// A tie counts in the overall record but in no tie-break sub-record.
		testutils.CompletedGame(f.League.ID, season, 4, 102, 104, 14, 14),
	}
	// Unfinished games contribute nothing.
	games = append(games, model.Game{
		LeagueID: f.League.ID, Season: season, Week: 5,
		Type: model.GAME_REGULAR, Status: model.STATUS_SCHEDULED,
		HomeTeamID: 103, AwayTeamID: 104,
	})

	records := buildRecords(f.Teams, games)
	byID := make(map[int32]model.TeamRecord)
	for _, r := range records {
		byID[r.Team.ID] = r
	}

	r101 := byID[101]
	if r101.Wins != 2 || r101.Losses != 1 || r101.Ties != 0 {
		t.Errorf("team 101 record: got %d-%d-%d, want 2-1-0", r101.Wins, r101.Losses, r101.Ties)
	}
	if r101.HeadToHeadWins != 1 || r101.HeadToHeadLosses != 0 {
		t.Errorf("team 101 head-to-head: got %d-%d, want 1-0", r101.HeadToHeadWins, r101.HeadToHeadLosses)
	}
	if r101.DivisionWins != 1 || r101.DivisionLosses != 0 {
		t.Errorf("team 101 division: got %d-%d, want 1-0", r101.DivisionWins, r101.DivisionLosses)
	}
	if r101.ConferenceWins != 2 || r101.ConferenceLosses != 0 {
		t.Errorf("team 101 conference: got %d-%d, want 2-0", r101.ConferenceWins, r101.ConferenceLosses)
	}
	if r101.PointsFor != 59 || r101.PointsAgainst != 38 {
		t.Errorf("team 101 points: got %d/%d, want 59/38", r101.PointsFor, r101.PointsAgainst)
	}

	r102 := byID[102]
	if r102.Wins != 0 || r102.Losses != 1 || r102.Ties != 1 {
		t.Errorf("team 102 record: got %d-%d-%d, want 0-1-1", r102.Wins, r102.Losses, r102.Ties)
	}
	if r102.HeadToHeadLosses != 1 || r102.DivisionLosses != 1 || r102.ConferenceLosses != 1 {
		t.Errorf("team 102 sub-records should each show the single division loss")
	}

	// The tie against 102 left 104's sub-records untouched.
	r104 := byID[104]
	if r104.Ties != 1 || r104.GamesPlayed() != 1 {
		t.Errorf("team 104 record: got %d-%d-%d, want 0-0-1", r104.Wins, r104.Losses, r104.Ties)
	}
	if r104.ConferenceWins != 0 || r104.ConferenceLosses != 0 {
		t.Errorf("tie should not reach the conference record, got %d-%d", r104.ConferenceWins, r104.ConferenceLosses)
	}

	// The cross-conference win still counts in 105's overall record.
	r105 := byID[105]
	if r105.Wins != 1 || r105.ConferenceWins != 0 {
		t.Errorf("team 105: want 1 overall win and 0 conference wins, got %d and %d",
			r105.Wins, r105.ConferenceWins)
	}

	// Team 106 never played.
	r106 := byID[106]
	if r106.GamesPlayed() != 0 || r106.WinPct() != 0 {
		t.Errorf("idle team should keep an all-zero record")
	}
}

func TestDivisionStandings(t *testing.T) {
	f := testutils.NewLeagueFixture(1, 2, 2)
	season := 2024

	// 102 wins its division over 101; 103 over 104. 103 has the best record
	// in the league but still lists after the division 1 teams.
	games := []model.Game{
		testutils.CompletedGame(f.League.ID, season, 1, 102, 101, 24, 10),
		testutils.CompletedGame(f.League.ID, season, 1, 103, 104, 31, 3),
		testutils.CompletedGame(f.League.ID, season, 2, 103, 101, 20, 17),
	}

	mockDB := &mockdb.DB{}
	mockDB.On("ListTeams", mock.Anything, f.League.ID).Return(f.Teams, nil)
	mockDB.On("ListGames", mock.Anything, f.League.ID, season, model.GAME_REGULAR).Return(games, nil)

	ctrl := testController(mockDB)
	records, err := ctrl.DivisionStandings(context.Background(), f.League.ID, season)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var order []int32
	for _, r := range records {
		order = append(order, r.Team.ID)
	}
	want := []int32{102, 101, 103, 104}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("standings order: got %v, want %v", order, want)
		}
	}

	mockDB.AssertExpectations(t)
}
