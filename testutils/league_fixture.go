package testutils

import (
	"context"
	"fmt"
	"time"

	"github.com/tvannaman2000/PyNFL/db"
	"github.com/tvannaman2000/PyNFL/model"
)

// LeagueFixture is a fully wired league layout for tests: conferences,
// divisions and teams with deterministic ids. Team ids start at 101 and
// increase in division order, so "lower id" is a convenient proxy for "better
// team" when paired with RoundRobinResults.
type LeagueFixture struct {
	League      model.League
	Conferences []model.Conference
	Divisions   []model.Division
	Teams       []model.Team
}

// NewLeagueFixture builds a league with the given shape. League settings
// default to a 14-week regular season, 4 playoff teams per conference and 2
// preseason weeks; adjust the League field before inserting if a test needs
// something else.
func NewLeagueFixture(conferences, divisionsPerConf, teamsPerDivision int) *LeagueFixture {
	f := &LeagueFixture{
		League: model.League{
			ID:                  1,
			Name:                "Test League",
			PreseasonWeeks:      2,
			RegularSeasonWeeks:  14,
			PlayoffTeamsPerConf: 4,
			Active:              true,
		},
	}

	teamID := int32(101)
	divisionID := int32(1)
	for c := int32(1); c <= int32(conferences); c++ {
		f.Conferences = append(f.Conferences, model.Conference{
			ID:           c,
			LeagueID:     f.League.ID,
			Name:         fmt.Sprintf("Conference %d", c),
			Abbreviation: fmt.Sprintf("C%d", c),
		})

		for d := 0; d < divisionsPerConf; d++ {
			f.Divisions = append(f.Divisions, model.Division{
				ID:           divisionID,
				ConferenceID: c,
				Name:         fmt.Sprintf("Division %d", divisionID),
			})

			for t := 0; t < teamsPerDivision; t++ {
				f.Teams = append(f.Teams, model.Team{
					ID:           teamID,
					LeagueID:     f.League.ID,
					ConferenceID: c,
					DivisionID:   divisionID,
					Name:         fmt.Sprintf("Team %d", teamID),
					Abbreviation: fmt.Sprintf("T%d", teamID),
					Active:       true,
				})
				teamID++
			}
			divisionID++
		}
	}

	return f
}

func (f *LeagueFixture) TeamsInConference(conferenceID int32) []model.Team {
	teams := make([]model.Team, 0, len(f.Teams))
	for _, t := range f.Teams {
		if t.ConferenceID == conferenceID {
			teams = append(teams, t)
		}
	}
	return teams
}

func (f *LeagueFixture) TeamsInDivision(divisionID int32) []model.Team {
	teams := make([]model.Team, 0, len(f.Teams))
	for _, t := range f.Teams {
		if t.DivisionID == divisionID {
			teams = append(teams, t)
		}
	}
	return teams
}

// Insert seeds the fixture into a real database.
func (f *LeagueFixture) Insert(db db.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.AddLeague(ctx, &f.League); err != nil {
		return err
	}
	for i := range f.Conferences {
		if err := db.AddConference(ctx, &f.Conferences[i]); err != nil {
			return err
		}
	}
	for i := range f.Divisions {
		if err := db.AddDivision(ctx, &f.Divisions[i]); err != nil {
			return err
		}
	}
	for i := range f.Teams {
		if err := db.AddTeam(ctx, &f.Teams[i]); err != nil {
			return err
		}
	}
	return nil
}

// CompletedGame builds a finished regular season game.
func CompletedGame(leagueID int32, season, week int, homeID, awayID int32, homeScore, awayScore int) model.Game {
	return model.Game{
		LeagueID:   leagueID,
		Season:     season,
		Week:       week,
		Type:       model.GAME_REGULAR,
		Status:     model.STATUS_COMPLETED,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		HomeScore:  homeScore,
		AwayScore:  awayScore,
	}
}

// RoundRobinResults builds a completed single round-robin within each
// conference where the team with the lower id always wins 21-14. The
// resulting seed order inside a conference is simply ascending team id.
func (f *LeagueFixture) RoundRobinResults(season int) []model.Game {
	games := make([]model.Game, 0, 32)
	for _, conf := range f.Conferences {
		teams := f.TeamsInConference(conf.ID)
		week := 1
		for i := 0; i < len(teams); i++ {
			for j := i + 1; j < len(teams); j++ {
				home, away := teams[i], teams[j]
				homeScore, awayScore := 21, 14
				if away.ID < home.ID {
					homeScore, awayScore = 14, 21
				}
				games = append(games, CompletedGame(f.League.ID, season, week, home.ID, away.ID, homeScore, awayScore))
				week++
			}
		}
	}
	return games
}
