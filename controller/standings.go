package controller

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/tvannaman2000/PyNFL/model"
)

func (c *controller) DivisionStandings(ctx context.Context, leagueID int32, season int) ([]model.TeamRecord, error) {
	teams, err := c.db.ListTeams(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading teams: %w", err)
	}

	games, err := c.db.ListGames(ctx, leagueID, season, model.GAME_REGULAR)
	if err != nil {
		return nil, fmt.Errorf("error loading regular season games: %w", err)
	}

	records := buildRecords(teams, games)

	// Group by division, sort each division by the division tie-break order,
	// and keep the divisions themselves in id order.
	slices.SortFunc(records, func(a, b model.TeamRecord) int {
		if c := cmp.Compare(a.Team.DivisionID, b.Team.DivisionID); c != 0 {
			return c
		}
		return divisionCompare(a, b)
	})

	return records, nil
}

// buildRecords aggregates the completed games into one TeamRecord per team.
// Unfinished games are ignored; a team with no completed games keeps an
// all-zero record.
func buildRecords(teams []model.Team, games []model.Game) []model.TeamRecord {
	byID := make(map[int32]*model.TeamRecord, len(teams))
	records := make([]model.TeamRecord, len(teams))
	for i, t := range teams {
		records[i] = model.TeamRecord{Team: t}
		byID[t.ID] = &records[i]
	}

	for _, g := range games {
		if g.Status != model.STATUS_COMPLETED {
			continue
		}
		home, away := byID[g.HomeTeamID], byID[g.AwayTeamID]
		if home == nil || away == nil {
			continue
		}
		tally(home, away, g.HomeScore, g.AwayScore)
		tally(away, home, g.AwayScore, g.HomeScore)
	}

	return records
}

// tally records one completed game from team's point of view against opp.
func tally(team, opp *model.TeamRecord, pointsFor, pointsAgainst int) {
	team.PointsFor += pointsFor
	team.PointsAgainst += pointsAgainst

	won := pointsFor > pointsAgainst
	lost := pointsFor < pointsAgainst

	switch {
	case won:
		team.Wins++
	case lost:
		team.Losses++
	default:
		team.Ties++
	}

	// Tied games do not count toward the tie-break sub-records.
	if !won && !lost {
		return
	}

	if team.Team.DivisionID == opp.Team.DivisionID {
		if won {
			team.HeadToHeadWins++
			team.DivisionWins++
		} else {
			team.HeadToHeadLosses++
			team.DivisionLosses++
		}
	}
	if team.Team.ConferenceID == opp.Team.ConferenceID {
		if won {
			team.ConferenceWins++
		} else {
			team.ConferenceLosses++
		}
	}
}

// divisionCompare orders two teams from the same division. Tie-break order:
// win pct, head-to-head pct, division pct, conference pct, points
// differential, points scored; all descending.
func divisionCompare(a, b model.TeamRecord) int {
	if c := cmp.Compare(b.WinPct(), a.WinPct()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.HeadToHeadPct(), a.HeadToHeadPct()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.DivisionPct(), a.DivisionPct()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.ConferencePct(), a.ConferencePct()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.PointsDiff(), a.PointsDiff()); c != 0 {
		return c
	}
	return cmp.Compare(b.PointsFor, a.PointsFor)
}

// wildcardCompare orders two teams from different divisions. Head-to-head is
// deliberately not consulted: cross-division teams may never have played, so
// the conference record is the first tie-break after win pct. Using the
// division-style order here is the classic way to get NFL seeding wrong.
func wildcardCompare(a, b model.TeamRecord) int {
	if c := cmp.Compare(b.WinPct(), a.WinPct()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.ConferencePct(), a.ConferencePct()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.PointsDiff(), a.PointsDiff()); c != 0 {
		return c
	}
	return cmp.Compare(b.PointsFor, a.PointsFor)
}
