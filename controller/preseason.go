package controller

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/tvannaman2000/PyNFL/model"
)

// GeneratePreseason builds the full preseason schedule for a season. Every
// team plays exactly one game per week against a team from another division,
// never meets the same opponent twice, and finishes the preseason with at
// least one home and one away game. The whole schedule is inserted in one
// transaction; a search failure commits nothing.
func (c *controller) GeneratePreseason(ctx context.Context, leagueID int32, season int) ([]model.Game, error) {
	league, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading league config: %w", err)
	}
	if league.PreseasonWeeks == 0 {
		log.Printf("league %d has no preseason weeks configured", leagueID)
		return nil, nil
	}

	teams, err := c.db.ListTeams(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading teams: %w", err)
	}

	if err := validatePreseasonFeasible(teams, league.PreseasonWeeks); err != nil {
		return nil, err
	}

	weeks, err := buildPreseasonWeeks(teams, league.PreseasonWeeks, c.preseasonAttempts, c.rng)
	if err != nil {
		return nil, err
	}

	games := preseasonGames(leagueID, season, weeks)
	if err := c.db.InsertGames(ctx, games); err != nil {
		return nil, fmt.Errorf("error inserting preseason games: %w", err)
	}

	log.Printf("created %d preseason games over %d weeks for league %d season %d",
		len(games), league.PreseasonWeeks, leagueID, season)
	return games, nil
}

func (c *controller) ClearPreseason(ctx context.Context, leagueID int32, season int) error {
	if err := c.db.ClearPreseasonGames(ctx, leagueID, season); err != nil {
		return fmt.Errorf("error clearing preseason games: %w", err)
	}
	log.Printf("cleared preseason games for league %d season %d", leagueID, season)
	return nil
}

// validatePreseasonFeasible rejects a mathematically impossible schedule
// before any search runs: every team needs at least `weeks` distinct
// opponents outside its own division.
func validatePreseasonFeasible(teams []model.Team, weeks int) error {
	if len(teams) < 2 {
		return fmt.Errorf("need at least 2 teams for a preseason schedule: %w", ErrImpossibleSchedule)
	}
	if len(teams)%2 != 0 {
		return fmt.Errorf("need an even number of teams for weekly matchups, have %d: %w",
			len(teams), ErrImpossibleSchedule)
	}

	divisionSize := make(map[int32]int)
	for _, t := range teams {
		divisionSize[t.DivisionID]++
	}

	for divisionID, size := range divisionSize {
		nonDivision := len(teams) - size
		if nonDivision < weeks {
			return fmt.Errorf("division %d has only %d non-division opponents for %d preseason weeks: %w",
				divisionID, nonDivision, weeks, ErrImpossibleSchedule)
		}
	}
	return nil
}

// preseasonPairing is one scheduled preseason game, home side decided by the
// balance rules.
type preseasonPairing struct {
	home int32
	away int32
}

// buildPreseasonWeeks runs the schedule search. Each week, the team order is
// shuffled and a backtracking pairing is attempted; up to `attempts` shuffles
// are tried per week. The finished schedule must also leave every team with
// at least one home and one away game (only checkable when weeks >= 2); a
// schedule that misses that is discarded and rebuilt, again up to `attempts`
// times. Exhaustion is a deterministic, reported failure, never a partial
// schedule.
func buildPreseasonWeeks(teams []model.Team, weeks, attempts int, rng *rand.Rand) ([][]preseasonPairing, error) {
	for i := 0; i < attempts; i++ {
		schedule, err := buildScheduleOnce(teams, weeks, attempts, rng)
		if err != nil {
			return nil, err
		}
		if weeks < 2 || balancedHomeAway(teams, schedule) {
			return schedule, nil
		}
	}
	log.Printf("no home/away balanced preseason schedule found after %d attempts", attempts)
	return nil, ErrNoValidPairings
}

func buildScheduleOnce(teams []model.Team, weeks, attempts int, rng *rand.Rand) ([][]preseasonPairing, error) {
	division := make(map[int32]int32, len(teams))
	ids := make([]int32, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
		division[t.ID] = t.DivisionID
	}

	played := make(map[[2]int32]bool)
	homeCounts := make(map[int32]int, len(teams))
	awayCounts := make(map[int32]int, len(teams))

	canPlay := func(a, b int32) bool {
		if division[a] == division[b] {
			return false
		}
		return !played[pairKey(a, b)]
	}

	schedule := make([][]preseasonPairing, 0, weeks)
	for week := 1; week <= weeks; week++ {
		var pairs [][2]int32
		for attempt := 0; attempt < attempts; attempt++ {
			rng.Shuffle(len(ids), func(i, j int) {
				ids[i], ids[j] = ids[j], ids[i]
			})
			if pairs = pairTeams(ids, canPlay); pairs != nil {
				break
			}
		}
		if pairs == nil {
			log.Printf("no legal pairing for preseason week %d after %d attempts", week, attempts)
			return nil, ErrNoValidPairings
		}

		weekPairings := make([]preseasonPairing, 0, len(pairs))
		for _, p := range pairs {
			weekPairings = append(weekPairings,
				chooseHomeAway(p[0], p[1], homeCounts, awayCounts, weeks-week, rng))
		}

		for _, p := range weekPairings {
			played[pairKey(p.home, p.away)] = true
			homeCounts[p.home]++
			awayCounts[p.away]++
		}
		schedule = append(schedule, weekPairings)
	}

	return schedule, nil
}

func balancedHomeAway(teams []model.Team, schedule [][]preseasonPairing) bool {
	homeCounts := make(map[int32]int, len(teams))
	awayCounts := make(map[int32]int, len(teams))
	for _, week := range schedule {
		for _, p := range week {
			homeCounts[p.home]++
			awayCounts[p.away]++
		}
	}
	for _, t := range teams {
		if homeCounts[t.ID] == 0 || awayCounts[t.ID] == 0 {
			return false
		}
	}
	return true
}

// pairTeams pairs every id with a legal opponent using backtracking: the
// first unpaired team tries each remaining candidate, recursing on the rest.
// Returns nil when no complete pairing exists for this ordering.
func pairTeams(ids []int32, canPlay func(a, b int32) bool) [][2]int32 {
	if len(ids) == 0 {
		return [][2]int32{}
	}
	if len(ids)%2 != 0 {
		return nil
	}

	first := ids[0]
	for i := 1; i < len(ids); i++ {
		if !canPlay(first, ids[i]) {
			continue
		}

		rest := make([]int32, 0, len(ids)-2)
		rest = append(rest, ids[1:i]...)
		rest = append(rest, ids[i+1:]...)

		if tail := pairTeams(rest, canPlay); tail != nil {
			return append([][2]int32{{first, ids[i]}}, tail...)
		}
	}
	return nil
}

// chooseHomeAway assigns the home side for a pairing. Late in the preseason
// (one or fewer games left) a team that still has no home or no away game
// gets one; otherwise the team with fewer home games hosts, then the team
// with fewer away games travels, then a coin flip.
func chooseHomeAway(a, b int32, homeCounts, awayCounts map[int32]int, remainingGames int, rng *rand.Rand) preseasonPairing {
	if remainingGames <= 1 {
		if homeCounts[a] == 0 {
			return preseasonPairing{home: a, away: b}
		}
		if homeCounts[b] == 0 {
			return preseasonPairing{home: b, away: a}
		}
		if awayCounts[a] == 0 {
			return preseasonPairing{home: b, away: a}
		}
		if awayCounts[b] == 0 {
			return preseasonPairing{home: a, away: b}
		}
	}

	switch {
	case homeCounts[a] < homeCounts[b]:
		return preseasonPairing{home: a, away: b}
	case homeCounts[b] < homeCounts[a]:
		return preseasonPairing{home: b, away: a}
	case awayCounts[a] < awayCounts[b]:
		return preseasonPairing{home: b, away: a}
	case awayCounts[b] < awayCounts[a]:
		return preseasonPairing{home: a, away: b}
	}

	if rng.Intn(2) == 0 {
		return preseasonPairing{home: a, away: b}
	}
	return preseasonPairing{home: b, away: a}
}

var preseasonDays = []string{"Thursday", "Friday", "Saturday", "Sunday"}

func preseasonGames(leagueID int32, season int, weeks [][]preseasonPairing) []model.Game {
	games := make([]model.Game, 0, len(weeks)*8)
	for w, pairings := range weeks {
		week := w + 1
		for i, p := range pairings {
			games = append(games, model.Game{
				LeagueID:   leagueID,
				Season:     season,
				Week:       week,
				Type:       model.GAME_PRESEASON,
				Status:     model.STATUS_SCHEDULED,
				HomeTeamID: p.home,
				AwayTeamID: p.away,
				DayOfWeek:  preseasonDays[i%len(preseasonDays)],
				Notes:      fmt.Sprintf("Preseason Week %d", week),
			})
		}
	}
	return games
}

func pairKey(a, b int32) [2]int32 {
	if a < b {
		return [2]int32{a, b}
	}
	return [2]int32{b, a}
}
