package controller

import (
	"cmp"
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/tvannaman2000/PyNFL/model"
)

func (c *controller) PlayoffPicture(ctx context.Context, leagueID int32, season int) ([]model.PlayoffSeed, error) {
	confs, err := c.db.ListConferences(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading conferences: %w", err)
	}

	results := make([]model.PlayoffSeed, 0, 16)
	for _, conf := range confs {
		seeds, err := c.db.GetPlayoffSeeds(ctx, leagueID, season, conf.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading seeds for %s: %w", conf.Abbreviation, err)
		}
		results = append(results, seeds...)
	}
	return results, nil
}

// GenerateWildCardRound calculates the playoff seeds from the completed
// regular season, locks them in the seed store, and creates the Wild Card
// games. Calling it again recalculates and replaces the locked seeds;
// removing previously generated games is ClearPlayoffs' job.
func (c *controller) GenerateWildCardRound(ctx context.Context, leagueID int32, season int) ([]model.Game, error) {
	incomplete, err := c.db.CountIncompleteRegularSeason(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("error checking season completion: %w", err)
	}
	if incomplete > 0 {
		log.Printf("%d regular season games still incomplete for league %d season %d",
			incomplete, leagueID, season)
		return nil, ErrSeasonIncomplete
	}

	league, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading league config: %w", err)
	}

	confs, err := c.db.ListConferences(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading conferences: %w", err)
	}
	if len(confs) == 0 {
		return nil, fmt.Errorf("league %d has no conferences", leagueID)
	}

	teams, err := c.db.ListTeams(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("error loading teams: %w", err)
	}

	games, err := c.db.ListGames(ctx, leagueID, season, model.GAME_REGULAR)
	if err != nil {
		return nil, fmt.Errorf("error loading regular season games: %w", err)
	}

	records := buildRecords(teams, games)

	allSeeds := make([]model.PlayoffSeed, 0, 2*league.PlayoffTeamsPerConf)
	for _, conf := range confs {
		confRecords := make([]model.TeamRecord, 0, len(records))
		for _, r := range records {
			if r.Team.ConferenceID == conf.ID {
				confRecords = append(confRecords, r)
			}
		}

		seeds := seedConference(conf, confRecords, league.PlayoffTeamsPerConf, leagueID, season)
		if len(seeds) < league.PlayoffTeamsPerConf {
			log.Printf("could not fill %d seeds for %s, only %d teams qualified",
				league.PlayoffTeamsPerConf, conf.Name, len(seeds))
			return nil, ErrNotEnoughTeams
		}
		allSeeds = append(allSeeds, seeds...)
	}

	if err := c.db.SavePlayoffSeeds(ctx, leagueID, season, allSeeds); err != nil {
		return nil, fmt.Errorf("error locking playoff seeds: %w", err)
	}

	wildcardWeek := league.RegularSeasonWeeks + 1
	byes := numByes(league.PlayoffTeamsPerConf)

	allGames := make([]model.Game, 0, 8)
	gameNumber := 1
	for _, conf := range confs {
		entrants := make([]model.BracketTeam, 0, league.PlayoffTeamsPerConf)
		for _, s := range allSeeds {
			if s.ConferenceID == conf.ID {
				entrants = append(entrants, model.BracketTeam{Seed: s})
			}
		}

		// The bye seeds skip straight to the Divisional round.
		for i, m := range bracketPairs(entrants[byes:]) {
			g := c.playoffGame(league, season, wildcardWeek, model.GAME_WILDCARD, 1, gameNumber, m)
			g.BracketPosition = fmt.Sprintf("%s-WC%d", conf.Abbreviation, i+1)
			g.Notes = fmt.Sprintf("%s Wild Card: %s", conf.Abbreviation, matchupDescription(m))
			allGames = append(allGames, g)
			gameNumber++
		}
	}

	if err := c.db.InsertGames(ctx, allGames); err != nil {
		return nil, fmt.Errorf("error inserting wild card games: %w", err)
	}

	log.Printf("created %d wild card games and locked %d seeds for league %d season %d",
		len(allGames), len(allSeeds), leagueID, season)
	return allGames, nil
}

// GenerateDivisionalRound pairs the bye seeds with the Wild Card winners. If
// some Wild Card games are still undecided the missing slots are filled with
// provisional teams taken from the locked seed order so a bracket skeleton
// can be produced; rerunning after results arrive yields the real matchups.
func (c *controller) GenerateDivisionalRound(ctx context.Context, leagueID int32, season int) ([]model.Game, error) {
	league, confs, err := c.playoffRoundSetup(ctx, leagueID, season)
	if err != nil {
		return nil, err
	}

	wcGames, err := c.db.ListGames(ctx, leagueID, season, model.GAME_WILDCARD)
	if err != nil {
		return nil, fmt.Errorf("error loading wild card games: %w", err)
	}

	divisionalWeek := league.RegularSeasonWeeks + 2
	byes := numByes(league.PlayoffTeamsPerConf)
	slotsAfterWildCard := byes + (league.PlayoffTeamsPerConf-byes)/2

	allGames := make([]model.Game, 0, 4)
	gameNumber := 1
	for _, conf := range confs {
		seeds, err := c.db.GetPlayoffSeeds(ctx, leagueID, season, conf.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading seeds for %s: %w", conf.Abbreviation, err)
		}
		seedByTeam := seedMap(seeds)

		entrants := make([]model.BracketTeam, 0, slotsAfterWildCard)
		for _, s := range seeds {
			if s.SeedNumber <= byes {
				entrants = append(entrants, model.BracketTeam{Seed: s})
			}
		}
		entrants = append(entrants, roundWinners(wcGames, seedByTeam)...)
		entrants = fillProvisional(entrants, seeds, slotsAfterWildCard, conf.Abbreviation)

		slices.SortFunc(entrants, func(a, b model.BracketTeam) int {
			return cmp.Compare(a.Seed.SeedNumber, b.Seed.SeedNumber)
		})

		for i, m := range bracketPairs(entrants) {
			g := c.playoffGame(league, season, divisionalWeek, model.GAME_DIVISIONAL, 2, gameNumber, m)
			g.BracketPosition = fmt.Sprintf("%s-DIV%d", conf.Abbreviation, i+1)
			g.Notes = fmt.Sprintf("%s Divisional: %s", conf.Abbreviation, matchupDescription(m))
			allGames = append(allGames, g)
			gameNumber++
		}
	}

	if err := c.db.InsertGames(ctx, allGames); err != nil {
		return nil, fmt.Errorf("error inserting divisional games: %w", err)
	}

	log.Printf("created %d divisional games for league %d season %d", len(allGames), leagueID, season)
	return allGames, nil
}

// GenerateConferenceChampionships pairs the two Divisional winners in each
// conference, better seed at home.
func (c *controller) GenerateConferenceChampionships(ctx context.Context, leagueID int32, season int) ([]model.Game, error) {
	league, confs, err := c.playoffRoundSetup(ctx, leagueID, season)
	if err != nil {
		return nil, err
	}

	divGames, err := c.db.ListGames(ctx, leagueID, season, model.GAME_DIVISIONAL)
	if err != nil {
		return nil, fmt.Errorf("error loading divisional games: %w", err)
	}

	championshipWeek := league.RegularSeasonWeeks + 3

	allGames := make([]model.Game, 0, 2)
	gameNumber := 1
	for _, conf := range confs {
		seeds, err := c.db.GetPlayoffSeeds(ctx, leagueID, season, conf.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading seeds for %s: %w", conf.Abbreviation, err)
		}

		entrants := roundWinners(divGames, seedMap(seeds))
		if len(entrants) != 2 {
			log.Printf("expected 2 divisional winners for %s, found %d; using provisional seeds",
				conf.Abbreviation, len(entrants))
			entrants = fillProvisional(nil, seeds, 2, conf.Abbreviation)
		}
		if len(entrants) != 2 {
			return nil, fmt.Errorf("cannot create %s championship with %d teams", conf.Name, len(entrants))
		}

		slices.SortFunc(entrants, func(a, b model.BracketTeam) int {
			return cmp.Compare(a.Seed.SeedNumber, b.Seed.SeedNumber)
		})

		m := matchup{home: entrants[0], away: entrants[1]}
		g := c.playoffGame(league, season, championshipWeek, model.GAME_CONFERENCE, 3, gameNumber, m)
		g.DayOfWeek = "Sunday"
		g.BracketPosition = fmt.Sprintf("%s-CONF", conf.Abbreviation)
		g.Notes = fmt.Sprintf("%s Championship: %s", conf.Abbreviation, matchupDescription(m))
		allGames = append(allGames, g)
		gameNumber++
	}

	if err := c.db.InsertGames(ctx, allGames); err != nil {
		return nil, fmt.Errorf("error inserting conference championship games: %w", err)
	}

	log.Printf("created %d conference championship games for league %d season %d",
		len(allGames), leagueID, season)
	return allGames, nil
}

// GenerateChampionship creates the final game between the two conference
// champions. The first conference listed is the home side.
func (c *controller) GenerateChampionship(ctx context.Context, leagueID int32, season int) ([]model.Game, error) {
	league, confs, err := c.playoffRoundSetup(ctx, leagueID, season)
	if err != nil {
		return nil, err
	}
	if len(confs) != 2 {
		return nil, fmt.Errorf("need exactly 2 conferences for a championship game, have %d", len(confs))
	}

	confGames, err := c.db.ListGames(ctx, leagueID, season, model.GAME_CONFERENCE)
	if err != nil {
		return nil, fmt.Errorf("error loading conference championship games: %w", err)
	}

	champions := make([]model.BracketTeam, 0, 2)
	for _, conf := range confs {
		seeds, err := c.db.GetPlayoffSeeds(ctx, leagueID, season, conf.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading seeds for %s: %w", conf.Abbreviation, err)
		}

		winners := roundWinners(confGames, seedMap(seeds))
		if len(winners) == 1 {
			champions = append(champions, winners[0])
			continue
		}

		log.Printf("no %s champion decided yet; using the top seed as provisional",
			conf.Abbreviation)
		provisional := fillProvisional(nil, seeds, 1, conf.Abbreviation)
		if len(provisional) != 1 {
			return nil, fmt.Errorf("no seeds available for %s", conf.Name)
		}
		champions = append(champions, provisional[0])
	}

	m := matchup{home: champions[0], away: champions[1]}
	g := c.playoffGame(league, season, league.RegularSeasonWeeks+4, model.GAME_SUPERBOWL, 4, 1, m)
	g.DayOfWeek = "Sunday"
	g.BracketPosition = "SB"
	g.Notes = fmt.Sprintf("Super Bowl: %s vs %s", m.away.Seed.TeamAbbr, m.home.Seed.TeamAbbr)
	if m.home.Provisional || m.away.Provisional {
		g.Notes += " (provisional)"
	}

	if err := c.db.InsertGames(ctx, []model.Game{g}); err != nil {
		return nil, fmt.Errorf("error inserting championship game: %w", err)
	}

	log.Printf("created championship game for league %d season %d", leagueID, season)
	return []model.Game{g}, nil
}

func (c *controller) ClearPlayoffs(ctx context.Context, leagueID int32, season int) error {
	if err := c.db.ClearPlayoffs(ctx, leagueID, season); err != nil {
		return fmt.Errorf("error clearing playoffs: %w", err)
	}
	log.Printf("cleared playoff games and seeds for league %d season %d", leagueID, season)
	return nil
}

// playoffRoundSetup performs the checks shared by every round after the Wild
// Card: the seeds must already be locked and the league config loadable.
func (c *controller) playoffRoundSetup(ctx context.Context, leagueID int32, season int) (*model.League, []model.Conference, error) {
	exist, err := c.db.SeedsExist(ctx, leagueID, season)
	if err != nil {
		return nil, nil, fmt.Errorf("error checking for playoff seeds: %w", err)
	}
	if !exist {
		return nil, nil, ErrSeedsNotFound
	}

	league, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading league config: %w", err)
	}

	confs, err := c.db.ListConferences(ctx, leagueID)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading conferences: %w", err)
	}

	return league, confs, nil
}

// seedConference turns one conference's records into an ordered seed list.
// Division winners are found with the division tie-break inside each
// division, then all cross-division comparisons (winners against each other,
// and the wild card pool) use the wildcard tie-break.
func seedConference(conf model.Conference, records []model.TeamRecord, playoffTeams int, leagueID int32, season int) []model.PlayoffSeed {
	byDivision := make(map[int32][]model.TeamRecord)
	for _, r := range records {
		byDivision[r.Team.DivisionID] = append(byDivision[r.Team.DivisionID], r)
	}

	winners := make([]model.TeamRecord, 0, len(byDivision))
	winnerIDs := make(map[int32]bool, len(byDivision))
	for _, div := range byDivision {
		slices.SortFunc(div, divisionCompare)
		winners = append(winners, div[0])
		winnerIDs[div[0].Team.ID] = true
	}
	slices.SortFunc(winners, wildcardCompare)

	wildcards := make([]model.TeamRecord, 0, len(records))
	for _, r := range records {
		if !winnerIDs[r.Team.ID] {
			wildcards = append(wildcards, r)
		}
	}
	slices.SortFunc(wildcards, wildcardCompare)

	seeds := make([]model.PlayoffSeed, 0, playoffTeams)
	for _, w := range winners {
		seeds = append(seeds, newSeed(leagueID, season, conf.ID, w, len(seeds)+1, model.SEED_DIVISION_WINNER))
	}
	for _, w := range wildcards {
		if len(seeds) == playoffTeams {
			break
		}
		seeds = append(seeds, newSeed(leagueID, season, conf.ID, w, len(seeds)+1, model.SEED_WILD_CARD))
	}

	if len(seeds) > playoffTeams {
		seeds = seeds[:playoffTeams]
	}
	return seeds
}

func newSeed(leagueID int32, season int, conferenceID int32, r model.TeamRecord, number int, seedType model.SeedType) model.PlayoffSeed {
	return model.PlayoffSeed{
		LeagueID:       leagueID,
		Season:         season,
		ConferenceID:   conferenceID,
		TeamID:         r.Team.ID,
		DivisionID:     r.Team.DivisionID,
		SeedNumber:     number,
		Type:           seedType,
		DivisionWinner: seedType == model.SEED_DIVISION_WINNER,
		Wins:           r.Wins,
		Losses:         r.Losses,
		Ties:           r.Ties,
		WinPct:         r.WinPct(),
		TeamName:       r.Team.Name,
		TeamAbbr:       r.Team.Abbreviation,
	}
}

// numByes maps the configured playoff team count to the number of first-round
// byes: the modern 7-team format rests only the top seed, the 1980s 6-team
// format rests the top two.
func numByes(playoffTeams int) int {
	switch playoffTeams {
	case 7:
		return 1
	case 6:
		return 2
	case 5:
		return 1
	case 4:
		return 0
	default:
		if playoffTeams%2 == 1 {
			return 1
		}
		return 0
	}
}

type matchup struct {
	home model.BracketTeam
	away model.BracketTeam
}

// bracketPairs pairs the entrants best-vs-worst: first against last, second
// against second-to-last, and so on. The better seed hosts. Entrants must
// already be sorted by seed number.
func bracketPairs(entrants []model.BracketTeam) []matchup {
	matchups := make([]matchup, 0, len(entrants)/2)
	for i := 0; i < len(entrants)/2; i++ {
		matchups = append(matchups, matchup{
			home: entrants[i],
			away: entrants[len(entrants)-1-i],
		})
	}
	return matchups
}

// roundWinners maps the decided games of a round back to the locked seeds of
// one conference. Games without a decisive winner, including ties, contribute
// nothing; other conferences' games are skipped via the seed lookup.
func roundWinners(games []model.Game, seedByTeam map[int32]model.PlayoffSeed) []model.BracketTeam {
	winners := make([]model.BracketTeam, 0, len(games))
	for i := range games {
		winnerID, ok := games[i].Winner()
		if !ok {
			continue
		}
		if seed, found := seedByTeam[winnerID]; found {
			winners = append(winners, model.BracketTeam{Seed: seed})
		}
	}
	return winners
}

// fillProvisional pads entrants up to want entries with the best locked seeds
// not already present, marked provisional. This is the documented best-effort
// fallback for scaffolding a bracket before earlier rounds finish.
func fillProvisional(entrants []model.BracketTeam, seeds []model.PlayoffSeed, want int, confAbbr string) []model.BracketTeam {
	if len(entrants) >= want {
		return entrants
	}

	present := make(map[int32]bool, len(entrants))
	for _, e := range entrants {
		present[e.Seed.TeamID] = true
	}

	for _, s := range seeds {
		if len(entrants) >= want {
			break
		}
		if present[s.TeamID] {
			continue
		}
		log.Printf("using #%d %s as a provisional %s entrant", s.SeedNumber, s.TeamAbbr, confAbbr)
		entrants = append(entrants, model.BracketTeam{Seed: s, Provisional: true})
		present[s.TeamID] = true
	}
	return entrants
}

func (c *controller) playoffGame(league *model.League, season, week int, gameType model.GameType, round, gameNumber int, m matchup) model.Game {
	day := "Sunday"
	if gameNumber%2 == 1 {
		day = "Saturday"
	}

	return model.Game{
		LeagueID:          league.ID,
		Season:            season,
		Week:              week,
		Type:              gameType,
		Status:            model.STATUS_SCHEDULED,
		HomeTeamID:        m.home.Seed.TeamID,
		AwayTeamID:        m.away.Seed.TeamID,
		PlayoffRound:      round,
		PlayoffGameNumber: gameNumber,
		DayOfWeek:         day,
	}
}

func matchupDescription(m matchup) string {
	desc := fmt.Sprintf("#%d %s @ #%d %s",
		m.away.Seed.SeedNumber, m.away.Seed.TeamAbbr,
		m.home.Seed.SeedNumber, m.home.Seed.TeamAbbr)
	if m.home.Provisional || m.away.Provisional {
		desc += " (provisional)"
	}
	return desc
}

func seedMap(seeds []model.PlayoffSeed) map[int32]model.PlayoffSeed {
	m := make(map[int32]model.PlayoffSeed, len(seeds))
	for _, s := range seeds {
		m[s.TeamID] = s
	}
	return m
}
