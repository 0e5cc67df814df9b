package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tvannaman2000/PyNFL/model"
)

var (
	ErrLeagueNotFound error = errors.New("league not found")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) AddLeague(ctx context.Context, l *model.League) error {
	const query = `INSERT INTO leagues (
			league_id, league_name, preseason_weeks, regular_season_weeks,
			playoff_teams_per_conf, is_active
		) VALUES (@id, @name, @preseasonWeeks, @regularSeasonWeeks, @playoffTeams, @active)`

	args := pgx.NamedArgs{
		"id":                 l.ID,
		"name":               l.Name,
		"preseasonWeeks":     l.PreseasonWeeks,
		"regularSeasonWeeks": l.RegularSeasonWeeks,
		"playoffTeams":       l.PlayoffTeamsPerConf,
		"active":             l.Active,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting league (%s): %w", l.Name, err)
	}
	return nil
}

func (db *postgresDB) GetLeague(ctx context.Context, id int32) (*model.League, error) {
	const query = `SELECT league_id, league_name, preseason_weeks, regular_season_weeks,
						playoff_teams_per_conf, is_active
					FROM leagues WHERE league_id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})

	var l model.League
	err := row.Scan(&l.ID, &l.Name, &l.PreseasonWeeks, &l.RegularSeasonWeeks,
		&l.PlayoffTeamsPerConf, &l.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league %d: %w", id, err)
	}
	return &l, nil
}

func (db *postgresDB) AddConference(ctx context.Context, c *model.Conference) error {
	const query = `INSERT INTO conferences (conference_id, league_id, conference_name, abbreviation)
					VALUES (@id, @leagueID, @name, @abbr)`

	args := pgx.NamedArgs{
		"id":       c.ID,
		"leagueID": c.LeagueID,
		"name":     c.Name,
		"abbr":     c.Abbreviation,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting conference (%s): %w", c.Name, err)
	}
	return nil
}

func (db *postgresDB) ListConferences(ctx context.Context, leagueID int32) ([]model.Conference, error) {
	const query = `SELECT conference_id, league_id, conference_name, abbreviation
					FROM conferences WHERE league_id=@leagueID
					ORDER BY conference_id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error listing conferences: %w", err)
	}
	defer rows.Close()

	results := make([]model.Conference, 0, 2)
	for rows.Next() {
		var c model.Conference
		if err := rows.Scan(&c.ID, &c.LeagueID, &c.Name, &c.Abbreviation); err != nil {
			return nil, fmt.Errorf("error scanning conference: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

func (db *postgresDB) AddDivision(ctx context.Context, d *model.Division) error {
	const query = `INSERT INTO divisions (division_id, conference_id, division_name)
					VALUES (@id, @conferenceID, @name)`

	args := pgx.NamedArgs{
		"id":           d.ID,
		"conferenceID": d.ConferenceID,
		"name":         d.Name,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting division (%s): %w", d.Name, err)
	}
	return nil
}

func (db *postgresDB) ListDivisions(ctx context.Context, conferenceID int32) ([]model.Division, error) {
	const query = `SELECT division_id, conference_id, division_name
					FROM divisions WHERE conference_id=@conferenceID
					ORDER BY division_id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"conferenceID": conferenceID})
	if err != nil {
		return nil, fmt.Errorf("error listing divisions: %w", err)
	}
	defer rows.Close()

	results := make([]model.Division, 0, 4)
	for rows.Next() {
		var d model.Division
		if err := rows.Scan(&d.ID, &d.ConferenceID, &d.Name); err != nil {
			return nil, fmt.Errorf("error scanning division: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

func (db *postgresDB) AddTeam(ctx context.Context, t *model.Team) error {
	const query = `INSERT INTO teams (
			team_id, league_id, conference_id, division_id, full_name, abbreviation, is_active
		) VALUES (@id, @leagueID, @conferenceID, @divisionID, @name, @abbr, @active)`

	args := pgx.NamedArgs{
		"id":           t.ID,
		"leagueID":     t.LeagueID,
		"conferenceID": t.ConferenceID,
		"divisionID":   t.DivisionID,
		"name":         t.Name,
		"abbr":         t.Abbreviation,
		"active":       t.Active,
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error inserting team (%s): %w", t.Abbreviation, err)
	}
	return nil
}

func (db *postgresDB) ListTeams(ctx context.Context, leagueID int32) ([]model.Team, error) {
	const query = `SELECT team_id, league_id, conference_id, division_id, full_name, abbreviation, is_active
					FROM teams WHERE league_id=@leagueID AND is_active=TRUE
					ORDER BY division_id, full_name`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error listing teams: %w", err)
	}
	defer rows.Close()

	results := make([]model.Team, 0, 32)
	for rows.Next() {
		var t model.Team
		err := rows.Scan(&t.ID, &t.LeagueID, &t.ConferenceID, &t.DivisionID,
			&t.Name, &t.Abbreviation, &t.Active)
		if err != nil {
			return nil, fmt.Errorf("error scanning team: %w", err)
		}
		results = append(results, t)
	}
	return results, rows.Err()
}

func (db *postgresDB) InsertGames(ctx context.Context, games []model.Game) error {
	const query = `INSERT INTO games (
			league_id, season, week, game_type, game_status,
			home_team_id, away_team_id, home_score, away_score,
			playoff_round, playoff_game_number, bracket_position,
			day_of_week, game_notes, created
		) VALUES (
			@leagueID, @season, @week, @gameType, @gameStatus,
			@homeTeamID, @awayTeamID, @homeScore, @awayScore,
			@playoffRound, @playoffGameNumber, @bracketPosition,
			@dayOfWeek, @notes, @created
		)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range games {
		g := &games[i]
		args := pgx.NamedArgs{
			"leagueID":          g.LeagueID,
			"season":            g.Season,
			"week":              g.Week,
			"gameType":          string(g.Type),
			"gameStatus":        string(g.Status),
			"homeTeamID":        g.HomeTeamID,
			"awayTeamID":        g.AwayTeamID,
			"homeScore":         g.HomeScore,
			"awayScore":         g.AwayScore,
			"playoffRound":      g.PlayoffRound,
			"playoffGameNumber": g.PlayoffGameNumber,
			"bracketPosition":   g.BracketPosition,
			"dayOfWeek":         g.DayOfWeek,
			"notes":             g.Notes,
			"created": pgtype.Timestamptz{
				Time:  db.clock.Now().UTC(),
				Valid: true,
			},
		}
		if _, err := tx.Exec(ctx, query, args); err != nil {
			return fmt.Errorf("error inserting game (week %d, %d @ %d): %w",
				g.Week, g.AwayTeamID, g.HomeTeamID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing games transaction: %w", err)
	}
	return nil
}

func (db *postgresDB) ListGames(ctx context.Context, leagueID int32, season int, gameType model.GameType) ([]model.Game, error) {
	const query = `SELECT game_id, league_id, season, week, game_type, game_status,
						home_team_id, away_team_id, home_score, away_score,
						playoff_round, playoff_game_number, bracket_position,
						day_of_week, game_notes, created
					FROM games
					WHERE league_id=@leagueID AND season=@season AND game_type=@gameType
					ORDER BY week, game_id`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"season":   season,
		"gameType": string(gameType),
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing games: %w", err)
	}
	defer rows.Close()

	results := make([]model.Game, 0, 16)
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *g)
	}
	return results, rows.Err()
}

func scanGame(row pgx.Row) (*model.Game, error) {
	var g model.Game
	var gameType, gameStatus string
	var created pgtype.Timestamptz
	err := row.Scan(
		&g.ID,
		&g.LeagueID,
		&g.Season,
		&g.Week,
		&gameType,
		&gameStatus,
		&g.HomeTeamID,
		&g.AwayTeamID,
		&g.HomeScore,
		&g.AwayScore,
		&g.PlayoffRound,
		&g.PlayoffGameNumber,
		&g.BracketPosition,
		&g.DayOfWeek,
		&g.Notes,
		&created)
	if err != nil {
		return nil, fmt.Errorf("error scanning game: %w", err)
	}

	g.Type = model.ParseGameType(gameType)
	g.Status = model.ParseGameStatus(gameStatus)
	g.Created = created.Time

	return &g, nil
}

func (db *postgresDB) RecordGameResult(ctx context.Context, id int32, homeScore, awayScore int) error {
	const query = `UPDATE games
					SET home_score=@homeScore, away_score=@awayScore, game_status=@status
					WHERE game_id=@id`

	args := pgx.NamedArgs{
		"id":        id,
		"homeScore": homeScore,
		"awayScore": awayScore,
		"status":    string(model.STATUS_COMPLETED),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error recording result for game %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no game with id %d", id)
	}
	return nil
}

func (db *postgresDB) CountIncompleteRegularSeason(ctx context.Context, leagueID int32, season int) (int, error) {
	const query = `SELECT COUNT(*) FROM games
					WHERE league_id=@leagueID AND season=@season
					AND game_type=@gameType AND game_status != @status`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"season":   season,
		"gameType": string(model.GAME_REGULAR),
		"status":   string(model.STATUS_COMPLETED),
	}

	var count int
	if err := db.pool.QueryRow(ctx, query, args).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting incomplete regular season games: %w", err)
	}
	return count, nil
}

func (db *postgresDB) ClearPreseasonGames(ctx context.Context, leagueID int32, season int) error {
	const query = `DELETE FROM games
					WHERE league_id=@leagueID AND season=@season AND game_type=@gameType`

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"season":   season,
		"gameType": string(model.GAME_PRESEASON),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error clearing preseason games: %w", err)
	}
	return nil
}

func (db *postgresDB) SavePlayoffSeeds(ctx context.Context, leagueID int32, season int, seeds []model.PlayoffSeed) error {
	const clear = `DELETE FROM playoff_seeds WHERE league_id=@leagueID AND season=@season`

	const insert = `INSERT INTO playoff_seeds (
			league_id, season, conference_id, team_id, division_id, seed_number,
			seed_type, is_division_winner, wins, losses, ties, win_pct, created
		) VALUES (
			@leagueID, @season, @conferenceID, @teamID, @divisionID, @seedNumber,
			@seedType, @divisionWinner, @wins, @losses, @ties, @winPct, @created
		)`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{"leagueID": leagueID, "season": season}
	if _, err := tx.Exec(ctx, clear, args); err != nil {
		return fmt.Errorf("error clearing existing seeds: %w", err)
	}

	for i := range seeds {
		s := &seeds[i]
		args := pgx.NamedArgs{
			"leagueID":       leagueID,
			"season":         season,
			"conferenceID":   s.ConferenceID,
			"teamID":         s.TeamID,
			"divisionID":     s.DivisionID,
			"seedNumber":     s.SeedNumber,
			"seedType":       string(s.Type),
			"divisionWinner": s.DivisionWinner,
			"wins":           s.Wins,
			"losses":         s.Losses,
			"ties":           s.Ties,
			"winPct":         s.WinPct,
			"created": pgtype.Timestamptz{
				Time:  db.clock.Now().UTC(),
				Valid: true,
			},
		}
		if _, err := tx.Exec(ctx, insert, args); err != nil {
			return fmt.Errorf("error inserting seed %d for team %d: %w", s.SeedNumber, s.TeamID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing seeds transaction: %w", err)
	}
	return nil
}

func (db *postgresDB) GetPlayoffSeeds(ctx context.Context, leagueID int32, season int, conferenceID int32) ([]model.PlayoffSeed, error) {
	const query = `SELECT ps.league_id, ps.season, ps.conference_id, ps.team_id, ps.division_id,
						ps.seed_number, ps.seed_type, ps.is_division_winner,
						ps.wins, ps.losses, ps.ties, ps.win_pct, ps.created,
						t.full_name, t.abbreviation
					FROM playoff_seeds ps
					JOIN teams t ON ps.team_id = t.team_id
					WHERE ps.league_id=@leagueID AND ps.season=@season AND ps.conference_id=@conferenceID
					ORDER BY ps.seed_number`

	args := pgx.NamedArgs{
		"leagueID":     leagueID,
		"season":       season,
		"conferenceID": conferenceID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing playoff seeds: %w", err)
	}
	defer rows.Close()

	results := make([]model.PlayoffSeed, 0, 8)
	for rows.Next() {
		var s model.PlayoffSeed
		var seedType string
		var created pgtype.Timestamptz
		err := rows.Scan(&s.LeagueID, &s.Season, &s.ConferenceID, &s.TeamID, &s.DivisionID,
			&s.SeedNumber, &seedType, &s.DivisionWinner,
			&s.Wins, &s.Losses, &s.Ties, &s.WinPct, &created,
			&s.TeamName, &s.TeamAbbr)
		if err != nil {
			return nil, fmt.Errorf("error scanning playoff seed: %w", err)
		}
		s.Type = model.ParseSeedType(seedType)
		s.Created = created.Time
		results = append(results, s)
	}
	return results, rows.Err()
}

func (db *postgresDB) SeedsExist(ctx context.Context, leagueID int32, season int) (bool, error) {
	const query = `SELECT COUNT(*) FROM playoff_seeds WHERE league_id=@leagueID AND season=@season`

	var count int
	args := pgx.NamedArgs{"leagueID": leagueID, "season": season}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&count); err != nil {
		return false, fmt.Errorf("error checking for playoff seeds: %w", err)
	}
	return count > 0, nil
}

func (db *postgresDB) ClearPlayoffs(ctx context.Context, leagueID int32, season int) error {
	const clearGames = `DELETE FROM games
						WHERE league_id=@leagueID AND season=@season
						AND game_type IN ('WILDCARD', 'DIVISIONAL', 'CONFERENCE', 'SUPERBOWL')`

	const clearSeeds = `DELETE FROM playoff_seeds WHERE league_id=@leagueID AND season=@season`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	args := pgx.NamedArgs{"leagueID": leagueID, "season": season}
	if _, err := tx.Exec(ctx, clearGames, args); err != nil {
		return fmt.Errorf("error clearing playoff games: %w", err)
	}
	if _, err := tx.Exec(ctx, clearSeeds, args); err != nil {
		return fmt.Errorf("error clearing playoff seeds: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing playoff clear transaction: %w", err)
	}
	return nil
}
