package model

import (
	"strings"
	"time"
)

type GameType string

const (
	GAME_UNKNOWN    GameType = "UNKNOWN"
	GAME_PRESEASON  GameType = "PRESEASON"
	GAME_REGULAR    GameType = "REGULAR"
	GAME_WILDCARD   GameType = "WILDCARD"
	GAME_DIVISIONAL GameType = "DIVISIONAL"
	GAME_CONFERENCE GameType = "CONFERENCE"
	GAME_SUPERBOWL  GameType = "SUPERBOWL"
)

func ParseGameType(t string) GameType {
	switch strings.ToUpper(t) {
	case "PRESEASON":
		return GAME_PRESEASON
	case "REGULAR":
		return GAME_REGULAR
	case "WILDCARD":
		return GAME_WILDCARD
	case "DIVISIONAL":
		return GAME_DIVISIONAL
	case "CONFERENCE":
		return GAME_CONFERENCE
	case "SUPERBOWL":
		return GAME_SUPERBOWL
	default:
		return GAME_UNKNOWN
	}
}

// IsPlayoff reports whether games of this type belong to the playoff bracket.
func (t GameType) IsPlayoff() bool {
	switch t {
	case GAME_WILDCARD, GAME_DIVISIONAL, GAME_CONFERENCE, GAME_SUPERBOWL:
		return true
	default:
		return false
	}
}

type GameStatus string

const (
	STATUS_SCHEDULED   GameStatus = "SCHEDULED"
	STATUS_IN_PROGRESS GameStatus = "IN_PROGRESS"
	STATUS_COMPLETED   GameStatus = "COMPLETED"
)

func ParseGameStatus(s string) GameStatus {
	switch strings.ToUpper(s) {
	case "IN_PROGRESS":
		return STATUS_IN_PROGRESS
	case "COMPLETED":
		return STATUS_COMPLETED
	default:
		return STATUS_SCHEDULED
	}
}

type Game struct {
	ID         int32
	LeagueID   int32
	Season     int
	Week       int
	Type       GameType
	Status     GameStatus
	HomeTeamID int32
	AwayTeamID int32
	HomeScore  int
	AwayScore  int

	// Playoff bookkeeping; zero values for preseason and regular games.
	PlayoffRound      int
	PlayoffGameNumber int
	BracketPosition   string

	DayOfWeek string
	Notes     string
	Created   time.Time
}

// Winner returns the winning team of a completed game. The boolean is false
// when the game is not complete or ended in a tie; a tied playoff game never
// advances a team, so the result must be corrected before the next round can
// honor it.
func (g *Game) Winner() (int32, bool) {
	if g.Status != STATUS_COMPLETED {
		return 0, false
	}
	if g.HomeScore > g.AwayScore {
		return g.HomeTeamID, true
	}
	if g.AwayScore > g.HomeScore {
		return g.AwayTeamID, true
	}
	return 0, false
}
