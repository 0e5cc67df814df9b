package model

import (
	"strings"
	"time"
)

type SeedType string

const (
	SEED_DIVISION_WINNER SeedType = "Division Winner"
	SEED_WILD_CARD       SeedType = "Wild Card"
)

func ParseSeedType(s string) SeedType {
	if strings.EqualFold(s, string(SEED_DIVISION_WINNER)) {
		return SEED_DIVISION_WINNER
	}
	return SEED_WILD_CARD
}

// PlayoffSeed is the authoritative seeding snapshot for a season. Seeds are
// written once when the Wild Card round is generated and are read-only for
// every later round, so a stats correction mid-playoffs can never reshuffle
// the bracket. Regenerating the Wild Card round clears and recreates them.
type PlayoffSeed struct {
	LeagueID       int32
	Season         int
	ConferenceID   int32
	TeamID         int32
	DivisionID     int32
	SeedNumber     int
	Type           SeedType
	DivisionWinner bool

	// Record snapshot at seeding time.
	Wins   int
	Losses int
	Ties   int
	WinPct float64

	// Populated from the teams table on read, not persisted with the seed.
	TeamName string
	TeamAbbr string

	Created time.Time
}

// BracketTeam is a seed entering a bracket round. Provisional entries stand
// in for the winner of an undecided prior-round game so a bracket skeleton
// can still be produced; consumers should present them as such.
type BracketTeam struct {
	Seed        PlayoffSeed
	Provisional bool
}
