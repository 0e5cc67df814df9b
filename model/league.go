package model

// League carries the configuration values that drive schedule and playoff
// generation. Playoff round weeks are derived from RegularSeasonWeeks, and
// PlayoffTeamsPerConf controls bracket size and byes.
type League struct {
	ID                  int32
	Name                string
	PreseasonWeeks      int
	RegularSeasonWeeks  int
	PlayoffTeamsPerConf int
	Active              bool
}

type Conference struct {
	ID           int32
	LeagueID     int32
	Name         string
	Abbreviation string
}

type Division struct {
	ID           int32
	ConferenceID int32
	Name         string
}

type Team struct {
	ID           int32
	LeagueID     int32
	ConferenceID int32
	DivisionID   int32
	Name         string
	Abbreviation string
	Active       bool
}
