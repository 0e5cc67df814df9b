package model

// TeamRecord is a team's derived standings row. It is recomputed on demand
// from the completed-games log, never stored. The head-to-head, division and
// conference sub-records count wins and losses only; ties contribute to the
// overall record but not to the tie-break ratios.
type TeamRecord struct {
	Team   Team
	Wins   int
	Losses int
	Ties   int

	HeadToHeadWins   int
	HeadToHeadLosses int
	DivisionWins     int
	DivisionLosses   int
	ConferenceWins   int
	ConferenceLosses int

	PointsFor     int
	PointsAgainst int
}

func (r *TeamRecord) GamesPlayed() int {
	return r.Wins + r.Losses + r.Ties
}

func (r *TeamRecord) WinPct() float64 {
	return ratio(r.Wins, r.GamesPlayed())
}

func (r *TeamRecord) HeadToHeadPct() float64 {
	return ratio(r.HeadToHeadWins, r.HeadToHeadWins+r.HeadToHeadLosses)
}

func (r *TeamRecord) DivisionPct() float64 {
	return ratio(r.DivisionWins, r.DivisionWins+r.DivisionLosses)
}

func (r *TeamRecord) ConferencePct() float64 {
	return ratio(r.ConferenceWins, r.ConferenceWins+r.ConferenceLosses)
}

func (r *TeamRecord) PointsDiff() int {
	return r.PointsFor - r.PointsAgainst
}

// A team with no games defaults to 0, not an error.
func ratio(wins, games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(wins) / float64(games)
}
