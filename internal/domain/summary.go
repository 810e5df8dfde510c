package domain

// Summary holds statistics derived from a history snapshot. Averages are in
// seconds and left unrounded.
type Summary struct {
	TotalCount             int
	AverageDurationSeconds float64
	AverageIntervalSeconds float64
	MostRecentCompleted    *Event
}

// Progress returns Ready until at least one completed event exists.
func (s Summary) Progress() ProgressLabel {
	if s.TotalCount > 0 {
		return ProgressActive
	}
	return ProgressReady
}
