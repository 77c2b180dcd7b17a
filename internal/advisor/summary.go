package advisor

import "github.com/alexanderramin/healthtab/internal/domain"

// Summary holds averages over a trailing window of log entries.
type Summary struct {
	Count      int
	AvgEnergy  float64
	AvgMood    float64
	AvgFatigue float64
	From       domain.Date
	To         domain.Date
	// SupportDays counts entries whose plan suggested wellness support.
	SupportDays int
}

// Summarize averages the given entries. Order does not matter; From and
// To are the earliest and latest dates seen.
func Summarize(logs []domain.LogEntry) Summary {
	var s Summary
	if len(logs) == 0 {
		return s
	}
	var energy, mood, fatigue int
	for i, e := range logs {
		energy += e.Energy
		mood += e.Mood
		fatigue += e.Fatigue
		if e.Plan.Wellness == WellnessSupport {
			s.SupportDays++
		}
		if i == 0 || e.Date.Before(s.From) {
			s.From = e.Date
		}
		if i == 0 || s.To.Before(e.Date) {
			s.To = e.Date
		}
	}
	n := float64(len(logs))
	s.Count = len(logs)
	s.AvgEnergy = float64(energy) / n
	s.AvgMood = float64(mood) / n
	s.AvgFatigue = float64(fatigue) / n
	return s
}
