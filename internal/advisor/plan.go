// Package advisor derives the daily plan and canned replies from a check-in.
// Everything here is pure: the same input always yields the same output.
package advisor

import (
	"strings"

	"github.com/alexanderramin/healthtab/internal/domain"
)

// HighFatigue is the fatigue level at or above which rest is prioritised.
const HighFatigue = 7

// LowMood is the mood level at or below which wellness support is suggested.
const LowMood = 3

const (
	ExerciseSkip   = "Skip exercise today and rest"
	ExerciseLight  = "Light stretching or a short walk (10–15 min)"
	ExerciseNormal = "Normal walk or exercise (20–30 min)"

	RestExtra  = "Extra rest recommended today"
	RestNormal = "Normal rest schedule"

	WellnessSupport = "Relaxing activity or talk to family"
	WellnessNormal  = "Maintain normal activities"

	MedicationReminder = "Take medication at 12:00 PM"
)

// GeneratePlan maps levels and notes to a plan. Categories are decided
// independently; within a category the first matching rule wins. Levels
// outside [0,10] are clamped. Energy is recorded but no rule reads it yet.
func GeneratePlan(energy, mood, fatigue int, notes string) domain.Plan {
	mood, fatigue = clamp(mood), clamp(fatigue)
	text := strings.ToLower(notes)

	tired := fatigue >= HighFatigue || strings.Contains(text, "tired")

	var p domain.Plan
	switch {
	case containsAny(text, "pain", "sore"):
		p.Exercise = ExerciseSkip
	case tired:
		p.Exercise = ExerciseLight
	default:
		p.Exercise = ExerciseNormal
	}

	if tired {
		p.Rest = RestExtra
	} else {
		p.Rest = RestNormal
	}

	if mood <= LowMood || containsAny(text, "sad", "stress") {
		p.Wellness = WellnessSupport
	} else {
		p.Wellness = WellnessNormal
	}

	p.Medication = MedicationReminder
	return p
}

func clamp(level int) int {
	if level < domain.MinLevel {
		return domain.MinLevel
	}
	if level > domain.MaxLevel {
		return domain.MaxLevel
	}
	return level
}

func containsAny(text string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
