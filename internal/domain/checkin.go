package domain

import (
	"sort"
	"strings"

	"github.com/gookit/validate"
)

// Level bounds for energy, mood and fatigue.
const (
	MinLevel = 0
	MaxLevel = 10
)

// Plan categories, in display order.
const (
	CategoryExercise   = "Exercise"
	CategoryRest       = "Rest"
	CategoryWellness   = "Wellness"
	CategoryMedication = "Medication"
)

// Plan is the per-category recommendation set derived from one check-in.
type Plan struct {
	Exercise   string `json:"Exercise"`
	Rest       string `json:"Rest"`
	Wellness   string `json:"Wellness"`
	Medication string `json:"Medication"`
}

// PlanItem is one category/recommendation pair.
type PlanItem struct {
	Category       string
	Recommendation string
}

// Items returns the plan in fixed category order.
func (p Plan) Items() []PlanItem {
	return []PlanItem{
		{CategoryExercise, p.Exercise},
		{CategoryRest, p.Rest},
		{CategoryWellness, p.Wellness},
		{CategoryMedication, p.Medication},
	}
}

// Complete reports whether every category carries a recommendation.
func (p Plan) Complete() bool {
	for _, item := range p.Items() {
		if strings.TrimSpace(item.Recommendation) == "" {
			return false
		}
	}
	return true
}

// CheckIn is one submission of self-reported levels plus free-text notes.
type CheckIn struct {
	Energy  int    `validate:"min:0|max:10"`
	Mood    int    `validate:"min:0|max:10"`
	Fatigue int    `validate:"min:0|max:10"`
	Notes   string `validate:"maxLen:2000"`
}

// Translates gives validation messages lower-case field names.
func (c CheckIn) Translates() map[string]string {
	return validate.MS{
		"Energy":  "energy",
		"Mood":    "mood",
		"Fatigue": "fatigue",
		"Notes":   "notes",
	}
}

// Validate rejects levels outside [0,10] and oversized notes.
func (c CheckIn) Validate() error {
	v := validate.Struct(&c)
	if v.Validate() {
		return nil
	}
	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	if len(fields) == 0 {
		return &ValidationError{Reason: v.Errors.One()}
	}
	sort.Strings(fields)
	field := fields[0]
	return &ValidationError{
		Field:  strings.ToLower(field),
		Reason: v.Errors.FieldOne(field),
	}
}

// LogEntry is the persisted record of one check-in. It is never mutated
// after it is appended to the state.
type LogEntry struct {
	Date    Date   `json:"date"`
	Energy  int    `json:"energy"`
	Mood    int    `json:"mood"`
	Fatigue int    `json:"fatigue"`
	Notes   string `json:"notes"`
	Plan    Plan   `json:"plan"`
	AIReply string `json:"aiReply,omitempty"`
}

// ChatTurn is one user message and the reply it received.
type ChatTurn struct {
	User string `json:"user"`
	AI   string `json:"ai"`
}
