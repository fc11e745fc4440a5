package prefs

import "strings"

// Budget levels the extractor is allowed to produce.
const (
	BudgetLow    = "low"
	BudgetMedium = "medium"
	BudgetHigh   = "high"
)

// Record is the accumulated travel preference state of a session.
// Empty strings and empty slices mean "not stated yet".
type Record struct {
	City          string   `json:"city,omitempty"`
	TimeRange     string   `json:"time_range,omitempty"`
	Budget        string   `json:"budget,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	StartingPoint string   `json:"starting_point,omitempty"`
	Persona       string   `json:"persona,omitempty"`
}

// Merge fills r with the latest extraction result. A field the new
// extraction reports as absent never clears a previously known value.
func (r Record) Merge(next Record) Record {
	result := r

	if next.City != "" {
		result.City = next.City
	}
	if next.TimeRange != "" {
		result.TimeRange = next.TimeRange
	}
	if next.Budget != "" {
		result.Budget = next.Budget
	}
	if len(next.Interests) > 0 {
		result.Interests = next.Interests
	}
	if next.StartingPoint != "" {
		result.StartingPoint = next.StartingPoint
	}
	if next.Persona != "" {
		result.Persona = next.Persona
	}

	return result
}

// Complete reports whether every field needed to plan a tour is known.
func (r Record) Complete() bool {
	return r.City != "" &&
		r.TimeRange != "" &&
		r.Budget != "" &&
		r.StartingPoint != "" &&
		len(r.Interests) > 0
}

func (r *Record) sanitize() {
	r.City = strings.TrimSpace(r.City)
	r.TimeRange = strings.TrimSpace(r.TimeRange)
	r.StartingPoint = strings.TrimSpace(r.StartingPoint)
	r.Persona = strings.TrimSpace(r.Persona)

	switch budget := strings.ToLower(strings.TrimSpace(r.Budget)); budget {
	case BudgetLow, BudgetMedium, BudgetHigh:
		r.Budget = budget
	default:
		r.Budget = ""
	}

	interests := make([]string, 0, len(r.Interests))
	for _, interest := range r.Interests {
		interest = strings.ToLower(strings.TrimSpace(interest))
		if interest != "" {
			interests = append(interests, interest)
		}
	}
	r.Interests = interests
}
