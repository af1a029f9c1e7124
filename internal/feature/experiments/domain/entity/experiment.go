// Package entity defines the behavioural experiments a user runs.
package entity

import "time"

// MinRating and MaxRating bound an experiment's self-assessed rating.
const (
	MinRating = 1
	MaxRating = 5
)

// Experiment is one challenge, hypothesis, intervention and measure, with
// optional learnings and rating filled in afterwards.
type Experiment struct {
	ID           string    `json:"id"`
	OwnerEmail   string    `json:"ownerEmail"`
	Challenge    string    `json:"challenge"`
	Hypothesis   string    `json:"hypothesis"`
	Intervention string    `json:"intervention"`
	Measure      string    `json:"measure"`
	Learnings    *string   `json:"learnings"`
	Rating       *int      `json:"rating"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ValidRating reports whether r is an allowed rating. Nil clears the rating and is allowed.
func ValidRating(r *int) bool {
	return r == nil || (*r >= MinRating && *r <= MaxRating)
}
