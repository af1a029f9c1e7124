// Package dto holds the wire shapes of the experiments API.
package dto

import (
	"encoding/json"
	"errors"
	"math"

	"tend_backend/internal/feature/experiments/usecase"
)

// CreateExperimentReq is the body of POST /api/experiments.
type CreateExperimentReq struct {
	OwnerEmail   string `json:"ownerEmail"`
	Challenge    string `json:"challenge"`
	Hypothesis   string `json:"hypothesis"`
	Intervention string `json:"intervention"`
	Measure      string `json:"measure"`
	Learnings    string `json:"learnings"`
}

// ErrEmptyOutcome is returned when a PATCH body names neither rating nor learnings.
var ErrEmptyOutcome = errors.New("no outcome fields")

// OutcomeReq is the body of PATCH /api/experiments/:id.
// Keys are kept raw so an explicit null can be told apart from an absent key.
type OutcomeReq struct {
	Rating    json.RawMessage `json:"rating"`
	Learnings json.RawMessage `json:"learnings"`
}

// ToOutcome decodes the request. A rating must be null or a whole number;
// range checks happen in the usecase.
func (r OutcomeReq) ToOutcome() (usecase.Outcome, error) {
	var out usecase.Outcome
	if len(r.Rating) > 0 {
		out.RatingSet = true
		if string(r.Rating) != "null" {
			var f float64
			if err := json.Unmarshal(r.Rating, &f); err != nil || f != math.Trunc(f) {
				return out, usecase.ErrInvalidRating
			}
			if f < math.MinInt32 || f > math.MaxInt32 {
				return out, usecase.ErrInvalidRating
			}
			n := int(f)
			out.Rating = &n
		}
	}
	if len(r.Learnings) > 0 {
		out.LearningsSet = true
		if string(r.Learnings) != "null" {
			var s string
			if err := json.Unmarshal(r.Learnings, &s); err != nil {
				return out, err
			}
			out.Learnings = &s
		}
	}
	if !out.RatingSet && !out.LearningsSet {
		return out, ErrEmptyOutcome
	}
	return out, nil
}
