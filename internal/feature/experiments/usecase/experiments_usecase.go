// Package usecase implements experiment tracking.
package usecase

import (
	"context"
	"errors"
	"strings"

	authusecase "tend_backend/internal/feature/auth/usecase"
	"tend_backend/internal/feature/experiments/domain/entity"
)

var (
	// ErrExperimentNotFound is returned when no experiment has the requested id.
	ErrExperimentNotFound = errors.New("experiment not found")
	// ErrMissingFields is returned when a required field is empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidRating is returned for a rating outside 1..5.
	ErrInvalidRating = errors.New("rating must be an integer between 1 and 5")
)

// ExperimentRepository abstracts experiment persistence.
type ExperimentRepository interface {
	Create(ctx context.Context, e *entity.Experiment) error
	// ListByOwner returns the owner's experiments, newest first.
	ListByOwner(ctx context.Context, ownerEmail string) ([]entity.Experiment, error)
	FindByID(ctx context.Context, id string) (*entity.Experiment, error)
	// UpdateOutcome stores learnings and rating.
	UpdateOutcome(ctx context.Context, e *entity.Experiment) error
	Delete(ctx context.Context, id string) error
}

// CreateInput carries the fields of a new experiment.
type CreateInput struct {
	OwnerEmail   string
	Challenge    string
	Hypothesis   string
	Intervention string
	Measure      string
	Learnings    string
}

// Outcome carries the after-the-fact fields of an experiment.
// A field is only applied when its Set flag is true; a nil value clears it.
type Outcome struct {
	RatingSet    bool
	Rating       *int
	LearningsSet bool
	Learnings    *string
}

// ExperimentsUsecase tracks experiments. Callers authorize the owner first.
type ExperimentsUsecase struct {
	repo ExperimentRepository
}

// NewExperimentsUsecase creates a new ExperimentsUsecase.
func NewExperimentsUsecase(repo ExperimentRepository) *ExperimentsUsecase {
	return &ExperimentsUsecase{repo: repo}
}

// List returns the experiments of ownerEmail, newest first.
func (u *ExperimentsUsecase) List(ctx context.Context, ownerEmail string) ([]entity.Experiment, error) {
	return u.repo.ListByOwner(ctx, authusecase.NormalizeEmail(ownerEmail))
}

// Get returns one experiment by id.
func (u *ExperimentsUsecase) Get(ctx context.Context, id string) (*entity.Experiment, error) {
	return u.repo.FindByID(ctx, id)
}

// Create validates and stores a new experiment. Blank learnings are stored as null.
func (u *ExperimentsUsecase) Create(ctx context.Context, in CreateInput) (*entity.Experiment, error) {
	e := &entity.Experiment{
		OwnerEmail:   authusecase.NormalizeEmail(in.OwnerEmail),
		Challenge:    strings.TrimSpace(in.Challenge),
		Hypothesis:   strings.TrimSpace(in.Hypothesis),
		Intervention: strings.TrimSpace(in.Intervention),
		Measure:      strings.TrimSpace(in.Measure),
	}
	if e.OwnerEmail == "" || e.Challenge == "" || e.Hypothesis == "" || e.Intervention == "" || e.Measure == "" {
		return nil, ErrMissingFields
	}
	if l := strings.TrimSpace(in.Learnings); l != "" {
		e.Learnings = &l
	}

	if err := u.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// RecordOutcome applies an outcome to an already loaded experiment and stores it.
func (u *ExperimentsUsecase) RecordOutcome(ctx context.Context, e *entity.Experiment, out Outcome) (*entity.Experiment, error) {
	next := *e
	if out.RatingSet {
		if !entity.ValidRating(out.Rating) {
			return nil, ErrInvalidRating
		}
		next.Rating = out.Rating
	}
	if out.LearningsSet {
		next.Learnings = out.Learnings
	}

	if err := u.repo.UpdateOutcome(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Delete removes an experiment by id.
func (u *ExperimentsUsecase) Delete(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, id)
}
