// Package adapters provides GORM persistence for experiments.
package adapters

import (
	"time"

	"tend_backend/internal/feature/experiments/domain/entity"
)

// ExperimentModel is the GORM model for the experiments table.
type ExperimentModel struct {
	ID           string    `gorm:"primaryKey;size:27"`
	OwnerEmail   string    `gorm:"size:255;not null;index:idx_experiments_owner_created,priority:1"`
	Challenge    string    `gorm:"type:text;not null"`
	Hypothesis   string    `gorm:"type:text;not null"`
	Intervention string    `gorm:"type:text;not null"`
	Measure      string    `gorm:"type:text;not null"`
	Learnings    *string   `gorm:"type:text"`
	Rating       *int      `gorm:"check:chk_experiments_rating,rating IS NULL OR (rating BETWEEN 1 AND 5)"`
	CreatedAt    time.Time `gorm:"index:idx_experiments_owner_created,priority:2"`
	UpdatedAt    time.Time
}

// TableName sets the table name.
func (ExperimentModel) TableName() string {
	return "experiments"
}

// ToEntity converts the model into a domain entity.
func (m *ExperimentModel) ToEntity() entity.Experiment {
	return entity.Experiment{
		ID:           m.ID,
		OwnerEmail:   m.OwnerEmail,
		Challenge:    m.Challenge,
		Hypothesis:   m.Hypothesis,
		Intervention: m.Intervention,
		Measure:      m.Measure,
		Learnings:    m.Learnings,
		Rating:       m.Rating,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ExperimentModelFromEntity converts a domain entity into a model.
func ExperimentModelFromEntity(e *entity.Experiment) *ExperimentModel {
	return &ExperimentModel{
		ID:           e.ID,
		OwnerEmail:   e.OwnerEmail,
		Challenge:    e.Challenge,
		Hypothesis:   e.Hypothesis,
		Intervention: e.Intervention,
		Measure:      e.Measure,
		Learnings:    e.Learnings,
		Rating:       e.Rating,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
