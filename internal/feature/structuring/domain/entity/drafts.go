// Package entity defines the drafts the language model produces from free text.
// Drafts are returned to the client for review and are never stored directly.
package entity

import (
	nsentity "tend_backend/internal/feature/northstar/domain/entity"
	relentity "tend_backend/internal/feature/relationships/domain/entity"
)

// RelationshipDraft is a mapped connection proposed from a free-text description.
type RelationshipDraft struct {
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description" validate:"required"`
	Status      string            `json:"status" validate:"required,oneof='on track' strained"`
	Details     relentity.Details `json:"details"`
}

// NorthStarDraft is a north star proposed from a vision and a current state.
type NorthStarDraft struct {
	Haiku string               `json:"haiku" validate:"required"`
	North []nsentity.Direction `json:"north" validate:"required,min=1,dive"`
	East  []nsentity.Direction `json:"east" validate:"required,min=1,dive"`
	South []nsentity.Direction `json:"south" validate:"required,min=1,dive"`
	West  []nsentity.Direction `json:"west" validate:"required,min=1,dive"`
}

// ExperimentDraft is an experiment proposed from a described challenge.
type ExperimentDraft struct {
	Challenge    string `json:"challenge" validate:"required"`
	Hypothesis   string `json:"hypothesis" validate:"required"`
	Intervention string `json:"intervention" validate:"required"`
	Measure      string `json:"measure" validate:"required"`
}
