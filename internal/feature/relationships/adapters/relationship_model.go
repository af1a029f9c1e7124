// Package adapters provides GORM persistence for relationships.
package adapters

import (
	"time"

	"tend_backend/internal/feature/relationships/domain/entity"
)

// Stored spellings of the status column.
const (
	storedOnTrack  = "on_track"
	storedStrained = "strained"
)

// RelationshipModel is the GORM model for the relationships table.
type RelationshipModel struct {
	ID          string         `gorm:"primaryKey;size:27"`
	OwnerEmail  string         `gorm:"size:255;not null;index:idx_relationships_owner_created,priority:1"`
	Name        string         `gorm:"not null"`
	Description string         `gorm:"type:text;not null"`
	Status      string         `gorm:"size:16;not null"`
	Details     entity.Details `gorm:"type:text;serializer:json;not null"`
	CreatedAt   time.Time      `gorm:"index:idx_relationships_owner_created,priority:2"`
	UpdatedAt   time.Time
}

// TableName sets the table name.
func (RelationshipModel) TableName() string {
	return "relationships"
}

// ToEntity converts the model into a domain entity.
func (m *RelationshipModel) ToEntity() entity.Relationship {
	status := entity.StatusStrained
	if m.Status == storedOnTrack {
		status = entity.StatusOnTrack
	}
	return entity.Relationship{
		ID:          m.ID,
		OwnerEmail:  m.OwnerEmail,
		Name:        m.Name,
		Description: m.Description,
		Status:      status,
		Details:     m.Details,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// RelationshipModelFromEntity converts a domain entity into a model.
func RelationshipModelFromEntity(r *entity.Relationship) *RelationshipModel {
	status := storedStrained
	if r.Status == entity.StatusOnTrack {
		status = storedOnTrack
	}
	return &RelationshipModel{
		ID:          r.ID,
		OwnerEmail:  r.OwnerEmail,
		Name:        r.Name,
		Description: r.Description,
		Status:      status,
		Details:     r.Details,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
