// Package adapters provides GORM persistence for north stars.
package adapters

import (
	"time"

	"tend_backend/internal/feature/northstar/domain/entity"
)

// NorthStarModel is the GORM model for the north_stars table.
type NorthStarModel struct {
	ID          string             `gorm:"primaryKey;size:27"`
	OwnerEmail  string             `gorm:"size:255;not null;uniqueIndex"`
	Haiku       string             `gorm:"type:text;not null"`
	North       []entity.Direction `gorm:"type:text;serializer:json;not null"`
	East        []entity.Direction `gorm:"type:text;serializer:json;not null"`
	South       []entity.Direction `gorm:"type:text;serializer:json;not null"`
	West        []entity.Direction `gorm:"type:text;serializer:json;not null"`
	MetaVersion int                `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName sets the table name.
func (NorthStarModel) TableName() string {
	return "north_stars"
}

// ToEntity converts the model into a domain entity.
func (m *NorthStarModel) ToEntity() *entity.NorthStar {
	return &entity.NorthStar{
		ID:          m.ID,
		OwnerEmail:  m.OwnerEmail,
		Haiku:       m.Haiku,
		North:       m.North,
		East:        m.East,
		South:       m.South,
		West:        m.West,
		MetaVersion: m.MetaVersion,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// NorthStarModelFromEntity converts a domain entity into a model.
func NorthStarModelFromEntity(ns *entity.NorthStar) *NorthStarModel {
	return &NorthStarModel{
		ID:          ns.ID,
		OwnerEmail:  ns.OwnerEmail,
		Haiku:       ns.Haiku,
		North:       ns.North,
		East:        ns.East,
		South:       ns.South,
		West:        ns.West,
		MetaVersion: ns.MetaVersion,
		CreatedAt:   ns.CreatedAt,
		UpdatedAt:   ns.UpdatedAt,
	}
}
