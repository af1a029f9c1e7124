// Package dto holds the wire shapes of the relationships API.
package dto

import (
	"time"

	"tend_backend/internal/feature/relationships/domain/entity"
)

// CreateRelationshipReq is the body of POST /api/relationships.
type CreateRelationshipReq struct {
	OwnerEmail  string          `json:"ownerEmail"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Details     *entity.Details `json:"details"`
}

// UpdateRelationshipReq is the body of PATCH /api/relationships/:id.
type UpdateRelationshipReq struct {
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Status      *string         `json:"status"`
	Details     *entity.Details `json:"details"`
}

// RelationshipResponse is a stored relationship.
type RelationshipResponse struct {
	ID          string         `json:"id"`
	OwnerEmail  string         `json:"ownerEmail"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Status      string         `json:"status"`
	Details     entity.Details `json:"details"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// NewRelationshipResponse maps an entity to its wire form.
func NewRelationshipResponse(r *entity.Relationship) RelationshipResponse {
	return RelationshipResponse{
		ID:          r.ID,
		OwnerEmail:  r.OwnerEmail,
		Name:        r.Name,
		Description: r.Description,
		Status:      string(r.Status),
		Details:     r.Details,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
