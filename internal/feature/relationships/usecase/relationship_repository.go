package usecase

import (
	"context"

	"tend_backend/internal/feature/relationships/domain/entity"
)

// RelationshipRepository abstracts relationship persistence.
type RelationshipRepository interface {
	Create(ctx context.Context, r *entity.Relationship) error
	// ListByOwner returns the owner's relationships, newest first.
	ListByOwner(ctx context.Context, ownerEmail string) ([]entity.Relationship, error)
	FindByID(ctx context.Context, id string) (*entity.Relationship, error)
	Update(ctx context.Context, r *entity.Relationship) error
	Delete(ctx context.Context, id string) error
}
