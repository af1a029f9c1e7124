// Package usecase implements the relationship map operations.
package usecase

import (
	"context"
	"fmt"
	"strings"

	authusecase "tend_backend/internal/feature/auth/usecase"
	"tend_backend/internal/feature/relationships/domain/entity"
)

// CreateInput carries the fields of a new relationship.
type CreateInput struct {
	OwnerEmail  string
	Name        string
	Description string
	Status      string
	Details     *entity.Details
}

// Patch carries the fields to change. Nil fields are left alone.
type Patch struct {
	Name        *string
	Description *string
	Status      *string
	Details     *entity.Details
}

// RelationshipsUsecase reads and writes a user's relationship map.
// Callers authorize the owner before calling in.
type RelationshipsUsecase struct {
	repo RelationshipRepository
}

// NewRelationshipsUsecase creates a new RelationshipsUsecase.
func NewRelationshipsUsecase(repo RelationshipRepository) *RelationshipsUsecase {
	return &RelationshipsUsecase{repo: repo}
}

// List returns the relationships of ownerEmail, newest first.
func (u *RelationshipsUsecase) List(ctx context.Context, ownerEmail string) ([]entity.Relationship, error) {
	return u.repo.ListByOwner(ctx, authusecase.NormalizeEmail(ownerEmail))
}

// Get returns one relationship by id.
func (u *RelationshipsUsecase) Get(ctx context.Context, id string) (*entity.Relationship, error) {
	return u.repo.FindByID(ctx, id)
}

// Create validates and stores a new relationship.
func (u *RelationshipsUsecase) Create(ctx context.Context, in CreateInput) (*entity.Relationship, error) {
	owner := authusecase.NormalizeEmail(in.OwnerEmail)
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if owner == "" || name == "" || description == "" || in.Status == "" || in.Details == nil {
		return nil, ErrMissingFields
	}
	status, ok := entity.ParseStatus(in.Status)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}

	r := &entity.Relationship{
		OwnerEmail:  owner,
		Name:        name,
		Description: description,
		Status:      status,
		Details:     *in.Details,
	}
	if err := u.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Update applies patch to an already loaded relationship and stores it.
func (u *RelationshipsUsecase) Update(ctx context.Context, r *entity.Relationship, patch Patch) (*entity.Relationship, error) {
	next := *r
	if patch.Name != nil {
		if next.Name = strings.TrimSpace(*patch.Name); next.Name == "" {
			return nil, ErrMissingFields
		}
	}
	if patch.Description != nil {
		if next.Description = strings.TrimSpace(*patch.Description); next.Description == "" {
			return nil, ErrMissingFields
		}
	}
	if patch.Status != nil {
		status, ok := entity.ParseStatus(*patch.Status)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *patch.Status)
		}
		next.Status = status
	}
	if patch.Details != nil {
		next.Details = *patch.Details
	}

	if err := u.repo.Update(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// Delete removes a relationship by id.
func (u *RelationshipsUsecase) Delete(ctx context.Context, id string) error {
	return u.repo.Delete(ctx, id)
}
