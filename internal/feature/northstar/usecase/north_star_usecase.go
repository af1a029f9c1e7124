// Package usecase implements north star reads and saves.
package usecase

import (
	"context"
	"errors"
	"strings"

	authusecase "tend_backend/internal/feature/auth/usecase"
	"tend_backend/internal/feature/northstar/domain/entity"
)

var (
	// ErrNorthStarNotFound is returned when the owner has no north star yet.
	ErrNorthStarNotFound = errors.New("north star not found")
	// ErrMissingFields is returned when the haiku or a direction is missing.
	ErrMissingFields = errors.New("missing required fields")
)

// NorthStarRepository abstracts north star persistence.
type NorthStarRepository interface {
	FindByOwner(ctx context.Context, ownerEmail string) (*entity.NorthStar, error)
	// Upsert creates the owner's north star or replaces its content, bumping MetaVersion.
	Upsert(ctx context.Context, ns *entity.NorthStar) (*entity.NorthStar, error)
}

// NorthStarUsecase reads and saves north stars. Callers authorize the owner first.
type NorthStarUsecase struct {
	repo NorthStarRepository
}

// NewNorthStarUsecase creates a new NorthStarUsecase.
func NewNorthStarUsecase(repo NorthStarRepository) *NorthStarUsecase {
	return &NorthStarUsecase{repo: repo}
}

// Get returns the owner's north star, or nil when there is none.
func (u *NorthStarUsecase) Get(ctx context.Context, ownerEmail string) (*entity.NorthStar, error) {
	ns, err := u.repo.FindByOwner(ctx, authusecase.NormalizeEmail(ownerEmail))
	if errors.Is(err, ErrNorthStarNotFound) {
		return nil, nil
	}
	return ns, err
}

// Save validates ns and upserts it for its owner.
func (u *NorthStarUsecase) Save(ctx context.Context, ns entity.NorthStar) (*entity.NorthStar, error) {
	ns.OwnerEmail = authusecase.NormalizeEmail(ns.OwnerEmail)
	ns.Haiku = strings.TrimSpace(ns.Haiku)
	if ns.OwnerEmail == "" || ns.Haiku == "" || ns.North == nil || ns.East == nil || ns.South == nil || ns.West == nil {
		return nil, ErrMissingFields
	}
	return u.repo.Upsert(ctx, &ns)
}
