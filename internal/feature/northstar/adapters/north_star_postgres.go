package adapters

import (
	"context"
	"errors"

	"github.com/segmentio/ksuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tend_backend/internal/feature/northstar/domain/entity"
	"tend_backend/internal/feature/northstar/usecase"
)

type northStarPostgres struct {
	db *gorm.DB
}

// Compile-time check to ensure northStarPostgres implements NorthStarRepository.
var _ usecase.NorthStarRepository = (*northStarPostgres)(nil)

// NewNorthStarPostgres creates a new instance of northStarPostgres.
func NewNorthStarPostgres(db *gorm.DB) *northStarPostgres {
	return &northStarPostgres{db: db}
}

func (p *northStarPostgres) FindByOwner(ctx context.Context, ownerEmail string) (*entity.NorthStar, error) {
	var m NorthStarModel
	if err := p.db.WithContext(ctx).Where("owner_email = ?", ownerEmail).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNorthStarNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Upsert relies on the unique owner_email index so concurrent saves of one owner
// collapse into a single row with a monotonically growing meta_version.
func (p *northStarPostgres) Upsert(ctx context.Context, ns *entity.NorthStar) (*entity.NorthStar, error) {
	m := NorthStarModelFromEntity(ns)
	m.ID = ksuid.New().String()
	m.MetaVersion = 1

	err := p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_email"}},
		DoUpdates: append(
			clause.AssignmentColumns([]string{"haiku", "north", "east", "south", "west", "updated_at"}),
			clause.Assignment{Column: clause.Column{Name: "meta_version"}, Value: gorm.Expr("north_stars.meta_version + 1")},
		),
	}).Create(m).Error
	if err != nil {
		return nil, err
	}
	return p.FindByOwner(ctx, m.OwnerEmail)
}
