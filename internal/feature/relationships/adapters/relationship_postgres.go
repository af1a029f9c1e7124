package adapters

import (
	"context"
	"errors"

	"github.com/segmentio/ksuid"
	"gorm.io/gorm"

	"tend_backend/internal/feature/relationships/domain/entity"
	"tend_backend/internal/feature/relationships/usecase"
)

type relationshipPostgres struct {
	db *gorm.DB
}

// Compile-time check to ensure relationshipPostgres implements RelationshipRepository.
var _ usecase.RelationshipRepository = (*relationshipPostgres)(nil)

// NewRelationshipPostgres creates a new instance of relationshipPostgres.
func NewRelationshipPostgres(db *gorm.DB) *relationshipPostgres {
	return &relationshipPostgres{db: db}
}

// Create inserts r and fills in its id and timestamps.
func (p *relationshipPostgres) Create(ctx context.Context, r *entity.Relationship) error {
	if r.ID == "" {
		r.ID = ksuid.New().String()
	}
	m := RelationshipModelFromEntity(r)
	if err := p.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	r.CreatedAt, r.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (p *relationshipPostgres) ListByOwner(ctx context.Context, ownerEmail string) ([]entity.Relationship, error) {
	var rows []RelationshipModel
	err := p.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.Relationship, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}

func (p *relationshipPostgres) FindByID(ctx context.Context, id string) (*entity.Relationship, error) {
	var m RelationshipModel
	if err := p.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRelationshipNotFound
		}
		return nil, err
	}
	r := m.ToEntity()
	return &r, nil
}

// Update rewrites the mutable columns of r. Owner and creation time never change.
func (p *relationshipPostgres) Update(ctx context.Context, r *entity.Relationship) error {
	m := RelationshipModelFromEntity(r)
	result := p.db.WithContext(ctx).
		Model(&RelationshipModel{ID: r.ID}).
		Select("name", "description", "status", "details", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrRelationshipNotFound
	}
	r.UpdatedAt = m.UpdatedAt
	return nil
}

func (p *relationshipPostgres) Delete(ctx context.Context, id string) error {
	result := p.db.WithContext(ctx).Where("id = ?", id).Delete(&RelationshipModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrRelationshipNotFound
	}
	return nil
}
