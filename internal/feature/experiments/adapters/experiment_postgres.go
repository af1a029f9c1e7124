package adapters

import (
	"context"
	"errors"

	"github.com/segmentio/ksuid"
	"gorm.io/gorm"

	"tend_backend/internal/feature/experiments/domain/entity"
	"tend_backend/internal/feature/experiments/usecase"
)

type experimentPostgres struct {
	db *gorm.DB
}

// Compile-time check to ensure experimentPostgres implements ExperimentRepository.
var _ usecase.ExperimentRepository = (*experimentPostgres)(nil)

// NewExperimentPostgres creates a new instance of experimentPostgres.
func NewExperimentPostgres(db *gorm.DB) *experimentPostgres {
	return &experimentPostgres{db: db}
}

// Create inserts e and fills in its id and timestamps.
func (p *experimentPostgres) Create(ctx context.Context, e *entity.Experiment) error {
	if e.ID == "" {
		e.ID = ksuid.New().String()
	}
	m := ExperimentModelFromEntity(e)
	if err := p.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e.CreatedAt, e.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

func (p *experimentPostgres) ListByOwner(ctx context.Context, ownerEmail string) ([]entity.Experiment, error) {
	var rows []ExperimentModel
	err := p.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.Experiment, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out, nil
}

func (p *experimentPostgres) FindByID(ctx context.Context, id string) (*entity.Experiment, error) {
	var m ExperimentModel
	if err := p.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrExperimentNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// UpdateOutcome writes learnings and rating, including nulls.
func (p *experimentPostgres) UpdateOutcome(ctx context.Context, e *entity.Experiment) error {
	m := ExperimentModelFromEntity(e)
	result := p.db.WithContext(ctx).
		Model(&ExperimentModel{ID: e.ID}).
		Select("learnings", "rating", "updated_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrExperimentNotFound
	}
	e.UpdatedAt = m.UpdatedAt
	return nil
}

func (p *experimentPostgres) Delete(ctx context.Context, id string) error {
	result := p.db.WithContext(ctx).Where("id = ?", id).Delete(&ExperimentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrExperimentNotFound
	}
	return nil
}
