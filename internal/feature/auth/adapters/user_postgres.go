// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/ksuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tend_backend/internal/feature/auth/domain/entity"
	"tend_backend/internal/feature/auth/usecase"
	"tend_backend/internal/shared/dberrors"
)

// userPostgres is a GORM implementation of the UserRepository interface.
// Production runs it on PostgreSQL; tests run it on in-memory SQLite.
type userPostgres struct {
	db *gorm.DB
}

// Compile-time check to ensure userPostgres implements UserRepository.
var _ usecase.UserRepository = (*userPostgres)(nil)

// NewUserPostgres creates a new instance of userPostgres.
func NewUserPostgres(db *gorm.DB) *userPostgres {
	return &userPostgres{db: db}
}

// Create inserts a user. A duplicate email yields usecase.ErrEmailAlreadyExists.
func (r *userPostgres) Create(ctx context.Context, u *entity.User) error {
	if u == nil {
		return errors.New("user is nil")
	}
	if u.ID == "" {
		u.ID = ksuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if dberrors.IsUniqueViolation(err) {
			return usecase.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

// UpsertPassword inserts or updates the password of the user identified by email.
// The unique index on email arbitrates concurrent calls; password_created_at is only
// filled when it was empty before.
func (r *userPostgres) UpsertPassword(ctx context.Context, email, passwordHash string, at time.Time) (*entity.User, error) {
	u := &entity.User{
		ID:                ksuid.New().String(),
		Email:             email,
		PasswordHash:      &passwordHash,
		PasswordCreatedAt: &at,
		PasswordUpdatedAt: &at,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"password_hash":       passwordHash,
			"password_updated_at": at,
			"password_created_at": gorm.Expr("COALESCE(users.password_created_at, ?)", at),
			"updated_at":          at,
		}),
	}).Create(u).Error
	if err != nil {
		return nil, err
	}

	// The insert may have turned into an update of another row, so reload by email.
	return r.FindByEmail(ctx, email)
}

// FindByEmail returns usecase.ErrUserNotFound when no user matches.
func (r *userPostgres) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByID returns usecase.ErrUserNotFound when no user matches.
func (r *userPostgres) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
