// Package adapters provides GORM persistence for account deletion.
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"tend_backend/internal/feature/account/usecase"
)

type accountPostgres struct {
	db *gorm.DB
}

// Compile-time check to ensure accountPostgres implements AccountRepository.
var _ usecase.AccountRepository = (*accountPostgres)(nil)

// NewAccountPostgres creates a new instance of accountPostgres.
func NewAccountPostgres(db *gorm.DB) *accountPostgres {
	return &accountPostgres{db: db}
}

// DeleteAccount removes the owned rows and then the user row. Either all of it
// is gone or none of it is.
func (p *accountPostgres) DeleteAccount(ctx context.Context, userID, email string) (usecase.Deleted, error) {
	var d usecase.Deleted
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []struct {
			table string
			count *int64
		}{
			{"relationships", &d.Relationships},
			{"north_stars", &d.NorthStars},
			{"experiments", &d.Experiments},
		}
		for _, o := range owned {
			res := tx.Exec("DELETE FROM "+o.table+" WHERE owner_email = ?", email)
			if res.Error != nil {
				return fmt.Errorf("delete %s: %w", o.table, res.Error)
			}
			*o.count = res.RowsAffected
		}

		if err := tx.Exec("DELETE FROM sessions WHERE user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("delete sessions: %w", err)
		}
		if err := tx.Exec("DELETE FROM users WHERE id = ?", userID).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return usecase.Deleted{}, err
	}
	return d, nil
}
