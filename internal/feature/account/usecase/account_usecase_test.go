package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tend_backend/internal/feature/account/usecase"
	authentity "tend_backend/internal/feature/auth/domain/entity"
)

type mockAccountRepository struct {
	deleted usecase.Deleted
	err     error
	calls   int
}

func (m *mockAccountRepository) DeleteAccount(context.Context, string, string) (usecase.Deleted, error) {
	m.calls++
	return m.deleted, m.err
}

type mockRevoker struct {
	userIDs []string
	err     error
}

func (m *mockRevoker) InvalidateAllSessions(_ context.Context, userID string) error {
	m.userIDs = append(m.userIDs, userID)
	return m.err
}

type mockCache struct{ owners []string }

func (m *mockCache) Invalidate(_ context.Context, ownerEmail string) error {
	m.owners = append(m.owners, ownerEmail)
	return nil
}

var alice = &authentity.User{ID: "u1", Email: "alice@example.com"}

func TestAccountUsecase_DeleteAccount(t *testing.T) {
	t.Parallel()

	repo := &mockAccountRepository{deleted: usecase.Deleted{Relationships: 3}}
	revoker := &mockRevoker{}
	cache := &mockCache{}

	d, err := usecase.NewAccountUsecase(repo, revoker, cache).DeleteAccount(context.Background(), alice)

	require.NoError(t, err)
	assert.Equal(t, int64(3), d.Relationships)
	assert.Equal(t, []string{"u1"}, revoker.userIDs)
	assert.Equal(t, []string{"alice@example.com"}, cache.owners)
}

func TestAccountUsecase_DeleteAccount_RepositoryFailure(t *testing.T) {
	t.Parallel()

	errDB := errors.New("database error")
	revoker := &mockRevoker{}

	_, err := usecase.NewAccountUsecase(&mockAccountRepository{err: errDB}, revoker).DeleteAccount(context.Background(), alice)

	assert.ErrorIs(t, err, errDB)
	assert.Empty(t, revoker.userIDs, "sessions stay when nothing was deleted")
}

func TestAccountUsecase_DeleteAccount_RevokeFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	revoker := &mockRevoker{err: errors.New("redis down")}

	_, err := usecase.NewAccountUsecase(&mockAccountRepository{}, revoker).DeleteAccount(context.Background(), alice)

	assert.NoError(t, err)
}
