package services_test

import (
	"testing"

	"courier/internal/core/domain/model/user"
	"courier/internal/core/domain/services"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerWithBalance(t *testing.T, username string, balance int64) *user.User {
	t.Helper()
	u, err := user.NewCustomer(username, "pw", user.Profile{})
	require.NoError(t, err)
	require.NoError(t, u.AdjustBalance(balance))
	return u
}

func TestLedger_Transfer(t *testing.T) {
	ledger := services.NewLedger()

	t.Run("moves the amount", func(t *testing.T) {
		alice := customerWithBalance(t, "alice", 100)
		admin, err := user.NewAdministrator("123", user.Profile{})
		require.NoError(t, err)

		require.NoError(t, ledger.Transfer(alice, admin, 30))

		assert.Equal(t, int64(70), alice.Balance())
		assert.Equal(t, int64(30), admin.Balance())
	})

	t.Run("insufficient funds leaves both untouched", func(t *testing.T) {
		alice := customerWithBalance(t, "alice", 10)
		bob := customerWithBalance(t, "bob", 5)

		err := ledger.Transfer(alice, bob, 11)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, int64(10), alice.Balance())
		assert.Equal(t, int64(5), bob.Balance())
	})

	t.Run("credit overflow does not debit", func(t *testing.T) {
		alice := customerWithBalance(t, "alice", 10)
		bob := customerWithBalance(t, "bob", user.MaxBalance)

		err := ledger.Transfer(alice, bob, 1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, int64(10), alice.Balance())
		assert.Equal(t, user.MaxBalance, bob.Balance())
	})

	t.Run("same account", func(t *testing.T) {
		alice := customerWithBalance(t, "alice", 10)

		err := ledger.Transfer(alice, alice, 1)

		require.ErrorIs(t, err, services.ErrSameAccount)
	})

	t.Run("negative amount", func(t *testing.T) {
		alice := customerWithBalance(t, "alice", 10)
		bob := customerWithBalance(t, "bob", 10)

		require.Error(t, ledger.Transfer(alice, bob, -1))
	})

	t.Run("unconstructed user", func(t *testing.T) {
		alice := customerWithBalance(t, "alice", 10)

		require.ErrorIs(t, ledger.Transfer(alice, &user.User{}, 1), user.ErrUserIsNotConstructed)
	})
}
