package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/kaang457/vault/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// applyBalanceDelta reads an account under a row lock, applies the
// delta and writes the new balance back. It must run inside the
// caller's storage transaction: a transfer applies two deltas and
// either both commit or neither does.
func (svc *VaultService) applyBalanceDelta(ctx context.Context, tx bun.Tx, accountId uuid.UUID, delta decimal.Decimal) (*models.Account, error) {
	account := &models.Account{}
	err := tx.NewSelect().Model(account).Where("account.id = ?", accountId).For("UPDATE").Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	newBalance := account.Balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, ErrInsufficientFunds
	}

	account.Balance = newBalance
	if _, err := tx.NewUpdate().Model(account).Column("balance", "updated_at").WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return account, nil
}

// lockOrder returns the two account ids in a stable order. Concurrent
// opposite transfers take their row locks in the same order, which
// keeps them from deadlocking each other.
func lockOrder(a, b uuid.UUID) (first, second uuid.UUID) {
	if a.String() < b.String() {
		return a, b
	}
	return b, a
}
