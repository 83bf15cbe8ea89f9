package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaang457/vault/common"
	"github.com/kaang457/vault/db/models"
	"github.com/uptrace/bun"
)

// CreateAccount persists a new account for the user together with its
// audit records. The audit rows are written here, in the same storage
// transaction, rather than through any persistence hook.
func (svc *VaultService) CreateAccount(ctx context.Context, userId uuid.UUID, accountType, currency string) (*models.Account, error) {
	if !common.ValidAccountType(accountType) {
		return nil, fmt.Errorf("invalid account type %q", accountType)
	}
	if !common.ValidCurrency(currency) {
		return nil, fmt.Errorf("invalid currency %q", currency)
	}

	account := &models.Account{
		UserID:   userId,
		Type:     accountType,
		Currency: currency,
	}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(account).Exec(ctx); err != nil {
			return err
		}
		accountAudit := models.AccountTransaction{
			AccountID:       account.ID,
			TransactionType: common.TransactionTypeAccountCreation,
			Details:         fmt.Sprintf("%s account opened (%s)", accountType, currency),
		}
		if _, err := tx.NewInsert().Model(&accountAudit).Exec(ctx); err != nil {
			return err
		}
		userAudit := models.UserTransaction{
			UserID:          userId,
			TransactionType: common.TransactionTypeAccountCreation,
			Details:         fmt.Sprintf("opened %s account %s", accountType, account.ID),
		}
		if _, err := tx.NewInsert().Model(&userAudit).Exec(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (svc *VaultService) FindAccount(ctx context.Context, accountId uuid.UUID) (*models.Account, error) {
	account := &models.Account{}
	err := svc.DB.NewSelect().Model(account).Where("id = ?", accountId).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// FindAccountForUser resolves an account and enforces that the caller
// owns it. Callers that reference somebody else's account get the same
// not-found error as callers referencing a missing one.
func (svc *VaultService) FindAccountForUser(ctx context.Context, accountId, userId uuid.UUID) (*models.Account, error) {
	account := &models.Account{}
	err := svc.DB.NewSelect().Model(account).Where("id = ? AND user_id = ?", accountId, userId).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (svc *VaultService) AccountsFor(ctx context.Context, userId uuid.UUID) ([]models.Account, error) {
	accounts := []models.Account{}
	err := svc.DB.NewSelect().Model(&accounts).Where("user_id = ?", userId).OrderExpr("created_at ASC").Scan(ctx)
	return accounts, err
}

func (svc *VaultService) AccountTransactionsFor(ctx context.Context, accountId uuid.UUID) ([]models.AccountTransaction, error) {
	accountTransactions := []models.AccountTransaction{}
	err := svc.DB.NewSelect().Model(&accountTransactions).Where("account_id = ?", accountId).OrderExpr("created_at DESC").Scan(ctx)
	return accountTransactions, err
}
