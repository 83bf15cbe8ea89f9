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

type TransferRequest struct {
	UserID            uuid.UUID
	SenderAccountID   uuid.UUID
	ReceiverAccountID uuid.UUID
	Amount            decimal.Decimal
	Details           string
	SavePreference    bool
	Alias             string
}

// Transfer moves money from the caller's account to the receiver
// account. The debit, the credit, the transaction record and the
// optional preference upsert all commit in one storage transaction; a
// failed transfer leaves both balances untouched.
//
// Validation order: amount > 0, sender exists and belongs to the
// caller, receiver exists, sender has sufficient funds.
func (svc *VaultService) Transfer(ctx context.Context, req TransferRequest) (*models.Transaction, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if svc.Config.MaxTransferAmount > 0 && req.Amount.GreaterThan(decimal.NewFromInt(svc.Config.MaxTransferAmount)) {
		return nil, ErrInvalidAmount
	}

	sender, err := svc.FindAccountForUser(ctx, req.SenderAccountID, req.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := svc.FindAccount(ctx, req.ReceiverAccountID); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		SenderAccountID:   sender.ID,
		ReceiverAccountID: req.ReceiverAccountID,
		Amount:            req.Amount,
		Details:           req.Details,
	}

	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		deltas := map[uuid.UUID]decimal.Decimal{
			sender.ID:             req.Amount.Neg(),
			req.ReceiverAccountID: req.Amount,
		}
		first, second := lockOrder(sender.ID, req.ReceiverAccountID)
		if _, err := svc.applyBalanceDelta(ctx, tx, first, deltas[first]); err != nil {
			return err
		}
		if _, err := svc.applyBalanceDelta(ctx, tx, second, deltas[second]); err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(transaction).Exec(ctx); err != nil {
			return err
		}
		if req.SavePreference {
			if err := svc.upsertPreference(ctx, tx, req.UserID, req.ReceiverAccountID, req.Alias); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	svc.TxPubSub.Publish(sender.ID.String(), *transaction)
	return transaction, nil
}

// upsertPreference saves the receiver as a payee of the user. An
// existing (user, receiver) pairing only gets written when the alias
// actually changed.
func (svc *VaultService) upsertPreference(ctx context.Context, tx bun.Tx, userId, receiverAccountId uuid.UUID, alias string) error {
	preference := &models.AccountPreference{}
	err := tx.NewSelect().Model(preference).
		Where("user_id = ? AND receiver_account_id = ?", userId, receiverAccountId).
		Limit(1).Scan(ctx)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		preference = &models.AccountPreference{
			UserID:            userId,
			ReceiverAccountID: receiverAccountId,
			Alias:             alias,
		}
		_, err = tx.NewInsert().Model(preference).Exec(ctx)
		return err
	case err != nil:
		return err
	}

	if preference.Alias == alias {
		return nil
	}
	preference.Alias = alias
	_, err = tx.NewUpdate().Model(preference).Column("alias", "updated_at").WherePK().Exec(ctx)
	return err
}

// TransactionsFor returns the transfer history touching any of the
// user's accounts, newest first.
func (svc *VaultService) TransactionsFor(ctx context.Context, userId uuid.UUID) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	err := svc.DB.NewSelect().Model(&transactions).
		Where("sender_account_id IN (SELECT id FROM accounts WHERE user_id = ?)", userId).
		WhereOr("receiver_account_id IN (SELECT id FROM accounts WHERE user_id = ?)", userId).
		OrderExpr("created_at DESC").Limit(100).
		Scan(ctx)
	return transactions, err
}
