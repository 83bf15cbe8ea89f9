package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/kaang457/vault/common"
	"github.com/kaang457/vault/db/models"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type PortfolioPosition struct {
	StockSymbol   string `json:"stock_symbol"`
	TotalQuantity int64  `json:"total_quantity"`
}

func (svc *VaultService) validateStockOrder(ctx context.Context, userId, accountId uuid.UUID, quantity int64, price decimal.Decimal) (*models.Account, error) {
	if quantity <= 0 || !price.IsPositive() {
		return nil, ErrInvalidAmount
	}
	account, err := svc.FindAccountForUser(ctx, accountId, userId)
	if err != nil {
		return nil, err
	}
	if account.Type != common.AccountTypeInvestment {
		return nil, ErrNotInvestmentAccount
	}
	return account, nil
}

// BuyStock debits the investment account by quantity*price and adds the
// quantity to the user's position for the symbol, creating the position
// row when it does not exist yet. Debit and position update commit
// together.
func (svc *VaultService) BuyStock(ctx context.Context, userId, accountId uuid.UUID, symbol string, quantity int64, price decimal.Decimal) (*models.Purchase, error) {
	account, err := svc.validateStockOrder(ctx, userId, accountId, quantity, price)
	if err != nil {
		return nil, err
	}

	cost := price.Mul(decimal.NewFromInt(quantity))
	purchase := &models.Purchase{}
	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := svc.applyBalanceDelta(ctx, tx, account.ID, cost.Neg()); err != nil {
			return err
		}

		err := tx.NewSelect().Model(purchase).
			Where("purchase.user_id = ? AND purchase.stock_symbol = ?", userId, symbol).
			For("UPDATE").Scan(ctx)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			purchase = &models.Purchase{
				UserID:      userId,
				AccountID:   account.ID,
				StockSymbol: symbol,
				Quantity:    quantity,
			}
			_, err = tx.NewInsert().Model(purchase).Exec(ctx)
			return err
		case err != nil:
			return err
		}

		purchase.Quantity += quantity
		_, err = tx.NewUpdate().Model(purchase).Column("quantity", "updated_at").WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// SellStock credits the investment account by quantity*price and
// removes the quantity from the position. Selling more shares than held
// fails, and a position that reaches exactly zero is deleted.
func (svc *VaultService) SellStock(ctx context.Context, userId, accountId uuid.UUID, symbol string, quantity int64, price decimal.Decimal) (*models.Purchase, error) {
	account, err := svc.validateStockOrder(ctx, userId, accountId, quantity, price)
	if err != nil {
		return nil, err
	}

	proceeds := price.Mul(decimal.NewFromInt(quantity))
	purchase := &models.Purchase{}
	err = svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(purchase).
			Where("purchase.user_id = ? AND purchase.stock_symbol = ?", userId, symbol).
			For("UPDATE").Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInsufficientShares
		}
		if err != nil {
			return err
		}
		if purchase.Quantity < quantity {
			return ErrInsufficientShares
		}

		if _, err := svc.applyBalanceDelta(ctx, tx, account.ID, proceeds); err != nil {
			return err
		}

		purchase.Quantity -= quantity
		if purchase.Quantity == 0 {
			_, err = tx.NewDelete().Model(purchase).WherePK().Exec(ctx)
			return err
		}
		_, err = tx.NewUpdate().Model(purchase).Column("quantity", "updated_at").WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

// Portfolio returns the per-symbol share totals of the user.
func (svc *VaultService) Portfolio(ctx context.Context, userId uuid.UUID) ([]PortfolioPosition, error) {
	positions := []PortfolioPosition{}
	err := svc.DB.NewSelect().Model((*models.Purchase)(nil)).
		ColumnExpr("stock_symbol").
		ColumnExpr("sum(quantity) AS total_quantity").
		Where("user_id = ?", userId).
		GroupExpr("stock_symbol").
		OrderExpr("stock_symbol ASC").
		Scan(ctx, &positions)
	return positions, err
}
