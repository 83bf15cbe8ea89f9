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

// IssueLoan creates a loan against one of the caller's accounts.
// Eligibility: the owner's credit score must be at least
// common.MinCreditScore and the principal may not exceed
// common.LoanIncomeMultiple times the stated monthly income. The loan
// balance is tracked on the loan itself, not merged into the account
// balance.
func (svc *VaultService) IssueLoan(ctx context.Context, userId, accountId uuid.UUID, amount decimal.Decimal, durationMonths int, monthlyIncome decimal.Decimal) (*models.Loan, error) {
	if !amount.IsPositive() || durationMonths <= 0 {
		return nil, ErrInvalidAmount
	}

	account, err := svc.FindAccountForUser(ctx, accountId, userId)
	if err != nil {
		return nil, err
	}
	user, err := svc.FindUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user.CreditScore < common.MinCreditScore {
		return nil, ErrCreditScoreTooLow
	}
	if amount.GreaterThan(monthlyIncome.Mul(decimal.NewFromInt(common.LoanIncomeMultiple))) {
		return nil, ErrLoanTooLarge
	}

	loan := &models.Loan{
		AccountID:    account.ID,
		LoanAmount:   amount,
		LoanDuration: durationMonths,
	}
	if _, err := svc.DB.NewInsert().Model(loan).Exec(ctx); err != nil {
		return nil, err
	}
	return loan, nil
}

// PayLoan applies a repayment to the outstanding loan balance and
// returns the loan with its remaining balance. A payment larger than
// the outstanding balance is rejected, which also covers further
// payments against a fully repaid loan.
func (svc *VaultService) PayLoan(ctx context.Context, userId, loanId uuid.UUID, payment decimal.Decimal) (*models.Loan, error) {
	if !payment.IsPositive() {
		return nil, ErrInvalidPayment
	}

	loan := &models.Loan{}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(loan).
			Where("loan.id = ? AND loan.account_id IN (SELECT id FROM accounts WHERE user_id = ?)", loanId, userId).
			For("UPDATE").Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLoanNotFound
		}
		if err != nil {
			return err
		}

		if payment.GreaterThan(loan.LoanAmount) {
			return ErrOverPayment
		}

		loan.LoanAmount = loan.LoanAmount.Sub(payment)
		_, err = tx.NewUpdate().Model(loan).Column("loan_amount", "updated_at").WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return loan, nil
}

func (svc *VaultService) LoansFor(ctx context.Context, userId uuid.UUID) ([]models.Loan, error) {
	loans := []models.Loan{}
	err := svc.DB.NewSelect().Model(&loans).
		Where("account_id IN (SELECT id FROM accounts WHERE user_id = ?)", userId).
		OrderExpr("created_at DESC").
		Scan(ctx)
	return loans, err
}
