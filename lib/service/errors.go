package service

import "errors"

// Sentinel errors returned by the engines. Controllers map these onto
// the responses error table; anything else becomes a generic 500.
var (
	ErrInvalidAmount        = errors.New("amount must be a positive number")
	ErrAccountNotFound      = errors.New("account not found")
	ErrInsufficientFunds    = errors.New("not enough balance on account")
	ErrNotInvestmentAccount = errors.New("account is not an investment account")
	ErrInsufficientShares   = errors.New("not enough shares to sell")
	ErrCreditScoreTooLow    = errors.New("credit score is too low for a loan")
	ErrLoanTooLarge         = errors.New("requested loan amount exceeds the allowed income multiple")
	ErrLoanNotFound         = errors.New("loan not found")
	ErrInvalidPayment       = errors.New("payment amount must be a positive number")
	ErrOverPayment          = errors.New("payment exceeds the outstanding loan balance")
)
