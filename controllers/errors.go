package controllers

import (
	"errors"

	"github.com/kaang457/vault/lib/responses"
	"github.com/kaang457/vault/lib/service"
)

// errorResponseFor translates engine sentinel errors into the
// user-facing error table. Unknown errors fall through to the echo
// error handler, which reports them as a generic 500.
func errorResponseFor(err error) (responses.ErrorResponse, bool) {
	switch {
	case errors.Is(err, service.ErrInvalidAmount):
		return responses.InvalidAmountError, true
	case errors.Is(err, service.ErrAccountNotFound):
		return responses.AccountNotFoundError, true
	case errors.Is(err, service.ErrInsufficientFunds):
		return responses.NotEnoughBalanceError, true
	case errors.Is(err, service.ErrNotInvestmentAccount):
		return responses.NotInvestmentAccountError, true
	case errors.Is(err, service.ErrInsufficientShares):
		return responses.NotEnoughSharesError, true
	case errors.Is(err, service.ErrCreditScoreTooLow):
		return responses.CreditScoreTooLowError, true
	case errors.Is(err, service.ErrLoanTooLarge):
		return responses.LoanTooLargeError, true
	case errors.Is(err, service.ErrLoanNotFound):
		return responses.LoanNotFoundError, true
	case errors.Is(err, service.ErrInvalidPayment):
		return responses.InvalidPaymentError, true
	case errors.Is(err, service.ErrOverPayment):
		return responses.OverPaymentError, true
	}
	return responses.ErrorResponse{}, false
}
