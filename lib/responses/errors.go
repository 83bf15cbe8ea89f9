package responses

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error          bool   `json:"error"`
	Code           int    `json:"code"`
	Message        string `json:"message"`
	HttpStatusCode int    `json:"-"`
}

var GeneralServerError = ErrorResponse{
	Error:          true,
	Code:           6,
	Message:        "Something went wrong. Please try again later",
	HttpStatusCode: 500,
}

var BadArgumentsError = ErrorResponse{
	Error:          true,
	Code:           8,
	Message:        "Bad arguments",
	HttpStatusCode: 400,
}

var BadAuthError = ErrorResponse{
	Error:          true,
	Code:           1,
	Message:        "bad auth",
	HttpStatusCode: 401,
}

var InvalidAmountError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "amount must be a positive number",
	HttpStatusCode: 400,
}

var AccountNotFoundError = ErrorResponse{
	Error:          true,
	Code:           3,
	Message:        "account not found",
	HttpStatusCode: 404,
}

var NotEnoughBalanceError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "not enough balance on account",
	HttpStatusCode: 400,
}

var NotInvestmentAccountError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "stocks can only be traded from an investment account",
	HttpStatusCode: 400,
}

var NotEnoughSharesError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "not enough shares to sell",
	HttpStatusCode: 400,
}

var CreditScoreTooLowError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "credit score is too low for a loan",
	HttpStatusCode: 400,
}

var LoanTooLargeError = ErrorResponse{
	Error:          true,
	Code:           4,
	Message:        "requested loan amount exceeds the allowed income multiple",
	HttpStatusCode: 400,
}

var LoanNotFoundError = ErrorResponse{
	Error:          true,
	Code:           3,
	Message:        "loan not found",
	HttpStatusCode: 404,
}

var InvalidPaymentError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "payment amount must be a positive number",
	HttpStatusCode: 400,
}

var OverPaymentError = ErrorResponse{
	Error:          true,
	Code:           2,
	Message:        "payment exceeds the outstanding loan balance",
	HttpStatusCode: 400,
}

const badAuthErrorCode = 1

// isErrAllowedForSentry filters failed-auth noise out of exception
// tracking.
func isErrAllowedForSentry(err error) bool {
	he, ok := err.(*echo.HTTPError)
	if !ok {
		return true
	}
	m, ok := he.Message.(echo.Map)
	if !ok {
		return true
	}
	code, ok := m["code"].(int)
	if !ok {
		return true
	}
	return code != badAuthErrorCode
}

func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	c.Logger().Error(err)
	if hub := sentryecho.GetHubFromContext(c); hub != nil && isErrAllowedForSentry(err) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetExtra("UserID", c.Get("UserID"))
			hub.CaptureException(err)
		})
	}
	if he, ok := err.(*echo.HTTPError); ok {
		c.JSON(he.Code, he.Message)
	} else {
		c.JSON(http.StatusInternalServerError, GeneralServerError)
	}
}
