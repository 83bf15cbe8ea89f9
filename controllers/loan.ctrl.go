package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/kaang457/vault/db/models"
	"github.com/kaang457/vault/lib/responses"
	"github.com/kaang457/vault/lib/service"
	"github.com/labstack/echo/v4"
)

// LoanController : Loan controller struct
type LoanController struct {
	svc *service.VaultService
}

func NewLoanController(svc *service.VaultService) *LoanController {
	return &LoanController{svc: svc}
}

type CreateLoanRequestBody struct {
	LoanAmount    interface{} `json:"loan_amount" validate:"required"`
	LoanDuration  interface{} `json:"loan_duration" validate:"required"`
	MonthlyIncome interface{} `json:"monthly_income" validate:"required"`
	AccountID     string      `json:"account_id" validate:"required"`
}

// CreateLoan godoc
// @Summary      Request a loan
// @Description  Issues a loan against one of the caller's accounts
// @Accept       json
// @Produce      json
// @Tags         Loan
// @Param        CreateLoanRequest  body      CreateLoanRequestBody  True  "Loan to issue"
// @Success      201                {object}  models.Loan
// @Failure      400                {object}  responses.ErrorResponse
// @Failure      404                {object}  responses.ErrorResponse
// @Router       /loans [post]
// @Security     OAuth2Password
func (controller *LoanController) CreateLoan(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)
	var body CreateLoanRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load loan request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid loan request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	amount, err := controller.svc.ParseAmount(body.LoanAmount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.InvalidAmountError)
	}
	duration, err := controller.svc.ParseInt(body.LoanDuration)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	monthlyIncome, err := controller.svc.ParseAmount(body.MonthlyIncome)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	accountId, err := uuid.Parse(body.AccountID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	loan, err := controller.svc.IssueLoan(c.Request().Context(), userId, accountId, amount, int(duration), monthlyIncome)
	if err != nil {
		if resp, ok := errorResponseFor(err); ok {
			c.Logger().Errorf("Loan rejected: user_id:%v account:%v error: %v", userId, accountId, err)
			return c.JSON(resp.HttpStatusCode, resp)
		}
		return err
	}

	return c.JSON(http.StatusCreated, loan)
}

// GetLoans godoc
// @Summary      List loans
// @Description  Returns the loans issued against the caller's accounts
// @Produce      json
// @Tags         Loan
// @Success      200  {object}  []models.Loan
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /loans [get]
// @Security     OAuth2Password
func (controller *LoanController) GetLoans(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)

	loans, err := controller.svc.LoansFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}
	if loans == nil {
		loans = []models.Loan{}
	}
	return c.JSON(http.StatusOK, loans)
}

type LoanPaymentRequestBody struct {
	LoanID        string      `json:"loan_id" validate:"required"`
	PaymentAmount interface{} `json:"payment_amount" validate:"required"`
}

type LoanPaymentResponseBody struct {
	Message          string `json:"message"`
	RemainingBalance string `json:"remaining_balance"`
	LoanID           string `json:"loan_id"`
}

// PayLoan godoc
// @Summary      Repay a loan
// @Description  Applies a payment to the outstanding loan balance
// @Accept       json
// @Produce      json
// @Tags         Loan
// @Param        LoanPaymentRequest  body      LoanPaymentRequestBody  True  "Payment"
// @Success      200                 {object}  LoanPaymentResponseBody
// @Failure      400                 {object}  responses.ErrorResponse
// @Failure      404                 {object}  responses.ErrorResponse
// @Router       /loans/pay [post]
// @Security     OAuth2Password
func (controller *LoanController) PayLoan(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)
	var body LoanPaymentRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load loan payment request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid loan payment request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	payment, err := controller.svc.ParseAmount(body.PaymentAmount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.InvalidPaymentError)
	}
	loanId, err := uuid.Parse(body.LoanID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	loan, err := controller.svc.PayLoan(c.Request().Context(), userId, loanId, payment)
	if err != nil {
		if resp, ok := errorResponseFor(err); ok {
			c.Logger().Errorf("Loan payment rejected: user_id:%v loan:%v error: %v", userId, loanId, err)
			return c.JSON(resp.HttpStatusCode, resp)
		}
		return err
	}

	return c.JSON(http.StatusOK, &LoanPaymentResponseBody{
		Message:          "payment applied",
		RemainingBalance: loan.LoanAmount.StringFixed(2),
		LoanID:           loan.ID.String(),
	})
}
