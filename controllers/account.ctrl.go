package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/kaang457/vault/db/models"
	"github.com/kaang457/vault/lib/responses"
	"github.com/kaang457/vault/lib/service"
	"github.com/labstack/echo/v4"
)

// AccountController : Account controller struct
type AccountController struct {
	svc *service.VaultService
}

func NewAccountController(svc *service.VaultService) *AccountController {
	return &AccountController{svc: svc}
}

type CreateAccountRequestBody struct {
	AccountType string `json:"account_type" validate:"required"`
	Currency    string `json:"currency" validate:"required"`
}

// CreateAccount godoc
// @Summary      Open an account
// @Description  Opens an account of the given type and currency for the caller
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        CreateAccountRequest  body      CreateAccountRequestBody  True  "Account to open"
// @Success      201                   {object}  models.Account
// @Failure      400                   {object}  responses.ErrorResponse
// @Failure      500                   {object}  responses.ErrorResponse
// @Router       /accounts [post]
// @Security     OAuth2Password
func (controller *AccountController) CreateAccount(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)
	var body CreateAccountRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create account request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid create account request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.CreateAccount(c.Request().Context(), userId, body.AccountType, body.Currency)
	if err != nil {
		c.Logger().Errorf("Failed to create account: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	return c.JSON(http.StatusCreated, account)
}

// GetAccounts godoc
// @Summary      List accounts
// @Description  Returns the caller's accounts
// @Produce      json
// @Tags         Account
// @Success      200  {object}  []models.Account
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /accounts [get]
// @Security     OAuth2Password
func (controller *AccountController) GetAccounts(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)

	accounts, err := controller.svc.AccountsFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// GetAccount godoc
// @Summary      Retrieve an account
// @Description  Returns one of the caller's accounts by id
// @Produce      json
// @Tags         Account
// @Param        id   path      string  True  "Account ID"
// @Success      200  {object}  models.Account
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /accounts/{id} [get]
// @Security     OAuth2Password
func (controller *AccountController) GetAccount(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)

	accountId, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	account, err := controller.svc.FindAccountForUser(c.Request().Context(), accountId, userId)
	if err != nil {
		if resp, ok := errorResponseFor(err); ok {
			return c.JSON(resp.HttpStatusCode, resp)
		}
		return err
	}
	return c.JSON(http.StatusOK, account)
}

type AuditResponseBody struct {
	AccountTransactions []models.AccountTransaction `json:"account_transactions,omitempty"`
	UserTransactions    []models.UserTransaction    `json:"user_transactions,omitempty"`
}

// GetAccountTransactions godoc
// @Summary      List account audit records
// @Description  Returns the audit trail of one of the caller's accounts
// @Produce      json
// @Tags         Account
// @Param        account_id  query     string  True  "Account ID"
// @Success      200         {object}  AuditResponseBody
// @Failure      404         {object}  responses.ErrorResponse
// @Router       /account-transactions [get]
// @Security     OAuth2Password
func (controller *AccountController) GetAccountTransactions(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)

	accountId, err := uuid.Parse(c.QueryParam("account_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if _, err := controller.svc.FindAccountForUser(c.Request().Context(), accountId, userId); err != nil {
		if resp, ok := errorResponseFor(err); ok {
			return c.JSON(resp.HttpStatusCode, resp)
		}
		return err
	}

	accountTransactions, err := controller.svc.AccountTransactionsFor(c.Request().Context(), accountId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &AuditResponseBody{AccountTransactions: accountTransactions})
}

// GetUserTransactions godoc
// @Summary      List user audit records
// @Description  Returns the caller's audit trail
// @Produce      json
// @Tags         Account
// @Success      200  {object}  AuditResponseBody
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /user-transactions [get]
// @Security     OAuth2Password
func (controller *AccountController) GetUserTransactions(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)

	userTransactions, err := controller.svc.UserTransactionsFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &AuditResponseBody{UserTransactions: userTransactions})
}
