package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/kaang457/vault/db/models"
	"github.com/kaang457/vault/lib/responses"
	"github.com/kaang457/vault/lib/service"
	"github.com/labstack/echo/v4"
)

// TransferController : Transfer controller struct
type TransferController struct {
	svc *service.VaultService
}

func NewTransferController(svc *service.VaultService) *TransferController {
	return &TransferController{svc: svc}
}

type TransferRequestBody struct {
	Account     string      `json:"account" validate:"required"`
	Receiver    string      `json:"receiver" validate:"required"`
	Amount      interface{} `json:"amount" validate:"required"`
	Details     string      `json:"details"`
	SaveAccount bool        `json:"save_account"`
	Alias       string      `json:"alias"`
}

type TransferResponseBody struct {
	TransactionID string `json:"transaction_id"`
}

// Transfer godoc
// @Summary      Transfer money
// @Description  Moves money from the caller's account to a receiver account
// @Accept       json
// @Produce      json
// @Tags         Payment
// @Param        TransferRequest  body      TransferRequestBody  True  "Transfer to execute"
// @Success      201              {object}  TransferResponseBody
// @Failure      400              {object}  responses.ErrorResponse
// @Failure      404              {object}  responses.ErrorResponse
// @Failure      500              {object}  responses.ErrorResponse
// @Router       /transactions [post]
// @Security     OAuth2Password
func (controller *TransferController) Transfer(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)
	var body TransferRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load transfer request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid transfer request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	amount, err := controller.svc.ParseAmount(body.Amount)
	if err != nil {
		c.Logger().Errorf("Invalid transfer amount: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.InvalidAmountError)
	}
	senderId, err := uuid.Parse(body.Account)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	receiverId, err := uuid.Parse(body.Receiver)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	// the store also rejects self-transfers, fail them before touching it
	if senderId == receiverId {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	transaction, err := controller.svc.Transfer(c.Request().Context(), service.TransferRequest{
		UserID:            userId,
		SenderAccountID:   senderId,
		ReceiverAccountID: receiverId,
		Amount:            amount,
		Details:           body.Details,
		SavePreference:    body.SaveAccount,
		Alias:             body.Alias,
	})
	if err != nil {
		if resp, ok := errorResponseFor(err); ok {
			c.Logger().Errorf("Transfer rejected: user_id:%v sender:%v receiver:%v error: %v", userId, senderId, receiverId, err)
			return c.JSON(resp.HttpStatusCode, resp)
		}
		return err
	}

	return c.JSON(http.StatusCreated, &TransferResponseBody{
		TransactionID: transaction.ID.String(),
	})
}

// GetTransactions godoc
// @Summary      List transfers
// @Description  Returns transfers touching any of the caller's accounts
// @Produce      json
// @Tags         Payment
// @Success      200  {object}  []models.Transaction
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /transactions [get]
// @Security     OAuth2Password
func (controller *TransferController) GetTransactions(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)

	transactions, err := controller.svc.TransactionsFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return c.JSON(http.StatusOK, transactions)
}
