package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/kaang457/vault/lib/responses"
	"github.com/kaang457/vault/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// StockController : Stock trade controller struct
type StockController struct {
	svc *service.VaultService
}

func NewStockController(svc *service.VaultService) *StockController {
	return &StockController{svc: svc}
}

type StockOrderRequestBody struct {
	Symbol    string      `json:"symbol" validate:"required"`
	Quantity  interface{} `json:"quantity" validate:"required"`
	AccountID string      `json:"account_id" validate:"required"`
	Price     interface{} `json:"price" validate:"required"`
}

type StockOrderResponseBody struct {
	Message string `json:"message"`
}

func (controller *StockController) parseOrder(c echo.Context) (accountId uuid.UUID, symbol string, quantity int64, price decimal.Decimal, err error) {
	var body StockOrderRequestBody

	if err = c.Bind(&body); err != nil {
		return
	}
	if err = c.Validate(&body); err != nil {
		return
	}
	accountId, err = uuid.Parse(body.AccountID)
	if err != nil {
		return
	}
	quantity, err = controller.svc.ParseInt(body.Quantity)
	if err != nil {
		return
	}
	price, err = controller.svc.ParseAmount(body.Price)
	if err != nil {
		return
	}
	symbol = body.Symbol
	return
}

// BuyStock godoc
// @Summary      Buy stock
// @Description  Debits an investment account and adds shares to the caller's position
// @Accept       json
// @Produce      json
// @Tags         Stock
// @Param        StockOrderRequest  body      StockOrderRequestBody  True  "Order"
// @Success      201                {object}  StockOrderResponseBody
// @Failure      400                {object}  responses.ErrorResponse
// @Failure      404                {object}  responses.ErrorResponse
// @Router       /stocks/buy [post]
// @Security     OAuth2Password
func (controller *StockController) BuyStock(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)

	accountId, symbol, quantity, price, err := controller.parseOrder(c)
	if err != nil {
		c.Logger().Errorf("Invalid buy order: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if _, err := controller.svc.BuyStock(c.Request().Context(), userId, accountId, symbol, quantity, price); err != nil {
		if resp, ok := errorResponseFor(err); ok {
			c.Logger().Errorf("Buy order rejected: user_id:%v account:%v symbol:%v error: %v", userId, accountId, symbol, err)
			return c.JSON(resp.HttpStatusCode, resp)
		}
		return err
	}

	return c.JSON(http.StatusCreated, &StockOrderResponseBody{
		Message: "stock purchased",
	})
}

// SellStock godoc
// @Summary      Sell stock
// @Description  Credits an investment account and removes shares from the caller's position
// @Accept       json
// @Produce      json
// @Tags         Stock
// @Param        StockOrderRequest  body      StockOrderRequestBody  True  "Order"
// @Success      200                {object}  StockOrderResponseBody
// @Failure      400                {object}  responses.ErrorResponse
// @Failure      404                {object}  responses.ErrorResponse
// @Router       /stocks/sell [post]
// @Security     OAuth2Password
func (controller *StockController) SellStock(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)

	accountId, symbol, quantity, price, err := controller.parseOrder(c)
	if err != nil {
		c.Logger().Errorf("Invalid sell order: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	if _, err := controller.svc.SellStock(c.Request().Context(), userId, accountId, symbol, quantity, price); err != nil {
		if resp, ok := errorResponseFor(err); ok {
			c.Logger().Errorf("Sell order rejected: user_id:%v account:%v symbol:%v error: %v", userId, accountId, symbol, err)
			return c.JSON(resp.HttpStatusCode, resp)
		}
		return err
	}

	return c.JSON(http.StatusOK, &StockOrderResponseBody{
		Message: "stock sold",
	})
}

// Portfolio godoc
// @Summary      Portfolio
// @Description  Returns the caller's per-symbol share totals
// @Produce      json
// @Tags         Stock
// @Success      200  {object}  []service.PortfolioPosition
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /stocks/portfolio [get]
// @Security     OAuth2Password
func (controller *StockController) Portfolio(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)

	positions, err := controller.svc.Portfolio(c.Request().Context(), userId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, positions)
}
