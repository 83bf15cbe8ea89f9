package integration_tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/kaang457/vault/controllers"
	"github.com/kaang457/vault/db"
	"github.com/kaang457/vault/db/migrations"
	"github.com/kaang457/vault/db/models"
	"github.com/kaang457/vault/lib"
	"github.com/kaang457/vault/lib/responses"
	"github.com/kaang457/vault/lib/service"
	"github.com/kaang457/vault/lib/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/uptrace/bun/migrate"
)

func VaultTestServiceInit() (svc *service.VaultService, err error) {
	c := &service.Config{
		DatabaseUri:             os.Getenv("DATABASE_URI"),
		DatabaseMaxConns:        1,
		DatabaseMaxIdleConns:    1,
		DatabaseConnMaxLifetime: 10,
		JWTSecret:               []byte("SECRET"),
		JWTAccessTokenExpiry:    3600,
		JWTRefreshTokenExpiry:   3600,
	}

	dbConn, err := db.Open(c)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx := context.Background()
	migrator := migrate.NewMigrator(dbConn, migrations.Migrations)
	err = migrator.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init migrations: %w", err)
	}
	_, err = migrator.Migrate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger := lib.Logger(c.LogFilePath)
	svc = &service.VaultService{
		Config: c,
		DB:     dbConn,
		Logger: logger,
	}

	svc.TxPubSub = service.NewPubsub()
	return svc, nil
}

func clearTable(svc *service.VaultService, tableName string) error {
	_, err := svc.DB.Exec(fmt.Sprintf("DELETE FROM %s", tableName))
	return err
}

// unsafe parse jwt method to pull out userId claim
// should be used only in integration_tests package
func getUserIdFromToken(token string) uuid.UUID {
	parsedToken, _, _ := new(jwt.Parser).ParseUnverified(token, jwt.MapClaims{})
	claims, _ := parsedToken.Claims.(jwt.MapClaims)
	userId, _ := uuid.Parse(claims["id"].(string))
	return userId
}

func createUsers(svc *service.VaultService, usersToCreate int) (logins []controllers.CreateUserResponseBody, userTokens []string, err error) {
	logins = []controllers.CreateUserResponseBody{}
	userTokens = []string{}
	for i := 0; i < usersToCreate; i++ {
		user, err := svc.CreateUser(context.Background(), "", "", "")
		if err != nil {
			return nil, nil, err
		}
		login := controllers.CreateUserResponseBody{
			ID:       user.ID.String(),
			Email:    user.Email,
			Password: user.Password,
		}
		logins = append(logins, login)
		token, _, err := svc.GenerateToken(context.Background(), login.Email, login.Password)
		if err != nil {
			return nil, nil, err
		}
		userTokens = append(userTokens, token)
	}
	return logins, userTokens, nil
}

type TestSuite struct {
	suite.Suite
	echo    *echo.Echo
	service *service.VaultService
}

// setupEcho wires the handlers under test the way the server does,
// minus rate limiting and caching.
func (suite *TestSuite) setupEcho(svc *service.VaultService) {
	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	e.Use(tokens.Middleware(svc.Config.JWTSecret))

	accountCtrl := controllers.NewAccountController(svc)
	e.POST("/accounts", accountCtrl.CreateAccount)
	e.GET("/accounts", accountCtrl.GetAccounts)
	e.GET("/accounts/:id", accountCtrl.GetAccount)
	e.GET("/account-transactions", accountCtrl.GetAccountTransactions)
	e.GET("/user-transactions", accountCtrl.GetUserTransactions)

	transferCtrl := controllers.NewTransferController(svc)
	e.POST("/transactions", transferCtrl.Transfer)
	e.GET("/transactions", transferCtrl.GetTransactions)

	stockCtrl := controllers.NewStockController(svc)
	e.POST("/stocks/buy", stockCtrl.BuyStock)
	e.POST("/stocks/sell", stockCtrl.SellStock)
	e.GET("/stocks/portfolio", stockCtrl.Portfolio)

	loanCtrl := controllers.NewLoanController(svc)
	e.POST("/loans", loanCtrl.CreateLoan)
	e.GET("/loans", loanCtrl.GetLoans)
	e.POST("/loans/pay", loanCtrl.PayLoan)

	preferenceCtrl := controllers.NewPreferenceController(svc)
	e.GET("/account-preferences", preferenceCtrl.GetPreferences)
	e.POST("/account-preferences", preferenceCtrl.CreatePreference)

	suite.echo = e
	suite.service = svc
}

// fundAccount writes a balance directly, bypassing the transfer path, so
// tests can start from a known amount.
func (suite *TestSuite) fundAccount(accountId uuid.UUID, balance string) {
	_, err := suite.service.DB.Exec("UPDATE accounts SET balance = ? WHERE id = ?", balance, accountId)
	assert.NoError(suite.T(), err)
}

func (suite *TestSuite) setCreditScore(userId uuid.UUID, score int) {
	_, err := suite.service.DB.Exec("UPDATE users SET credit_score = ? WHERE id = ?", score, userId)
	assert.NoError(suite.T(), err)
}

func (suite *TestSuite) accountBalance(accountId uuid.UUID) string {
	account, err := suite.service.FindAccount(context.Background(), accountId)
	assert.NoError(suite.T(), err)
	return account.Balance.StringFixed(2)
}

func (suite *TestSuite) request(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func checkErrResponse(suite *TestSuite, rec *httptest.ResponseRecorder, expectedStatus int) *responses.ErrorResponse {
	errorResponse := &responses.ErrorResponse{}
	assert.Equal(suite.T(), expectedStatus, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	return errorResponse
}

func (suite *TestSuite) createAccountReq(accountType, currency, token string) *models.Account {
	rec := suite.request(http.MethodPost, "/accounts", &controllers.CreateAccountRequestBody{
		AccountType: accountType,
		Currency:    currency,
	}, token)
	account := &models.Account{}
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(account))
	return account
}

func (suite *TestSuite) transferReq(body *controllers.TransferRequestBody, token string) *controllers.TransferResponseBody {
	rec := suite.request(http.MethodPost, "/transactions", body, token)
	transferResponse := &controllers.TransferResponseBody{}
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(transferResponse))
	return transferResponse
}

func (suite *TestSuite) transferReqError(body *controllers.TransferRequestBody, token string, expectedStatus int) *responses.ErrorResponse {
	rec := suite.request(http.MethodPost, "/transactions", body, token)
	return checkErrResponse(suite, rec, expectedStatus)
}

func (suite *TestSuite) stockOrderReq(path string, body *controllers.StockOrderRequestBody, token string, expectedStatus int) *controllers.StockOrderResponseBody {
	rec := suite.request(http.MethodPost, path, body, token)
	orderResponse := &controllers.StockOrderResponseBody{}
	assert.Equal(suite.T(), expectedStatus, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(orderResponse))
	return orderResponse
}

func (suite *TestSuite) stockOrderReqError(path string, body *controllers.StockOrderRequestBody, token string, expectedStatus int) *responses.ErrorResponse {
	rec := suite.request(http.MethodPost, path, body, token)
	return checkErrResponse(suite, rec, expectedStatus)
}

func (suite *TestSuite) portfolioReq(token string) []service.PortfolioPosition {
	rec := suite.request(http.MethodGet, "/stocks/portfolio", nil, token)
	positions := []service.PortfolioPosition{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&positions))
	return positions
}

func (suite *TestSuite) createLoanReq(body *controllers.CreateLoanRequestBody, token string) *models.Loan {
	rec := suite.request(http.MethodPost, "/loans", body, token)
	loan := &models.Loan{}
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(loan))
	return loan
}

func (suite *TestSuite) createLoanReqError(body *controllers.CreateLoanRequestBody, token string, expectedStatus int) *responses.ErrorResponse {
	rec := suite.request(http.MethodPost, "/loans", body, token)
	return checkErrResponse(suite, rec, expectedStatus)
}

func (suite *TestSuite) payLoanReq(body *controllers.LoanPaymentRequestBody, token string) *controllers.LoanPaymentResponseBody {
	rec := suite.request(http.MethodPost, "/loans/pay", body, token)
	paymentResponse := &controllers.LoanPaymentResponseBody{}
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(paymentResponse))
	return paymentResponse
}

func (suite *TestSuite) payLoanReqError(body *controllers.LoanPaymentRequestBody, token string, expectedStatus int) *responses.ErrorResponse {
	rec := suite.request(http.MethodPost, "/loans/pay", body, token)
	return checkErrResponse(suite, rec, expectedStatus)
}
