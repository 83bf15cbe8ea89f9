package integration_tests

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/kaang457/vault/common"
	"github.com/kaang457/vault/controllers"
	"github.com/kaang457/vault/db/models"
	"github.com/kaang457/vault/lib/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AccountTestSuite struct {
	TestSuite
	aliceToken string
	bobToken   string
}

func (suite *AccountTestSuite) SetupSuite() {
	svc, err := VaultTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	_, userTokens, err := createUsers(svc, 2)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.setupEcho(svc)
	suite.aliceToken = userTokens[0]
	suite.bobToken = userTokens[1]
}

func (suite *AccountTestSuite) TearDownTest() {
	clearTable(suite.service, "user_transactions")
	clearTable(suite.service, "accounts")
}

func (suite *AccountTestSuite) TestCreateAccount() {
	account := suite.createAccountReq(common.AccountTypeSavings, common.CurrencyEUR, suite.aliceToken)
	assert.NotEqual(suite.T(), uuid.Nil, account.ID)
	assert.Equal(suite.T(), common.AccountTypeSavings, account.Type)
	assert.Equal(suite.T(), common.CurrencyEUR, account.Currency)
	assert.Equal(suite.T(), "0.00", account.Balance.StringFixed(2))

	rec := suite.request(http.MethodGet, "/accounts", nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	accounts := []models.Account{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&accounts))
	assert.Equal(suite.T(), 1, len(accounts))
	assert.Equal(suite.T(), account.ID, accounts[0].ID)
}

func (suite *AccountTestSuite) TestCreateAccountInvalidType() {
	rec := suite.request(http.MethodPost, "/accounts", &controllers.CreateAccountRequestBody{
		AccountType: "OFFSHORE",
		Currency:    common.CurrencyUSD,
	}, suite.aliceToken)
	errorResponse := checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)
	assert.Equal(suite.T(), responses.BadArgumentsError.Code, errorResponse.Code)

	rec = suite.request(http.MethodPost, "/accounts", &controllers.CreateAccountRequestBody{
		AccountType: common.AccountTypeChecking,
		Currency:    "DOGE",
	}, suite.aliceToken)
	errorResponse = checkErrResponse(&suite.TestSuite, rec, http.StatusBadRequest)
	assert.Equal(suite.T(), responses.BadArgumentsError.Code, errorResponse.Code)
}

func (suite *AccountTestSuite) TestGetForeignAccount() {
	account := suite.createAccountReq(common.AccountTypeChecking, common.CurrencyUSD, suite.aliceToken)

	// alice can fetch her own account
	rec := suite.request(http.MethodGet, "/accounts/"+account.ID.String(), nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	// bob gets the same not-found as for a missing account
	rec = suite.request(http.MethodGet, "/accounts/"+account.ID.String(), nil, suite.bobToken)
	errorResponse := checkErrResponse(&suite.TestSuite, rec, http.StatusNotFound)
	assert.Equal(suite.T(), responses.AccountNotFoundError.Code, errorResponse.Code)

	rec = suite.request(http.MethodGet, "/accounts/"+uuid.NewString(), nil, suite.bobToken)
	errorResponse = checkErrResponse(&suite.TestSuite, rec, http.StatusNotFound)
	assert.Equal(suite.T(), responses.AccountNotFoundError.Code, errorResponse.Code)
}

func (suite *AccountTestSuite) TestAuditRecords() {
	account := suite.createAccountReq(common.AccountTypeBusiness, common.CurrencyGBP, suite.aliceToken)

	rec := suite.request(http.MethodGet, "/account-transactions?account_id="+account.ID.String(), nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	audit := &controllers.AuditResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(audit))
	assert.Equal(suite.T(), 1, len(audit.AccountTransactions))
	assert.Equal(suite.T(), common.TransactionTypeAccountCreation, audit.AccountTransactions[0].TransactionType)
	assert.Equal(suite.T(), account.ID, audit.AccountTransactions[0].AccountID)

	rec = suite.request(http.MethodGet, "/user-transactions", nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	audit = &controllers.AuditResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(audit))
	assert.Equal(suite.T(), 1, len(audit.UserTransactions))
	assert.Equal(suite.T(), common.TransactionTypeAccountCreation, audit.UserTransactions[0].TransactionType)

	// the account audit trail is private to the owner
	rec = suite.request(http.MethodGet, "/account-transactions?account_id="+account.ID.String(), nil, suite.bobToken)
	errorResponse := checkErrResponse(&suite.TestSuite, rec, http.StatusNotFound)
	assert.Equal(suite.T(), responses.AccountNotFoundError.Code, errorResponse.Code)
}

func (suite *AccountTestSuite) TestPreferenceForMissingReceiver() {
	rec := suite.request(http.MethodPost, "/account-preferences", &controllers.CreatePreferenceRequestBody{
		Alias:             "nobody",
		ReceiverAccountID: uuid.NewString(),
	}, suite.aliceToken)
	errorResponse := checkErrResponse(&suite.TestSuite, rec, http.StatusNotFound)
	assert.Equal(suite.T(), responses.AccountNotFoundError.Code, errorResponse.Code)
}

func TestAccountTestSuite(t *testing.T) {
	if os.Getenv("DATABASE_URI") == "" {
		t.Skip("set DATABASE_URI to run integration tests")
	}
	suite.Run(t, new(AccountTestSuite))
}
