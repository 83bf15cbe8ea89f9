package integration_tests

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"testing"

	"github.com/kaang457/vault/common"
	"github.com/kaang457/vault/controllers"
	"github.com/kaang457/vault/db/models"
	"github.com/kaang457/vault/lib/responses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type LoanTestSuite struct {
	TestSuite
	aliceLogin controllers.CreateUserResponseBody
	aliceToken string
	bobToken   string
}

func (suite *LoanTestSuite) SetupSuite() {
	svc, err := VaultTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	users, userTokens, err := createUsers(svc, 2)
	if err != nil {
		log.Fatalf("Error creating test users: %v", err)
	}
	suite.setupEcho(svc)
	suite.aliceLogin = users[0]
	suite.aliceToken = userTokens[0]
	suite.bobToken = userTokens[1]
}

func (suite *LoanTestSuite) TearDownTest() {
	clearTable(suite.service, "loans")
	clearTable(suite.service, "accounts")
}

func (suite *LoanTestSuite) TestIssueLoan() {
	account := suite.createAccountReq(common.AccountTypeChecking, common.CurrencyUSD, suite.aliceToken)
	suite.setCreditScore(getUserIdFromToken(suite.aliceToken), 700)

	loan := suite.createLoanReq(&controllers.CreateLoanRequestBody{
		LoanAmount:    "5000.00",
		LoanDuration:  "12",
		MonthlyIncome: "1000.00",
		AccountID:     account.ID.String(),
	}, suite.aliceToken)
	assert.Equal(suite.T(), account.ID, loan.AccountID)
	assert.Equal(suite.T(), "5000.00", loan.LoanAmount.StringFixed(2))
	assert.Equal(suite.T(), 12, loan.LoanDuration)
	assert.False(suite.T(), loan.Repaid())

	rec := suite.request(http.MethodGet, "/loans", nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	loans := []models.Loan{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&loans))
	assert.Equal(suite.T(), 1, len(loans))
	assert.Equal(suite.T(), loan.ID, loans[0].ID)
}

func (suite *LoanTestSuite) TestIssueLoanLowCreditScore() {
	account := suite.createAccountReq(common.AccountTypeChecking, common.CurrencyUSD, suite.aliceToken)
	suite.setCreditScore(getUserIdFromToken(suite.aliceToken), common.MinCreditScore-1)

	errorResponse := suite.createLoanReqError(&controllers.CreateLoanRequestBody{
		LoanAmount:    "1000.00",
		LoanDuration:  "12",
		MonthlyIncome: "1000.00",
		AccountID:     account.ID.String(),
	}, suite.aliceToken, http.StatusBadRequest)
	assert.Equal(suite.T(), responses.CreditScoreTooLowError.Code, errorResponse.Code)
}

func (suite *LoanTestSuite) TestIssueLoanTooLarge() {
	account := suite.createAccountReq(common.AccountTypeChecking, common.CurrencyUSD, suite.aliceToken)
	suite.setCreditScore(getUserIdFromToken(suite.aliceToken), 700)

	// principal above ten times the monthly income is rejected
	errorResponse := suite.createLoanReqError(&controllers.CreateLoanRequestBody{
		LoanAmount:    "10000.01",
		LoanDuration:  "12",
		MonthlyIncome: "1000.00",
		AccountID:     account.ID.String(),
	}, suite.aliceToken, http.StatusBadRequest)
	assert.Equal(suite.T(), responses.LoanTooLargeError.Code, errorResponse.Code)

	// exactly ten times is still eligible
	suite.createLoanReq(&controllers.CreateLoanRequestBody{
		LoanAmount:    "10000.00",
		LoanDuration:  "12",
		MonthlyIncome: "1000.00",
		AccountID:     account.ID.String(),
	}, suite.aliceToken)
}

func (suite *LoanTestSuite) TestPayLoan() {
	account := suite.createAccountReq(common.AccountTypeChecking, common.CurrencyUSD, suite.aliceToken)
	suite.setCreditScore(getUserIdFromToken(suite.aliceToken), 700)

	loan := suite.createLoanReq(&controllers.CreateLoanRequestBody{
		LoanAmount:    "100.00",
		LoanDuration:  "6",
		MonthlyIncome: "1000.00",
		AccountID:     account.ID.String(),
	}, suite.aliceToken)

	paymentResponse := suite.payLoanReq(&controllers.LoanPaymentRequestBody{
		LoanID:        loan.ID.String(),
		PaymentAmount: "40.00",
	}, suite.aliceToken)
	assert.Equal(suite.T(), "60.00", paymentResponse.RemainingBalance)

	paymentResponse = suite.payLoanReq(&controllers.LoanPaymentRequestBody{
		LoanID:        loan.ID.String(),
		PaymentAmount: "60.00",
	}, suite.aliceToken)
	assert.Equal(suite.T(), "0.00", paymentResponse.RemainingBalance)

	// the repaid loan is kept, not deleted
	rec := suite.request(http.MethodGet, "/loans", nil, suite.aliceToken)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	loans := []models.Loan{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(&loans))
	assert.Equal(suite.T(), 1, len(loans))
	assert.True(suite.T(), loans[0].Repaid())

	// any further payment against it is an overpayment
	errorResponse := suite.payLoanReqError(&controllers.LoanPaymentRequestBody{
		LoanID:        loan.ID.String(),
		PaymentAmount: "0.01",
	}, suite.aliceToken, http.StatusBadRequest)
	assert.Equal(suite.T(), responses.OverPaymentError.Code, errorResponse.Code)
}

func (suite *LoanTestSuite) TestPayLoanInvalidPayment() {
	account := suite.createAccountReq(common.AccountTypeChecking, common.CurrencyUSD, suite.aliceToken)
	suite.setCreditScore(getUserIdFromToken(suite.aliceToken), 700)

	loan := suite.createLoanReq(&controllers.CreateLoanRequestBody{
		LoanAmount:    "100.00",
		LoanDuration:  "6",
		MonthlyIncome: "1000.00",
		AccountID:     account.ID.String(),
	}, suite.aliceToken)

	errorResponse := suite.payLoanReqError(&controllers.LoanPaymentRequestBody{
		LoanID:        loan.ID.String(),
		PaymentAmount: "-5.00",
	}, suite.aliceToken, http.StatusBadRequest)
	assert.Equal(suite.T(), responses.InvalidPaymentError.Code, errorResponse.Code)

	errorResponse = suite.payLoanReqError(&controllers.LoanPaymentRequestBody{
		LoanID:        loan.ID.String(),
		PaymentAmount: "100.01",
	}, suite.aliceToken, http.StatusBadRequest)
	assert.Equal(suite.T(), responses.OverPaymentError.Code, errorResponse.Code)
}

func (suite *LoanTestSuite) TestPayForeignLoan() {
	account := suite.createAccountReq(common.AccountTypeChecking, common.CurrencyUSD, suite.aliceToken)
	suite.setCreditScore(getUserIdFromToken(suite.aliceToken), 700)

	loan := suite.createLoanReq(&controllers.CreateLoanRequestBody{
		LoanAmount:    "100.00",
		LoanDuration:  "6",
		MonthlyIncome: "1000.00",
		AccountID:     account.ID.String(),
	}, suite.aliceToken)

	// bob cannot pay, or even see, alice's loan
	errorResponse := suite.payLoanReqError(&controllers.LoanPaymentRequestBody{
		LoanID:        loan.ID.String(),
		PaymentAmount: "10.00",
	}, suite.bobToken, http.StatusNotFound)
	assert.Equal(suite.T(), responses.LoanNotFoundError.Code, errorResponse.Code)
}

func TestLoanTestSuite(t *testing.T) {
	if os.Getenv("DATABASE_URI") == "" {
		t.Skip("set DATABASE_URI to run integration tests")
	}
	suite.Run(t, new(LoanTestSuite))
}
