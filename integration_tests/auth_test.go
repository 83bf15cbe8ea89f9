package integration_tests

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/kaang457/vault/controllers"
	"github.com/kaang457/vault/lib"
	"github.com/kaang457/vault/lib/responses"
	"github.com/kaang457/vault/lib/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AuthTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	service *service.VaultService
}

func (suite *AuthTestSuite) SetupSuite() {
	svc, err := VaultTestServiceInit()
	if err != nil {
		log.Fatalf("Error initializing test service: %v", err)
	}
	suite.service = svc

	e := echo.New()
	e.HTTPErrorHandler = responses.HTTPErrorHandler
	e.Validator = &lib.CustomValidator{Validator: validator.New()}
	e.POST("/auth", controllers.NewAuthController(svc).Auth)
	e.POST("/users", controllers.NewCreateUserController(svc).CreateUser)
	suite.echo = e
}

func (suite *AuthTestSuite) TearDownSuite() {
	clearTable(suite.service, "users")
}

func (suite *AuthTestSuite) post(path string, body interface{}) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var buf bytes.Buffer
	assert.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	suite.echo.ServeHTTP(rec, req)
	return rec
}

func (suite *AuthTestSuite) TestCreateUserAndAuthenticate() {
	rec := suite.post("/users", &controllers.CreateUserRequestBody{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "correct horse battery staple",
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	createResponse := &controllers.CreateUserResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(createResponse))
	assert.Equal(suite.T(), "alice@example.com", createResponse.Email)
	assert.NotEmpty(suite.T(), createResponse.ID)

	rec = suite.post("/auth", &controllers.AuthRequestBody{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	authResponse := &controllers.AuthResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(authResponse))
	assert.NotEmpty(suite.T(), authResponse.AccessToken)
	assert.NotEmpty(suite.T(), authResponse.RefreshToken)
	assert.Equal(suite.T(), createResponse.ID, getUserIdFromToken(authResponse.AccessToken).String())
}

func (suite *AuthTestSuite) TestCreateUserGeneratesCredentials() {
	rec := suite.post("/users", &controllers.CreateUserRequestBody{})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	createResponse := &controllers.CreateUserResponseBody{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(createResponse))
	assert.NotEmpty(suite.T(), createResponse.Email)
	assert.NotEmpty(suite.T(), createResponse.Password)

	rec = suite.post("/auth", &controllers.AuthRequestBody{
		Email:    createResponse.Email,
		Password: createResponse.Password,
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *AuthTestSuite) TestAuthWrongPassword() {
	rec := suite.post("/users", &controllers.CreateUserRequestBody{
		Email:    "carol@example.com",
		Name:     "Carol",
		Password: "her real password",
	})
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	rec = suite.post("/auth", &controllers.AuthRequestBody{
		Email:    "carol@example.com",
		Password: "not her password",
	})
	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	errorResponse := &responses.ErrorResponse{}
	assert.NoError(suite.T(), json.NewDecoder(rec.Body).Decode(errorResponse))
	assert.Equal(suite.T(), responses.BadAuthError.Code, errorResponse.Code)
}

func (suite *AuthTestSuite) TestAuthMissingFields() {
	rec := suite.post("/auth", &controllers.AuthRequestBody{Email: "dave@example.com"})
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func TestAuthTestSuite(t *testing.T) {
	if os.Getenv("DATABASE_URI") == "" {
		t.Skip("set DATABASE_URI to run integration tests")
	}
	suite.Run(t, new(AuthTestSuite))
}
