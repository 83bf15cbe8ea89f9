package controllers

import (
	"net/http"

	"github.com/kaang457/vault/lib/responses"
	"github.com/kaang457/vault/lib/service"
	"github.com/labstack/echo/v4"
)

// AuthController : Auth controller struct
type AuthController struct {
	svc *service.VaultService
}

func NewAuthController(svc *service.VaultService) *AuthController {
	return &AuthController{svc: svc}
}

type AuthRequestBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponseBody struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Auth godoc
// @Summary      Authenticate
// @Description  Exchanges email and password for a token pair
// @Accept       json
// @Produce      json
// @Tags         Auth
// @Param        AuthRequest  body      AuthRequestBody  True  "Credentials"
// @Success      200          {object}  AuthResponseBody
// @Failure      400          {object}  responses.ErrorResponse
// @Failure      401          {object}  responses.ErrorResponse
// @Router       /auth [post]
func (controller *AuthController) Auth(c echo.Context) error {
	var body AuthRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load auth request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid auth request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	accessToken, refreshToken, err := controller.svc.GenerateToken(c.Request().Context(), body.Email, body.Password)
	if err != nil {
		c.Logger().Errorf("Authentication error: %v", err)
		return c.JSON(http.StatusUnauthorized, responses.BadAuthError)
	}

	return c.JSON(http.StatusOK, &AuthResponseBody{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}
