package controllers

import (
	"net/http"

	"github.com/kaang457/vault/lib/responses"
	"github.com/kaang457/vault/lib/service"
	"github.com/labstack/echo/v4"
)

// CreateUserController : Create user controller struct
type CreateUserController struct {
	svc *service.VaultService
}

func NewCreateUserController(svc *service.VaultService) *CreateUserController {
	return &CreateUserController{svc: svc}
}

type CreateUserRequestBody struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type CreateUserResponseBody struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUser godoc
// @Summary      Create a user
// @Description  Creates a user, generating credentials when they are omitted
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        CreateUserRequest  body      CreateUserRequestBody  False  "Create User"
// @Success      200                {object}  CreateUserResponseBody
// @Failure      400                {object}  responses.ErrorResponse
// @Failure      500                {object}  responses.ErrorResponse
// @Router       /users [post]
func (controller *CreateUserController) CreateUser(c echo.Context) error {
	var body CreateUserRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load create user request body: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	user, err := controller.svc.CreateUser(c.Request().Context(), body.Email, body.Name, body.Password)
	if err != nil {
		c.Logger().Errorf("Failed to create user: %v", err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	return c.JSON(http.StatusOK, &CreateUserResponseBody{
		ID:       user.ID.String(),
		Email:    user.Email,
		Password: user.Password,
	})
}
