package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/kaang457/vault/lib/responses"
	"github.com/kaang457/vault/lib/service"
	"github.com/labstack/echo/v4"
)

// PreferenceController : Account preference controller struct
type PreferenceController struct {
	svc *service.VaultService
}

func NewPreferenceController(svc *service.VaultService) *PreferenceController {
	return &PreferenceController{svc: svc}
}

type CreatePreferenceRequestBody struct {
	Alias             string `json:"alias"`
	ReceiverAccountID string `json:"receiver_account_id" validate:"required"`
}

// GetPreferences godoc
// @Summary      List saved payees
// @Description  Returns the caller's saved payee aliases
// @Produce      json
// @Tags         Account
// @Success      200  {object}  []models.AccountPreference
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /account-preferences [get]
// @Security     OAuth2Password
func (controller *PreferenceController) GetPreferences(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)

	preferences, err := controller.svc.PreferencesFor(c.Request().Context(), userId)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, preferences)
}

// CreatePreference godoc
// @Summary      Save a payee
// @Description  Saves a receiver account under an alias for the caller
// @Accept       json
// @Produce      json
// @Tags         Account
// @Param        CreatePreferenceRequest  body      CreatePreferenceRequestBody  True  "Payee to save"
// @Success      201                      {object}  models.AccountPreference
// @Failure      400                      {object}  responses.ErrorResponse
// @Failure      404                      {object}  responses.ErrorResponse
// @Router       /account-preferences [post]
// @Security     OAuth2Password
func (controller *PreferenceController) CreatePreference(c echo.Context) error {
	userId := c.Get("UserID").(uuid.UUID)
	var body CreatePreferenceRequestBody

	if err := c.Bind(&body); err != nil {
		c.Logger().Errorf("Failed to load preference request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}
	if err := c.Validate(&body); err != nil {
		c.Logger().Errorf("Invalid preference request body: user_id:%v error: %v", userId, err)
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	receiverId, err := uuid.Parse(body.ReceiverAccountID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	preference, err := controller.svc.CreatePreference(c.Request().Context(), userId, receiverId, body.Alias)
	if err != nil {
		if resp, ok := errorResponseFor(err); ok {
			return c.JSON(resp.HttpStatusCode, resp)
		}
		return err
	}

	return c.JSON(http.StatusCreated, preference)
}
