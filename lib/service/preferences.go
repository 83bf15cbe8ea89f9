package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/kaang457/vault/db/models"
)

func (svc *VaultService) PreferencesFor(ctx context.Context, userId uuid.UUID) ([]models.AccountPreference, error) {
	preferences := []models.AccountPreference{}
	err := svc.DB.NewSelect().Model(&preferences).Where("user_id = ?", userId).OrderExpr("created_at ASC").Scan(ctx)
	return preferences, err
}

// CreatePreference saves a payee alias outside of a transfer. The
// receiver account must exist; ownership of the receiver is not
// required, only of the preference itself.
func (svc *VaultService) CreatePreference(ctx context.Context, userId, receiverAccountId uuid.UUID, alias string) (*models.AccountPreference, error) {
	if _, err := svc.FindAccount(ctx, receiverAccountId); err != nil {
		return nil, err
	}

	preference := &models.AccountPreference{
		UserID:            userId,
		ReceiverAccountID: receiverAccountId,
		Alias:             alias,
	}
	if _, err := svc.DB.NewInsert().Model(preference).Exec(ctx); err != nil {
		return nil, err
	}
	return preference, nil
}
