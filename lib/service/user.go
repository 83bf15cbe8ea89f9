package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kaang457/vault/db/models"
	"github.com/kaang457/vault/lib/security"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

func (svc *VaultService) CreateUser(ctx context.Context, email, name, password string) (user *models.User, err error) {

	user = &models.User{
		Email: email,
		Name:  name,
	}

	// generate user email/password if not provided
	if email == "" {
		randLoginBytes, err := randBytesFromStr(20, alphaNumBytes)
		if err != nil {
			return nil, err
		}
		user.Email = fmt.Sprintf("%s@vault.local", string(randLoginBytes))
	}

	if password == "" {
		randPasswordBytes, err := randBytesFromStr(20, alphaNumBytes)
		if err != nil {
			return nil, err
		}
		password = string(randPasswordBytes)
	} else {
		if svc.Config.MinPasswordEntropy > 0 {
			entropy := passwordvalidator.GetEntropy(password)
			if entropy < float64(svc.Config.MinPasswordEntropy) {
				return nil, fmt.Errorf("password entropy is too low (%f), required is %d", entropy, svc.Config.MinPasswordEntropy)
			}
		}
	}

	// we only store the hashed password but return the initial plain text password in the HTTP response
	user.Password = security.HashPassword(password)

	_, err = svc.DB.NewInsert().Model(user).Exec(ctx)
	//return actual password in the response, not the hashed one
	user.Password = password
	return user, err
}

func (svc *VaultService) FindUser(ctx context.Context, userId uuid.UUID) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("id = ?", userId).Limit(1).Scan(ctx)
	if err != nil {
		return &user, err
	}
	return &user, nil
}

func (svc *VaultService) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	err := svc.DB.NewSelect().Model(&user).Where("email = ?", email).Limit(1).Scan(ctx)
	if err != nil {
		return &user, err
	}
	return &user, nil
}

func (svc *VaultService) UserTransactionsFor(ctx context.Context, userId uuid.UUID) ([]models.UserTransaction, error) {
	userTransactions := []models.UserTransaction{}
	err := svc.DB.NewSelect().Model(&userTransactions).Where("user_id = ?", userId).OrderExpr("created_at DESC").Scan(ctx)
	return userTransactions, err
}
