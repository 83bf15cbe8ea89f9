package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kaang457/vault/db/models"
	"github.com/kaang457/vault/lib/security"
	"github.com/kaang457/vault/lib/tokens"
	"github.com/kaang457/vault/rabbitmq"
	"github.com/labstack/gommon/random"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"github.com/ziflex/lecho/v3"
)

const alphaNumBytes = random.Alphanumeric

type VaultService struct {
	Config         *Config
	DB             *bun.DB
	Logger         *lecho.Logger
	TxPubSub       *Pubsub
	RabbitMQClient rabbitmq.Client
}

func (svc *VaultService) GenerateToken(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	var user models.User

	switch {
	case email != "" || password != "":
		{
			if err := svc.DB.NewSelect().Model(&user).Where("email = ?", email).Scan(ctx); err != nil {
				return "", "", fmt.Errorf("bad auth")
			}
			if !security.VerifyPassword(user.Password, password) {
				return "", "", fmt.Errorf("bad auth")
			}
		}
	default:
		{
			return "", "", fmt.Errorf("email and password are required")
		}
	}

	accessToken, err = tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, &user)
	if err != nil {
		return "", "", err
	}

	refreshToken, err = tokens.GenerateRefreshToken(svc.Config.JWTSecret, svc.Config.JWTRefreshTokenExpiry, &user)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// ParseAmount accepts the amount field of a request body, which clients
// send either as a JSON number or as a string, and returns it as an
// exact decimal.
func (svc *VaultService) ParseAmount(value interface{}) (decimal.Decimal, error) {
	switch amount := value.(type) {
	case nil:
		return decimal.Zero, fmt.Errorf("amount is missing")
	case string:
		return decimal.NewFromString(amount)
	case float64:
		return decimal.NewFromFloat(amount), nil
	case int64:
		return decimal.NewFromInt(amount), nil
	case int:
		return decimal.NewFromInt(int64(amount)), nil
	default:
		return decimal.NewFromString(fmt.Sprintf("%v", amount))
	}
}

// ParseInt accepts integer request fields sent either as JSON numbers
// or as strings.
func (svc *VaultService) ParseInt(value interface{}) (int64, error) {
	switch v := value.(type) {
	case float64:
		return int64(v), nil
	case string:
		c, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, err
		}
		return c, nil
	default:
		return 0, fmt.Errorf("conversion to int64 from %T not supported", v)
	}
}
