package transport

import (
	"github.com/kaang457/vault/controllers"
	"github.com/kaang457/vault/lib/service"
	"github.com/labstack/echo/v4"
)

func RegisterEndpoints(svc *service.VaultService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	e.POST("/auth", controllers.NewAuthController(svc).Auth, strictRateLimitMiddleware, logMw)
	e.GET("/healthz", controllers.NewHealthController().Check)
	if svc.Config.AllowAccountCreation {
		e.POST("/users", controllers.NewCreateUserController(svc).CreateUser, strictRateLimitMiddleware, adminMw, logMw)
	}

	accountCtrl := controllers.NewAccountController(svc)
	secured.POST("/accounts", accountCtrl.CreateAccount)
	secured.GET("/accounts", accountCtrl.GetAccounts)
	secured.GET("/accounts/:id", accountCtrl.GetAccount)
	secured.GET("/account-transactions", accountCtrl.GetAccountTransactions)
	secured.GET("/user-transactions", accountCtrl.GetUserTransactions)

	transferCtrl := controllers.NewTransferController(svc)
	securedWithStrictRateLimit.POST("/transactions", transferCtrl.Transfer)
	secured.GET("/transactions", transferCtrl.GetTransactions)

	stockCtrl := controllers.NewStockController(svc)
	securedWithStrictRateLimit.POST("/stocks/buy", stockCtrl.BuyStock)
	securedWithStrictRateLimit.POST("/stocks/sell", stockCtrl.SellStock)
	cacheClient := CreateCacheClient()
	secured.GET("/stocks/portfolio", stockCtrl.Portfolio, cacheClient.Middleware())

	loanCtrl := controllers.NewLoanController(svc)
	secured.POST("/loans", loanCtrl.CreateLoan)
	secured.GET("/loans", loanCtrl.GetLoans)
	securedWithStrictRateLimit.POST("/loans/pay", loanCtrl.PayLoan)

	preferenceCtrl := controllers.NewPreferenceController(svc)
	secured.GET("/account-preferences", preferenceCtrl.GetPreferences)
	secured.POST("/account-preferences", preferenceCtrl.CreatePreference)
}
