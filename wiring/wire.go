//go:build wireinject
// +build wireinject

package wiring

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/adexltd/accounts-service/clients/cognito"
	"github.com/adexltd/accounts-service/config"
	"github.com/adexltd/accounts-service/controllers"
	"github.com/adexltd/accounts-service/middleware/authgate"
	"github.com/adexltd/accounts-service/repositories"
	"github.com/adexltd/accounts-service/services"
)

var configProviderSet = wire.NewSet(
	ProvideConfigFromPtr,
	ProvideCognitoConfig,
)

var clientProviderSet = wire.NewSet(
	ProvideCognitoClient,
	ProvideJWKSHTTPClient,
)

var gateProviderSet = wire.NewSet(
	ProvideVerifier,
	ProvideGate,
	ProvideAuthMiddleware,
)

var repositoryProviderSet = wire.NewSet(
	repositories.NewUserRepo,
)

var serviceProviderSet = wire.NewSet(
	ProvideAuthServiceConfig,
	services.NewAuthService,
	services.NewUserService,
)

var controllerProviderSet = wire.NewSet(
	controllers.NewAuthController,
	controllers.NewUserController,
)

var loggerProviderSet = wire.NewSet(
	ProvideLogger,
)

func InitializeAppParams(cfg *config.Config, db *gorm.DB) (*AppParams, error) {
	wire.Build(
		configProviderSet,
		clientProviderSet,
		gateProviderSet,
		repositoryProviderSet,
		serviceProviderSet,
		controllerProviderSet,
		loggerProviderSet,
		wire.Struct(new(AppParams), "*"),
	)
	return &AppParams{}, nil
}

// InitializeTestAppParams wires the application with a fake identity provider
// and a caller-supplied auth middleware for handler tests
func InitializeTestAppParams(cfg *config.Config, db *gorm.DB, provider cognito.Client, authMiddleware authgate.Middleware) (*AppParams, error) {
	wire.Build(
		ProvideConfigFromPtr,
		repositoryProviderSet,
		serviceProviderSet,
		controllerProviderSet,
		loggerProviderSet,
		wire.Struct(new(AppParams), "*"),
	)
	return &AppParams{}, nil
}
