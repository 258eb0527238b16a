// Copyright (c) 2025, Adex Ltd. (https://adex.ltd).
//
// Adex Ltd. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package wiring

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/adexltd/accounts-service/clients/cognito"
	"github.com/adexltd/accounts-service/clients/requests"
	"github.com/adexltd/accounts-service/config"
	"github.com/adexltd/accounts-service/controllers"
	"github.com/adexltd/accounts-service/middleware/authgate"
	"github.com/adexltd/accounts-service/repositories"
	"github.com/adexltd/accounts-service/services"
)

// AppParams contains all wired application dependencies
type AppParams struct {
	// Middleware
	AuthMiddleware authgate.Middleware
	Logger         *slog.Logger

	// Controllers
	AuthController controllers.AuthController
	UserController controllers.UserController

	// Repositories
	UserRepository repositories.UserRepository

	// Database
	DB *gorm.DB
}

func ProvideConfigFromPtr(config *config.Config) config.Config {
	return *config
}

func ProvideCognitoConfig(cfg config.Config) config.CognitoConfig {
	return cfg.Cognito
}

// ProvideCognitoClient builds the identity provider client
func ProvideCognitoClient(cfg config.CognitoConfig) (cognito.Client, error) {
	return cognito.NewClient(context.Background(), cognito.Config{
		Region:                cfg.Region,
		ClientID:              cfg.ClientID,
		ClientSecret:          cfg.ClientSecret,
		AccessKeyID:           cfg.AccessKeyID,
		SecretAccessKey:       cfg.SecretAccessKey,
		RequestTimeoutSeconds: cfg.RequestTimeoutSeconds,
	})
}

// ProvideAuthServiceConfig maps the application configuration onto the slice
// the auth service needs
func ProvideAuthServiceConfig(cfg config.Config) services.AuthConfig {
	return services.AuthConfig{AllowedEmailDomain: cfg.AllowedEmailDomain}
}

// ProvideJWKSHTTPClient builds the HTTP client used to fetch the key set,
// bounded by the same per-call timeout as the provider SDK calls
func ProvideJWKSHTTPClient(cfg config.CognitoConfig) requests.HttpClient {
	return &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second}
}

// ProvideVerifier builds the token signature verifier
func ProvideVerifier(cfg config.CognitoConfig, client requests.HttpClient) *authgate.Verifier {
	return authgate.NewVerifier(cfg.JWKSURL, cfg.IssuerURL, client,
		time.Duration(cfg.JWKSCacheTTLSeconds)*time.Second)
}

// ProvideGate assembles the authentication gate from its collaborators
func ProvideGate(verifier *authgate.Verifier, provider cognito.Client, users repositories.UserRepository) *authgate.Gate {
	return authgate.NewGate(verifier, provider, users)
}

func ProvideAuthMiddleware(cfg config.Config, gate *authgate.Gate) authgate.Middleware {
	return gate.Middleware(cfg.AuthHeader)
}

// ProvideLogger provides the configured slog.Logger instance
func ProvideLogger() *slog.Logger {
	return slog.Default()
}
