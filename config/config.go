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

package config

// Config holds all configuration for the application
type Config struct {
	ServerHost          string
	ServerPort          int
	AuthHeader          string
	AutoMaxProcsEnabled bool
	LogLevel            string
	POSTGRESQL          POSTGRESQL

	// HTTP Server timeout configurations
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
	IdleTimeoutSeconds  int
	MaxHeaderBytes      int

	// Database operation timeout configuration
	DbOperationTimeoutSeconds int

	// CORSAllowedOrigin is the single allowed origin for CORS; use "*" to allow all
	CORSAllowedOrigin string

	// Cognito holds the identity-provider configuration
	Cognito CognitoConfig

	// AllowedEmailDomain restricts registration to addresses of one domain.
	// Empty string disables the restriction.
	AllowedEmailDomain string
}

// CognitoConfig holds the Cognito user pool and app client configuration
type CognitoConfig struct {
	Region       string
	UserPoolID   string
	ClientID     string
	ClientSecret string `json:"-"`

	// AccessKeyID and SecretAccessKey select the static AWS credentials path.
	// Leave both empty to use the default credential chain.
	AccessKeyID     string
	SecretAccessKey string `json:"-"`

	// IssuerURL and JWKSURL are derived from Region and UserPoolID unless
	// overridden (local development against a pool emulator)
	IssuerURL string
	JWKSURL   string

	// RequestTimeoutSeconds bounds each outbound provider call (JWKS fetch,
	// user lookup). A timeout is surfaced as provider-unreachable and is never
	// retried within the same request.
	RequestTimeoutSeconds int

	// JWKSCacheTTLSeconds is how long a fetched key set is reused before the
	// next verification refetches it. Zero disables caching.
	JWKSCacheTTLSeconds int
}

type POSTGRESQL struct {
	Host     string
	Port     int
	User     string
	DBName   string
	Password string `json:"-"`
	DbConfigs
}

type DbConfigs struct {
	// gorm configs
	SlowThresholdMilliseconds int64
	SkipDefaultTransaction    bool

	// go sql configs
	MaxIdleCount       *int64 // zero means defaultMaxIdleConns (2); negative means 0
	MaxOpenCount       *int64 // <= 0 means unlimited
	MaxLifetimeSeconds *int64 // maximum amount of time a connection may be reused
	MaxIdleTimeSeconds *int64
}
