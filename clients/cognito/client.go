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

package cognito

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	idp "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

// Config holds the user pool and app client settings the client needs
type Config struct {
	Region       string
	ClientID     string
	ClientSecret string

	// AccessKeyID and SecretAccessKey select the static AWS credentials path.
	// Leave both empty to use the default credential chain.
	AccessKeyID     string
	SecretAccessKey string

	// RequestTimeoutSeconds bounds each outbound call. A timeout surfaces as
	// ErrUnavailable and is never retried within the same request.
	RequestTimeoutSeconds int
}

// Client is the narrow interface the rest of the service uses to talk to the
// identity provider. It exists so handlers and the authentication gate can be
// tested against a fake provider.
type Client interface {
	// InitiateAuth performs the USER_PASSWORD_AUTH flow
	InitiateAuth(ctx context.Context, email, password string) (*AuthResult, error)
	// RefreshTokens performs the REFRESH_TOKEN_AUTH flow
	RefreshTokens(ctx context.Context, username, refreshToken string) (*AuthResult, error)
	SignUp(ctx context.Context, username, password, email, name string) (*SignUpResult, error)
	ConfirmSignUp(ctx context.Context, username, code string) error
	ResendConfirmationCode(ctx context.Context, username string) error
	// GetUser fetches the provider's live record for the bearer of accessToken
	GetUser(ctx context.Context, accessToken string) (*RemoteUser, error)
	ChangePassword(ctx context.Context, accessToken, previousPassword, proposedPassword string) error
	ForgotPassword(ctx context.Context, username string) error
	ConfirmForgotPassword(ctx context.Context, username, code, password string) error
}

type client struct {
	cfg Config
	api *idp.Client
}

// NewClient builds the Cognito client. Credentials come from the default AWS
// chain (environment, shared config, instance role); explicit keys in the
// configuration take the static path.
func NewClient(ctx context.Context, cfg Config) (Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		// A failed or timed-out call is a verdict for the caller to act on,
		// never something to retry within the same request
		awsconfig.WithRetryer(noRetry),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &client{
		cfg: cfg,
		api: idp.NewFromConfig(awsCfg),
	}, nil
}

// noRetry keeps every SDK call to a single attempt
func noRetry() aws.Retryer {
	return aws.NopRetryer{}
}

// opContext bounds a single provider call. Timeouts surface as ErrUnavailable
// through wrapErr; the caller decides what a failed call means.
func (c *client) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(c.cfg.RequestTimeoutSeconds)*time.Second)
}

func (c *client) secretHash(subject string) string {
	return SecretHash(subject, c.cfg.ClientID, c.cfg.ClientSecret)
}

func (c *client) InitiateAuth(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	out, err := c.api.InitiateAuth(ctx, &idp.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(c.cfg.ClientID),
		AuthParameters: map[string]string{
			"USERNAME":    email,
			"PASSWORD":    password,
			"SECRET_HASH": c.secretHash(email),
		},
	})
	if err != nil {
		return nil, wrapErr("InitiateAuth", err)
	}
	return authResultFrom(out.AuthenticationResult)
}

func (c *client) RefreshTokens(ctx context.Context, username, refreshToken string) (*AuthResult, error) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	out, err := c.api.InitiateAuth(ctx, &idp.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		ClientId: aws.String(c.cfg.ClientID),
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
			"SECRET_HASH":   c.secretHash(username),
		},
	})
	if err != nil {
		return nil, wrapErr("RefreshTokens", err)
	}
	return authResultFrom(out.AuthenticationResult)
}

func (c *client) SignUp(ctx context.Context, username, password, email, name string) (*SignUpResult, error) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	attributes := []types.AttributeType{
		{Name: aws.String("email"), Value: aws.String(email)},
	}
	if name != "" {
		attributes = append(attributes, types.AttributeType{
			Name: aws.String("name"), Value: aws.String(name),
		})
	}

	out, err := c.api.SignUp(ctx, &idp.SignUpInput{
		ClientId:       aws.String(c.cfg.ClientID),
		SecretHash:     aws.String(c.secretHash(username)),
		Username:       aws.String(username),
		Password:       aws.String(password),
		UserAttributes: attributes,
	})
	if err != nil {
		return nil, wrapErr("SignUp", err)
	}
	return &SignUpResult{
		Sub:           aws.ToString(out.UserSub),
		UserConfirmed: out.UserConfirmed,
	}, nil
}

func (c *client) ConfirmSignUp(ctx context.Context, username, code string) error {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	_, err := c.api.ConfirmSignUp(ctx, &idp.ConfirmSignUpInput{
		ClientId:         aws.String(c.cfg.ClientID),
		SecretHash:       aws.String(c.secretHash(username)),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return wrapErr("ConfirmSignUp", err)
	}
	return nil
}

func (c *client) ResendConfirmationCode(ctx context.Context, username string) error {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	_, err := c.api.ResendConfirmationCode(ctx, &idp.ResendConfirmationCodeInput{
		ClientId:   aws.String(c.cfg.ClientID),
		SecretHash: aws.String(c.secretHash(username)),
		Username:   aws.String(username),
	})
	if err != nil {
		return wrapErr("ResendConfirmationCode", err)
	}
	return nil
}

func (c *client) GetUser(ctx context.Context, accessToken string) (*RemoteUser, error) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	out, err := c.api.GetUser(ctx, &idp.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return nil, wrapErr("GetUser", err)
	}

	user := &RemoteUser{
		Username:   aws.ToString(out.Username),
		Attributes: make([]Attribute, 0, len(out.UserAttributes)),
	}
	for _, attr := range out.UserAttributes {
		user.Attributes = append(user.Attributes, Attribute{
			Name:  aws.ToString(attr.Name),
			Value: aws.ToString(attr.Value),
		})
	}
	return user, nil
}

func (c *client) ChangePassword(ctx context.Context, accessToken, previousPassword, proposedPassword string) error {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	_, err := c.api.ChangePassword(ctx, &idp.ChangePasswordInput{
		AccessToken:      aws.String(accessToken),
		PreviousPassword: aws.String(previousPassword),
		ProposedPassword: aws.String(proposedPassword),
	})
	if err != nil {
		return wrapErr("ChangePassword", err)
	}
	return nil
}

func (c *client) ForgotPassword(ctx context.Context, username string) error {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	_, err := c.api.ForgotPassword(ctx, &idp.ForgotPasswordInput{
		ClientId:   aws.String(c.cfg.ClientID),
		SecretHash: aws.String(c.secretHash(username)),
		Username:   aws.String(username),
	})
	if err != nil {
		return wrapErr("ForgotPassword", err)
	}
	return nil
}

func (c *client) ConfirmForgotPassword(ctx context.Context, username, code, password string) error {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	_, err := c.api.ConfirmForgotPassword(ctx, &idp.ConfirmForgotPasswordInput{
		ClientId:         aws.String(c.cfg.ClientID),
		SecretHash:       aws.String(c.secretHash(username)),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(password),
	})
	if err != nil {
		return wrapErr("ConfirmForgotPassword", err)
	}
	return nil
}

func authResultFrom(result *types.AuthenticationResultType) (*AuthResult, error) {
	if result == nil {
		return nil, fmt.Errorf("cognito: authentication result missing: %w", ErrUnavailable)
	}
	return &AuthResult{
		AccessToken:  aws.ToString(result.AccessToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		IDToken:      aws.ToString(result.IdToken),
		TokenType:    aws.ToString(result.TokenType),
		ExpiresIn:    result.ExpiresIn,
	}, nil
}
