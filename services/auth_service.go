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

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/adexltd/accounts-service/clients/cognito"
	"github.com/adexltd/accounts-service/middleware/logger"
	"github.com/adexltd/accounts-service/models"
	"github.com/adexltd/accounts-service/repositories"
	"github.com/adexltd/accounts-service/utils"
)

// usernameGenerationAttempts bounds the retry loop when a generated username
// collides with an existing row
const usernameGenerationAttempts = 5

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Login exchanges email and password for a token set
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)

	// Register creates the provider account and the local user record
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)

	// ConfirmSignup confirms a registration with the emailed code
	ConfirmSignup(ctx context.Context, req models.ConfirmSignupRequest) error

	// RefreshToken exchanges a refresh token for a fresh token set
	RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.AuthTokens, error)

	// ResendCode re-sends the signup confirmation code
	ResendCode(ctx context.Context, req models.ResendCodeRequest) error

	// ResetPassword changes the password of the authenticated caller
	ResetPassword(ctx context.Context, user *models.AuthenticatedUser, req models.ResetPasswordRequest) error

	// ForgotPassword starts the password recovery flow
	ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error

	// ConfirmForgotPassword completes password recovery with the emailed code
	ConfirmForgotPassword(ctx context.Context, req models.ConfirmForgotPasswordRequest) error
}

// AuthConfig carries the registration policy settings
type AuthConfig struct {
	// AllowedEmailDomain restricts registration to one email domain;
	// empty disables the restriction
	AllowedEmailDomain string
}

type authService struct {
	provider cognito.Client
	users    repositories.UserRepository
	cfg      AuthConfig
}

// NewAuthService creates a new authentication service
func NewAuthService(provider cognito.Client, users repositories.UserRepository, cfg AuthConfig) AuthService {
	return &authService{
		provider: provider,
		users:    users,
		cfg:      cfg,
	}
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", utils.ErrBadRequest)
	}

	result, err := s.provider.InitiateAuth(ctx, req.Email, req.Password)
	if err != nil {
		if _, rejected := cognito.IsRejected(err); rejected {
			// Wrong password and unknown user read the same to the caller
			return nil, fmt.Errorf("authentication rejected: %w", utils.ErrUnauthorized)
		}
		return nil, fmt.Errorf("login: %w", utils.ErrProviderUnavailable)
	}

	response := &models.LoginResponse{Tokens: *tokensFrom(result)}

	// The profile is best-effort on login; a missing row surfaces later at
	// the gate, not here
	record, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.GetLogger(ctx).Warn("login succeeded but profile lookup failed",
			slog.String("error", err.Error()))
	} else if record != nil {
		response.User = record.ProfileResponse()
	}

	return response, nil
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	log := logger.GetLogger(ctx)

	if !utils.IsAllowedDomain(req.Email, s.cfg.AllowedEmailDomain) {
		return nil, utils.ErrInvalidEmail
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyRegistered
	}

	username, err := s.generateFreeUsername(ctx, req.Email)
	if err != nil {
		return nil, err
	}

	signup, err := s.provider.SignUp(ctx, username, req.Password, req.Email, req.Name)
	if err != nil {
		if rejected, ok := cognito.IsRejected(err); ok {
			return nil, fmt.Errorf("%s: %w", rejected.Message, utils.ErrProviderRejected)
		}
		return nil, fmt.Errorf("register: %w", utils.ErrProviderUnavailable)
	}

	user := &models.User{
		Username:      username,
		Sub:           signup.Sub,
		Name:          req.Name,
		Email:         req.Email,
		EmailVerified: false,
		Salt:          utils.GenerateSalt(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The provider account exists but the local row does not; the gate
		// will refuse this identity until the record is repaired.
		log.Error("provider account created but local record insert failed",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create user record: %w", err)
	}

	message := "confirmation code sent to " + req.Email
	if signup.UserConfirmed {
		message = "registration complete"
	}
	return &models.RegisterResponse{
		Username: username,
		Message:  message,
	}, nil
}

// generateFreeUsername derives a username from the email and retries on the
// unlikely suffix collision with an existing row
func (s *authService) generateFreeUsername(ctx context.Context, email string) (string, error) {
	for range usernameGenerationAttempts {
		username := utils.GenerateUsername(email)
		existing, err := s.users.GetByUsername(ctx, username)
		if err != nil {
			return "", fmt.Errorf("failed to check existing username: %w", err)
		}
		if existing == nil {
			return username, nil
		}
	}
	return "", fmt.Errorf("could not generate a free username for %s", email)
}

func (s *authService) ConfirmSignup(ctx context.Context, req models.ConfirmSignupRequest) error {
	username, err := s.usernameForEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if err := s.provider.ConfirmSignUp(ctx, username, req.Code); err != nil {
		return asServiceError("confirm signup", err)
	}
	log := logger.GetLogger(ctx)
	if err := s.users.UpdateEmailVerified(ctx, username, true); err != nil {
		log.Error("signup confirmed but verified flag update failed",
			slog.String("username", username), slog.Any("error", err))
	}
	if err := s.users.UpdateSalt(ctx, username, utils.GenerateSalt()); err != nil {
		log.Error("signup confirmed but salt rotation failed",
			slog.String("username", username), slog.Any("error", err))
	}
	return nil
}

// usernameForEmail resolves the pool username behind an email address. The
// confirmation endpoints accept the email the code was mailed to, while the
// provider keys every call by username.
func (s *authService) usernameForEmail(ctx context.Context, email string) (string, error) {
	record, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to resolve email: %w", err)
	}
	if record == nil {
		return "", utils.ErrUserNotFound
	}
	return record.Username, nil
}

func (s *authService) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.AuthTokens, error) {
	result, err := s.provider.RefreshTokens(ctx, req.Username, req.RefreshToken)
	if err != nil {
		if _, rejected := cognito.IsRejected(err); rejected {
			return nil, fmt.Errorf("refresh rejected: %w", utils.ErrUnauthorized)
		}
		return nil, fmt.Errorf("refresh token: %w", utils.ErrProviderUnavailable)
	}
	return tokensFrom(result), nil
}

func (s *authService) ResendCode(ctx context.Context, req models.ResendCodeRequest) error {
	username, err := s.usernameForEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if err := s.provider.ResendConfirmationCode(ctx, username); err != nil {
		return asServiceError("resend code", err)
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, user *models.AuthenticatedUser, req models.ResetPasswordRequest) error {
	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	if err := s.provider.ChangePassword(ctx, user.AccessToken, req.OldPassword, req.NewPassword); err != nil {
		return asServiceError("reset password", err)
	}

	// Rotate the salt alongside the credential
	if err := s.users.UpdateSalt(ctx, user.Username, utils.GenerateSalt()); err != nil {
		logger.GetLogger(ctx).Error("password changed but salt rotation failed",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	if err := utils.ValidateUsername(req.Username); err != nil {
		return err
	}
	if err := s.provider.ForgotPassword(ctx, req.Username); err != nil {
		return asServiceError("forgot password", err)
	}
	return nil
}

func (s *authService) ConfirmForgotPassword(ctx context.Context, req models.ConfirmForgotPasswordRequest) error {
	if err := utils.ValidateUsername(req.Username); err != nil {
		return err
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return err
	}

	if err := s.provider.ConfirmForgotPassword(ctx, req.Username, req.Code, req.Password); err != nil {
		return asServiceError("confirm forgot password", err)
	}

	if err := s.users.UpdateSalt(ctx, req.Username, utils.GenerateSalt()); err != nil {
		logger.GetLogger(ctx).Error("password recovered but salt rotation failed",
			slog.String("username", req.Username),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

// asServiceError maps a provider client error onto the service error taxonomy,
// keeping the provider's message only for rejections, which are safe to show
func asServiceError(op string, err error) error {
	if rejected, ok := cognito.IsRejected(err); ok {
		return fmt.Errorf("%s: %w", rejected.Message, utils.ErrProviderRejected)
	}
	return fmt.Errorf("%s: %w", op, utils.ErrProviderUnavailable)
}

func tokensFrom(result *cognito.AuthResult) *models.AuthTokens {
	return &models.AuthTokens{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		IDToken:      result.IDToken,
		TokenType:    result.TokenType,
		ExpiresIn:    result.ExpiresIn,
	}
}
