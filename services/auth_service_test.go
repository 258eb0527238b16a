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
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adexltd/accounts-service/clients/cognito"
	"github.com/adexltd/accounts-service/models"
	"github.com/adexltd/accounts-service/utils"
)

// mockCognitoClient is a test mock for the cognito.Client interface
type mockCognitoClient struct {
	initiateAuthFunc          func(ctx context.Context, email, password string) (*cognito.AuthResult, error)
	refreshTokensFunc         func(ctx context.Context, username, refreshToken string) (*cognito.AuthResult, error)
	signUpFunc                func(ctx context.Context, username, password, email, name string) (*cognito.SignUpResult, error)
	confirmSignUpFunc         func(ctx context.Context, username, code string) error
	resendCodeFunc            func(ctx context.Context, username string) error
	getUserFunc               func(ctx context.Context, accessToken string) (*cognito.RemoteUser, error)
	changePasswordFunc        func(ctx context.Context, accessToken, oldPassword, newPassword string) error
	forgotPasswordFunc        func(ctx context.Context, username string) error
	confirmForgotPasswordFunc func(ctx context.Context, username, code, password string) error

	signUpCalls  []string
	confirmCalls []string
}

func (m *mockCognitoClient) InitiateAuth(ctx context.Context, email, password string) (*cognito.AuthResult, error) {
	if m.initiateAuthFunc != nil {
		return m.initiateAuthFunc(ctx, email, password)
	}
	return nil, errors.New("initiateAuthFunc not set")
}

func (m *mockCognitoClient) RefreshTokens(ctx context.Context, username, refreshToken string) (*cognito.AuthResult, error) {
	if m.refreshTokensFunc != nil {
		return m.refreshTokensFunc(ctx, username, refreshToken)
	}
	return nil, errors.New("refreshTokensFunc not set")
}

func (m *mockCognitoClient) SignUp(ctx context.Context, username, password, email, name string) (*cognito.SignUpResult, error) {
	m.signUpCalls = append(m.signUpCalls, username)
	if m.signUpFunc != nil {
		return m.signUpFunc(ctx, username, password, email, name)
	}
	return &cognito.SignUpResult{Sub: "sub-" + username}, nil
}

func (m *mockCognitoClient) ConfirmSignUp(ctx context.Context, username, code string) error {
	m.confirmCalls = append(m.confirmCalls, username)
	if m.confirmSignUpFunc != nil {
		return m.confirmSignUpFunc(ctx, username, code)
	}
	return nil
}

func (m *mockCognitoClient) ResendConfirmationCode(ctx context.Context, username string) error {
	if m.resendCodeFunc != nil {
		return m.resendCodeFunc(ctx, username)
	}
	return nil
}

func (m *mockCognitoClient) GetUser(ctx context.Context, accessToken string) (*cognito.RemoteUser, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, accessToken)
	}
	return nil, errors.New("getUserFunc not set")
}

func (m *mockCognitoClient) ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error {
	if m.changePasswordFunc != nil {
		return m.changePasswordFunc(ctx, accessToken, oldPassword, newPassword)
	}
	return nil
}

func (m *mockCognitoClient) ForgotPassword(ctx context.Context, username string) error {
	if m.forgotPasswordFunc != nil {
		return m.forgotPasswordFunc(ctx, username)
	}
	return nil
}

func (m *mockCognitoClient) ConfirmForgotPassword(ctx context.Context, username, code, password string) error {
	if m.confirmForgotPasswordFunc != nil {
		return m.confirmForgotPasswordFunc(ctx, username, code, password)
	}
	return nil
}

// mockUserRepo is an in-memory test mock for repositories.UserRepository
type mockUserRepo struct {
	mu    sync.Mutex
	rows  []*models.User
	errOn string // method name that should fail
}

func (m *mockUserRepo) failing(method string) error {
	if m.errOn == method {
		return errors.New("database unavailable")
	}
	return nil
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := m.failing("GetByUsername"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Username == username {
			return row, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := m.failing("GetByEmail"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Email == email {
			return row, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if err := m.failing("Create"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, user)
	return nil
}

func (m *mockUserRepo) UpdateEmailVerified(ctx context.Context, username string, verified bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Username == username {
			row.EmailVerified = verified
		}
	}
	return nil
}

func (m *mockUserRepo) UpdateSalt(ctx context.Context, username, salt string) error {
	if err := m.failing("UpdateSalt"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.Username == username {
			row.Salt = salt
		}
	}
	return nil
}

func newAuthServiceFixture() (*mockCognitoClient, *mockUserRepo, AuthService) {
	provider := &mockCognitoClient{}
	repo := &mockUserRepo{}
	svc := NewAuthService(provider, repo, AuthConfig{AllowedEmailDomain: "adex.ltd"})
	return provider, repo, svc
}

func TestLogin(t *testing.T) {
	t.Run("returns tokens and the local profile", func(t *testing.T) {
		provider, repo, svc := newAuthServiceFixture()
		provider.initiateAuthFunc = func(ctx context.Context, email, password string) (*cognito.AuthResult, error) {
			return &cognito.AuthResult{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 3600}, nil
		}
		repo.rows = []*models.User{{ID: 1, Username: "alice-9f3k", Email: "alice@adex.ltd"}}

		response, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@adex.ltd", Password: "Passw0rd!"})
		require.NoError(t, err)
		assert.Equal(t, "access", response.Tokens.AccessToken)
		require.NotNil(t, response.User)
		assert.Equal(t, "alice-9f3k", response.User.Username)
	})

	t.Run("maps a provider rejection to unauthorized", func(t *testing.T) {
		provider, _, svc := newAuthServiceFixture()
		provider.initiateAuthFunc = func(ctx context.Context, email, password string) (*cognito.AuthResult, error) {
			return nil, &cognito.RejectedError{Code: "NotAuthorizedException", Message: "Incorrect username or password."}
		}

		_, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@adex.ltd", Password: "wrong"})
		assert.ErrorIs(t, err, utils.ErrUnauthorized)
	})

	t.Run("maps a transport failure to provider unavailable", func(t *testing.T) {
		provider, _, svc := newAuthServiceFixture()
		provider.initiateAuthFunc = func(ctx context.Context, email, password string) (*cognito.AuthResult, error) {
			return nil, errors.New("dial tcp: timeout")
		}

		_, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@adex.ltd", Password: "Passw0rd!"})
		assert.ErrorIs(t, err, utils.ErrProviderUnavailable)
	})

	t.Run("rejects empty credentials without a provider call", func(t *testing.T) {
		_, _, svc := newAuthServiceFixture()
		_, err := svc.Login(context.Background(), models.LoginRequest{})
		assert.ErrorIs(t, err, utils.ErrBadRequest)
	})
}

func TestRegister(t *testing.T) {
	t.Run("creates the provider account and the local row", func(t *testing.T) {
		provider, repo, svc := newAuthServiceFixture()

		response, err := svc.Register(context.Background(), models.RegisterRequest{
			Name:     "Alice Smith",
			Email:    "alice@adex.ltd",
			Password: "Passw0rd!",
		})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(response.Username, "alice-"), "got %q", response.Username)

		require.Len(t, provider.signUpCalls, 1)
		require.Len(t, repo.rows, 1)
		row := repo.rows[0]
		assert.Equal(t, response.Username, row.Username)
		assert.Equal(t, "sub-"+response.Username, row.Sub)
		assert.Equal(t, "alice@adex.ltd", row.Email)
		assert.False(t, row.EmailVerified)
		assert.Len(t, row.Salt, utils.SaltLength)
	})

	t.Run("rejects an email outside the allowed domain", func(t *testing.T) {
		provider, _, svc := newAuthServiceFixture()

		_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "alice@gmail.com", Password: "Passw0rd!"})
		assert.ErrorIs(t, err, utils.ErrInvalidEmail)
		assert.Empty(t, provider.signUpCalls)
	})

	t.Run("rejects a weak password before the provider call", func(t *testing.T) {
		provider, _, svc := newAuthServiceFixture()

		_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "alice@adex.ltd", Password: "short"})
		require.Error(t, err)
		assert.Empty(t, provider.signUpCalls)
	})

	t.Run("rejects an already registered email", func(t *testing.T) {
		_, repo, svc := newAuthServiceFixture()
		repo.rows = []*models.User{{Username: "alice-9f3k", Email: "alice@adex.ltd"}}

		_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "alice@adex.ltd", Password: "Passw0rd!"})
		assert.ErrorIs(t, err, utils.ErrEmailAlreadyRegistered)
	})

	t.Run("surfaces a provider rejection with its message", func(t *testing.T) {
		provider, repo, svc := newAuthServiceFixture()
		provider.signUpFunc = func(ctx context.Context, username, password, email, name string) (*cognito.SignUpResult, error) {
			return nil, &cognito.RejectedError{Code: "InvalidPasswordException", Message: "Password did not conform with policy"}
		}

		_, err := svc.Register(context.Background(), models.RegisterRequest{Email: "alice@adex.ltd", Password: "Passw0rd!"})
		require.ErrorIs(t, err, utils.ErrProviderRejected)
		assert.Contains(t, err.Error(), "Password did not conform")
		assert.Empty(t, repo.rows)
	})
}

func TestConfirmSignup(t *testing.T) {
	t.Run("resolves the pool username behind the email", func(t *testing.T) {
		provider, repo, svc := newAuthServiceFixture()
		repo.rows = []*models.User{{Username: "alice-9f3k", Email: "alice@adex.ltd", Salt: "oldsalt"}}

		err := svc.ConfirmSignup(context.Background(), models.ConfirmSignupRequest{Email: "alice@adex.ltd", Code: "123456"})
		require.NoError(t, err)
		assert.Equal(t, []string{"alice-9f3k"}, provider.confirmCalls)
		assert.True(t, repo.rows[0].EmailVerified)
		assert.NotEqual(t, "oldsalt", repo.rows[0].Salt)
	})

	t.Run("unknown email yields user not found", func(t *testing.T) {
		provider, _, svc := newAuthServiceFixture()

		err := svc.ConfirmSignup(context.Background(), models.ConfirmSignupRequest{Email: "ghost@adex.ltd", Code: "123456"})
		assert.ErrorIs(t, err, utils.ErrUserNotFound)
		assert.Empty(t, provider.confirmCalls)
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("changes the password and rotates the salt", func(t *testing.T) {
		provider, repo, svc := newAuthServiceFixture()
		repo.rows = []*models.User{{Username: "alice-9f3k", Email: "alice@adex.ltd", Salt: "oldsalt"}}

		var changed bool
		provider.changePasswordFunc = func(ctx context.Context, accessToken, oldPassword, newPassword string) error {
			changed = true
			assert.Equal(t, "token", accessToken)
			return nil
		}

		err := svc.ResetPassword(context.Background(),
			&models.AuthenticatedUser{Username: "alice-9f3k", AccessToken: "token"},
			models.ResetPasswordRequest{OldPassword: "Passw0rd!", NewPassword: "N3wPassw0rd!"})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.NotEqual(t, "oldsalt", repo.rows[0].Salt)
		assert.Len(t, repo.rows[0].Salt, utils.SaltLength)
	})

	t.Run("validates the new password locally first", func(t *testing.T) {
		provider, _, svc := newAuthServiceFixture()
		called := false
		provider.changePasswordFunc = func(ctx context.Context, accessToken, oldPassword, newPassword string) error {
			called = true
			return nil
		}

		err := svc.ResetPassword(context.Background(),
			&models.AuthenticatedUser{Username: "alice-9f3k", AccessToken: "token"},
			models.ResetPasswordRequest{OldPassword: "Passw0rd!", NewPassword: "weak"})
		require.ErrorIs(t, err, utils.ErrInvalidPassword)
		assert.False(t, called)
	})
}

func TestRefreshToken(t *testing.T) {
	provider, _, svc := newAuthServiceFixture()
	provider.refreshTokensFunc = func(ctx context.Context, username, refreshToken string) (*cognito.AuthResult, error) {
		assert.Equal(t, "alice-9f3k", username)
		return &cognito.AuthResult{AccessToken: "fresh", TokenType: "Bearer", ExpiresIn: 3600}, nil
	}

	tokens, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{
		Username:     "alice-9f3k",
		RefreshToken: "refresh",
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", tokens.AccessToken)
}

func TestForgotPassword(t *testing.T) {
	t.Run("starts the recovery flow", func(t *testing.T) {
		provider, _, svc := newAuthServiceFixture()
		var requested string
		provider.forgotPasswordFunc = func(ctx context.Context, username string) error {
			requested = username
			return nil
		}

		err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{Username: "alice-9f3k"})
		require.NoError(t, err)
		assert.Equal(t, "alice-9f3k", requested)
	})

	t.Run("rejects an empty username before the provider call", func(t *testing.T) {
		provider, _, svc := newAuthServiceFixture()
		called := false
		provider.forgotPasswordFunc = func(ctx context.Context, username string) error {
			called = true
			return nil
		}

		err := svc.ForgotPassword(context.Background(), models.ForgotPasswordRequest{})
		assert.ErrorIs(t, err, utils.ErrInvalidUsername)
		assert.False(t, called)
	})
}

func TestConfirmForgotPassword(t *testing.T) {
	provider, repo, svc := newAuthServiceFixture()
	repo.rows = []*models.User{{Username: "alice-9f3k", Email: "alice@adex.ltd", Salt: "oldsalt"}}

	var confirmed bool
	provider.confirmForgotPasswordFunc = func(ctx context.Context, username, code, password string) error {
		confirmed = true
		return nil
	}

	err := svc.ConfirmForgotPassword(context.Background(), models.ConfirmForgotPasswordRequest{
		Username: "alice-9f3k",
		Code:     "123456",
		Password: "N3wPassw0rd!",
	})
	require.NoError(t, err)
	assert.True(t, confirmed)
	assert.NotEqual(t, "oldsalt", repo.rows[0].Salt)
}

func TestConfirmForgotPasswordRejectsEmptyUsername(t *testing.T) {
	provider, _, svc := newAuthServiceFixture()
	called := false
	provider.confirmForgotPasswordFunc = func(ctx context.Context, username, code, password string) error {
		called = true
		return nil
	}

	err := svc.ConfirmForgotPassword(context.Background(), models.ConfirmForgotPasswordRequest{
		Code:     "123456",
		Password: "N3wPassw0rd!",
	})
	assert.ErrorIs(t, err, utils.ErrInvalidUsername)
	assert.False(t, called)
}
