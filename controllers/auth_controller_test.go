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

package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adexltd/accounts-service/models"
	"github.com/adexltd/accounts-service/utils"
)

// mockAuthService is a test mock for the services.AuthService interface
type mockAuthService struct {
	loginFunc    func(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	registerFunc func(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error)
}

func (m *mockAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, req)
	}
	return nil, errors.New("loginFunc not set")
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, req)
	}
	return nil, errors.New("registerFunc not set")
}

func (m *mockAuthService) ConfirmSignup(ctx context.Context, req models.ConfirmSignupRequest) error {
	return nil
}

func (m *mockAuthService) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.AuthTokens, error) {
	return &models.AuthTokens{AccessToken: "fresh"}, nil
}

func (m *mockAuthService) ResendCode(ctx context.Context, req models.ResendCodeRequest) error {
	return nil
}

func (m *mockAuthService) ResetPassword(ctx context.Context, user *models.AuthenticatedUser, req models.ResetPasswordRequest) error {
	return nil
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	return nil
}

func (m *mockAuthService) ConfirmForgotPassword(ctx context.Context, req models.ConfirmForgotPasswordRequest) error {
	return nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestLoginHandler(t *testing.T) {
	t.Run("success returns the token set", func(t *testing.T) {
		svc := &mockAuthService{loginFunc: func(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
			assert.Equal(t, "alice@adex.ltd", req.Email)
			return &models.LoginResponse{Tokens: models.AuthTokens{AccessToken: "access", TokenType: "Bearer"}}, nil
		}}
		ctrl := NewAuthController(svc)

		rec := postJSON(t, ctrl.Login, "/auth/login", `{"email":"alice@adex.ltd","password":"Passw0rd!"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var response models.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "access", response.Tokens.AccessToken)
	})

	t.Run("bad credentials yield 401 with a fixed body", func(t *testing.T) {
		svc := &mockAuthService{loginFunc: func(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
			return nil, fmt.Errorf("authentication rejected: %w", utils.ErrUnauthorized)
		}}
		ctrl := NewAuthController(svc)

		rec := postJSON(t, ctrl.Login, "/auth/login", `{"email":"alice@adex.ltd","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"unauthorized"}`, rec.Body.String())
	})

	t.Run("malformed body yields 400", func(t *testing.T) {
		ctrl := NewAuthController(&mockAuthService{})
		rec := postJSON(t, ctrl.Login, "/auth/login", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("provider outage yields 503 without details", func(t *testing.T) {
		svc := &mockAuthService{loginFunc: func(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
			return nil, fmt.Errorf("login: %w", utils.ErrProviderUnavailable)
		}}
		ctrl := NewAuthController(svc)

		rec := postJSON(t, ctrl.Login, "/auth/login", `{"email":"alice@adex.ltd","password":"Passw0rd!"}`)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.NotContains(t, rec.Body.String(), "login:")
	})
}

func TestRegisterHandler(t *testing.T) {
	t.Run("success returns 201", func(t *testing.T) {
		svc := &mockAuthService{registerFunc: func(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
			return &models.RegisterResponse{Username: "alice-9f3k", Message: "confirmation code sent to " + req.Email}, nil
		}}
		ctrl := NewAuthController(svc)

		rec := postJSON(t, ctrl.Register, "/auth/register",
			`{"name":"Alice","email":"alice@adex.ltd","password":"Passw0rd!"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var response models.RegisterResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "alice-9f3k", response.Username)
	})

	t.Run("duplicate email yields 409", func(t *testing.T) {
		svc := &mockAuthService{registerFunc: func(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
			return nil, utils.ErrEmailAlreadyRegistered
		}}
		ctrl := NewAuthController(svc)

		rec := postJSON(t, ctrl.Register, "/auth/register",
			`{"email":"alice@adex.ltd","password":"Passw0rd!"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("disallowed domain yields 400", func(t *testing.T) {
		svc := &mockAuthService{registerFunc: func(ctx context.Context, req models.RegisterRequest) (*models.RegisterResponse, error) {
			return nil, utils.ErrInvalidEmail
		}}
		ctrl := NewAuthController(svc)

		rec := postJSON(t, ctrl.Register, "/auth/register",
			`{"email":"alice@gmail.com","password":"Passw0rd!"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
