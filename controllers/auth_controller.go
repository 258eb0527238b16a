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
	"net/http"

	"github.com/adexltd/accounts-service/middleware/authgate"
	"github.com/adexltd/accounts-service/middleware/logger"
	"github.com/adexltd/accounts-service/models"
	"github.com/adexltd/accounts-service/services"
	"github.com/adexltd/accounts-service/utils"
)

// AuthController defines the interface for authentication HTTP handlers
type AuthController interface {
	Login(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
	ConfirmSignup(w http.ResponseWriter, r *http.Request)
	GetToken(w http.ResponseWriter, r *http.Request)
	ResendCode(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ConfirmForgotPassword(w http.ResponseWriter, r *http.Request)
}

type authController struct {
	authService services.AuthService
}

// NewAuthController creates a new authentication controller
func NewAuthController(authService services.AuthService) AuthController {
	return &authController{authService: authService}
}

// Login handles POST /api/v1/auth/login
func (c *authController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req models.LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	response, err := c.authService.Login(ctx, req)
	if err != nil {
		log.Warn("Login: authentication failed", "error", err)
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, response)
}

// Register handles POST /api/v1/auth/register
func (c *authController) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req models.RegisterRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	response, err := c.authService.Register(ctx, req)
	if err != nil {
		log.Warn("Register: registration failed", "error", err)
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusCreated, response)
}

// ConfirmSignup handles POST /api/v1/auth/confirm-signup
func (c *authController) ConfirmSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req models.ConfirmSignupRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := c.authService.ConfirmSignup(ctx, req); err != nil {
		log.Warn("ConfirmSignup: confirmation failed", "error", err)
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, models.MessageResponse{Message: "signup confirmed"})
}

// GetToken handles POST /api/v1/auth/get-token
func (c *authController) GetToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req models.RefreshTokenRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	tokens, err := c.authService.RefreshToken(ctx, req)
	if err != nil {
		log.Warn("GetToken: refresh failed", "error", err)
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, tokens)
}

// ResendCode handles POST /api/v1/auth/resend-code
func (c *authController) ResendCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req models.ResendCodeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := c.authService.ResendCode(ctx, req); err != nil {
		log.Warn("ResendCode: resend failed", "error", err)
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, models.MessageResponse{Message: "confirmation code sent"})
}

// ResetPassword handles POST /api/v1/auth/reset-password (gate-protected)
func (c *authController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	user := authgate.GetAuthenticatedUser(ctx)
	if user == nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.ResetPasswordRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := c.authService.ResetPassword(ctx, user, req); err != nil {
		log.Warn("ResetPassword: change failed", "username", user.Username, "error", err)
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, models.MessageResponse{Message: "password updated"})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (c *authController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req models.ForgotPasswordRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := c.authService.ForgotPassword(ctx, req); err != nil {
		log.Warn("ForgotPassword: request failed", "error", err)
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, models.MessageResponse{Message: "recovery code sent"})
}

// ConfirmForgotPassword handles POST /api/v1/auth/confirm-forgot-password
func (c *authController) ConfirmForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	var req models.ConfirmForgotPasswordRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if err := c.authService.ConfirmForgotPassword(ctx, req); err != nil {
		log.Warn("ConfirmForgotPassword: recovery failed", "error", err)
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, models.MessageResponse{Message: "password reset"})
}
