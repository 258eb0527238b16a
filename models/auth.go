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

package models

// AuthenticatedUser is the output of the authentication gate. It is
// request-scoped: built per request and attached to the request context,
// never persisted.
type AuthenticatedUser struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	// ExpiresAt is the verified token expiry in UTC seconds since epoch
	ExpiresAt int64 `json:"exp"`
	// AccessToken is the raw bearer token, echoed for downstream provider calls
	AccessToken string `json:"-"`
}

// ErrorResponse is the uniform error payload returned to clients
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is the uniform success payload for operations without data
type MessageResponse struct {
	Message string `json:"message"`
}

// AuthTokens carries the token set issued by the identity provider
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	IDToken      string `json:"idToken,omitempty"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int32  `json:"expiresIn"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Tokens AuthTokens           `json:"tokens"`
	User   *UserProfileResponse `json:"user,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type ConfirmSignupRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type RefreshTokenRequest struct {
	Username     string `json:"username"`
	RefreshToken string `json:"refreshToken"`
}

type ResendCodeRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ForgotPasswordRequest struct {
	Username string `json:"username"`
}

type ConfirmForgotPasswordRequest struct {
	Username string `json:"username"`
	Code     string `json:"code"`
	Password string `json:"password"`
}
