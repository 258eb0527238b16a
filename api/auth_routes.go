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

package api

import (
	"net/http"

	"github.com/adexltd/accounts-service/controllers"
)

// registerAuthRoutes registers the authentication API routes. All routes are
// public except reset-password, which changes the password of an already
// authenticated caller and therefore sits behind the gate.
func registerAuthRoutes(mux *http.ServeMux, ctrl controllers.AuthController, gate func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /auth/login", ctrl.Login)
	mux.HandleFunc("POST /auth/register", ctrl.Register)
	mux.HandleFunc("POST /auth/confirm-signup", ctrl.ConfirmSignup)
	mux.HandleFunc("POST /auth/get-token", ctrl.GetToken)
	mux.HandleFunc("POST /auth/resend-code", ctrl.ResendCode)
	mux.HandleFunc("POST /auth/forgot-password", ctrl.ForgotPassword)
	mux.HandleFunc("POST /auth/confirm-forgot-password", ctrl.ConfirmForgotPassword)

	mux.Handle("POST /auth/reset-password", gate(http.HandlerFunc(ctrl.ResetPassword)))
}
