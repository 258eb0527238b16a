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

	"github.com/adexltd/accounts-service/config"
	"github.com/adexltd/accounts-service/controllers"
	"github.com/adexltd/accounts-service/middleware"
	"github.com/adexltd/accounts-service/middleware/logger"
	"github.com/adexltd/accounts-service/wiring"
)

// MakeHTTPHandler creates a new HTTP handler with middleware and routes
func MakeHTTPHandler(params *wiring.AppParams) http.Handler {
	mux := http.NewServeMux()

	// Health check at root level, outside all middleware
	mux.HandleFunc("GET /healthz", controllers.Healthz)

	// Create a sub-mux for API v1 routes. The authentication gate is applied
	// per route: the auth endpoints must stay reachable without a token.
	apiMux := http.NewServeMux()
	registerAuthRoutes(apiMux, params.AuthController, params.AuthMiddleware)
	registerUserRoutes(apiMux, params.UserController, params.AuthMiddleware)

	// Apply middleware in reverse order (last middleware is applied first)
	apiHandler := http.Handler(apiMux)
	apiHandler = logger.AddCorrelationID()(apiHandler)
	apiHandler = logger.RequestLogger()(apiHandler)
	apiHandler = middleware.CORS(config.GetConfig().CORSAllowedOrigin)(apiHandler)
	apiHandler = middleware.RecovererOnPanic()(apiHandler)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiHandler))

	return mux
}
