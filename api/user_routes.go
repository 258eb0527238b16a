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

// registerUserRoutes registers the user profile API routes, all behind the gate
func registerUserRoutes(mux *http.ServeMux, ctrl controllers.UserController, gate func(http.Handler) http.Handler) {
	mux.Handle("GET /user/profile", gate(http.HandlerFunc(ctrl.GetProfile)))
	mux.Handle("POST /user/profile", gate(http.HandlerFunc(ctrl.SyncProfile)))
}
