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
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adexltd/accounts-service/utils"
)

// decodeJSONBody decodes the request body into dst, writing a 400 response
// and returning false when the body is not valid JSON
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeServiceError maps service errors onto HTTP statuses. Validation
// failures and provider rejections carry their message; everything else
// gets a fixed body so internals never leak.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utils.ErrBadRequest),
		errors.Is(err, utils.ErrInvalidEmail),
		errors.Is(err, utils.ErrInvalidUsername),
		errors.Is(err, utils.ErrInvalidPassword),
		errors.Is(err, utils.ErrProviderRejected):
		utils.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, utils.ErrEmailAlreadyRegistered):
		utils.WriteErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, utils.ErrUnauthorized):
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, utils.ErrUserNotFound):
		utils.WriteErrorResponse(w, http.StatusNotFound, "user not found")
	case errors.Is(err, utils.ErrProviderUnavailable):
		utils.WriteErrorResponse(w, http.StatusServiceUnavailable, "identity provider unavailable")
	default:
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "internal server error")
	}
}
