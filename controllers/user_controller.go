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
	"github.com/adexltd/accounts-service/services"
	"github.com/adexltd/accounts-service/utils"
)

// UserController defines the interface for user profile HTTP handlers
type UserController interface {
	GetProfile(w http.ResponseWriter, r *http.Request)
	SyncProfile(w http.ResponseWriter, r *http.Request)
}

type userController struct {
	userService services.UserService
}

// NewUserController creates a new user controller
func NewUserController(userService services.UserService) UserController {
	return &userController{userService: userService}
}

// GetProfile handles GET /api/v1/user/profile. The profile belongs to the
// authenticated caller; the username is never taken from the request.
func (c *userController) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	user := authgate.GetAuthenticatedUser(ctx)
	if user == nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := c.userService.GetProfile(ctx, user)
	if err != nil {
		log.Error("GetProfile: failed to load profile", "username", user.Username, "error", err)
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, profile)
}

// SyncProfile handles POST /api/v1/user/profile
func (c *userController) SyncProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.GetLogger(ctx)

	user := authgate.GetAuthenticatedUser(ctx)
	if user == nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := c.userService.SyncProfile(ctx, user)
	if err != nil {
		log.Error("SyncProfile: failed to sync profile", "username", user.Username, "error", err)
		writeServiceError(w, err)
		return
	}

	utils.WriteSuccessResponse(w, http.StatusOK, profile)
}
