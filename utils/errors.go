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

package utils

import "errors"

var (
	// Resource errors
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already associated with an existing account")

	// Request errors
	ErrBadRequest      = errors.New("bad request")
	ErrInvalidEmail    = errors.New("email does not belong to the allowed domain")
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidPassword = errors.New("invalid password")

	// Authorization errors
	ErrUnauthorized = errors.New("unauthorized")

	// Upstream errors
	ErrProviderRejected    = errors.New("identity provider rejected the request")
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)
