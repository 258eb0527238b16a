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

package cognito

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// ErrUnavailable marks transport-level failures: the provider could not be
// reached or did not produce a well-formed response. Callers must treat it
// as an outage signal, never as a verdict on the credential.
var ErrUnavailable = errors.New("identity provider unavailable")

// RejectedError is a provider-side rejection of an otherwise delivered
// request: wrong password, unknown user, expired code, revoked token.
// Message is safe to show to clients; Code is the provider's error code.
type RejectedError struct {
	Code    string
	Message string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsRejected reports whether err is a provider-side rejection, and returns
// the rejection when it is
func IsRejected(err error) (*RejectedError, bool) {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}

// wrapErr converts SDK failures into the package's two error classes:
// provider rejections keep their code and message, everything else
// (timeouts, connection failures, malformed responses) becomes ErrUnavailable.
func wrapErr(op string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("cognito.%s: %w", op, &RejectedError{
			Code:    apiErr.ErrorCode(),
			Message: apiErr.ErrorMessage(),
		})
	}
	return fmt.Errorf("cognito.%s: %v: %w", op, err, ErrUnavailable)
}
