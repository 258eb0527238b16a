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

package logger

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type correlationCtxKeyType string

const correlationCtxKey correlationCtxKeyType = "correlationId"

// CorrelationIDHeader carries the correlation id on requests and responses
const CorrelationIDHeader = "X-Correlation-Id"

// GetCorrelationID returns the correlation id from ctx, or "" if absent
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationCtxKey).(string); ok {
		return id
	}
	return ""
}

// AddCorrelationID reads the correlation id header from the request, minting
// a new one when the client did not send any, and echoes it on the response.
func AddCorrelationID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			correlationID := r.Header.Get(CorrelationIDHeader)
			if correlationID == "" {
				correlationID = uuid.NewString()
			}

			w.Header().Set(CorrelationIDHeader, correlationID)
			ctx := context.WithValue(r.Context(), correlationCtxKey, correlationID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
