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

package requests

import (
	"context"
	"fmt"
	"net/http"
)

// HttpRequest describes an outbound HTTP call. Name identifies the call in
// logs and error messages.
type HttpRequest struct {
	Name   string
	URL    string
	Method string
}

// NewHttpRequest creates a request with the given name, method and URL
func NewHttpRequest(name, method, url string) *HttpRequest {
	return &HttpRequest{
		Name:   name,
		URL:    url,
		Method: method,
	}
}

func (r *HttpRequest) buildHttpRequest(ctx context.Context) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, r.Method, r.URL, http.NoBody)
}

// HttpError is returned when the upstream responds with an unexpected status.
type HttpError struct {
	StatusCode int
	Body       string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}
