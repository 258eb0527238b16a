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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoRetryMakesSingleAttempt(t *testing.T) {
	// A transient failure must surface to the caller immediately instead of
	// being retried inside the same request
	retryer := noRetry()
	assert.Equal(t, 1, retryer.MaxAttempts())
	assert.False(t, retryer.IsErrorRetryable(errors.New("dial tcp: i/o timeout")))
}
