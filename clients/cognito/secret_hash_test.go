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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecretHash(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		clientID string
		secret   string
		want     string
	}{
		{
			name:     "username subject",
			subject:  "alice-9f3k",
			clientID: "client123",
			secret:   "topsecret",
			want:     "tK3SU/EtR7RT7Tn2rDf2wyfjq1Zeorc7l1QCILWYU/s=",
		},
		{
			name:     "email subject",
			subject:  "bob@adex.ltd",
			clientID: "7odjqtj1pv0l2kg",
			secret:   "s3cr3t",
			want:     "rpBT1PrB3LBucWgMZiW1OoBxlAmuY+PjnZuasf5Y+1M=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SecretHash(tt.subject, tt.clientID, tt.secret))
		})
	}
}

func TestSecretHashSubjectSensitivity(t *testing.T) {
	// The hash binds the subject: two users never share a hash
	a := SecretHash("alice", "client", "secret")
	b := SecretHash("alicf", "client", "secret")
	assert.NotEqual(t, a, b)
}
