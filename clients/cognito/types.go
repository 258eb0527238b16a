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

// Attribute is a single name/value pair from the provider's user record
type Attribute struct {
	Name  string
	Value string
}

// RemoteUser is the identity provider's live view of a user. It is fetched
// per request and never persisted beyond the immediate response.
type RemoteUser struct {
	Username   string
	Attributes []Attribute
}

// Email returns the email attribute, or "" if absent
func (u *RemoteUser) Email() string {
	return u.Attribute("email")
}

// EmailVerified reports whether the provider marks the email as verified.
// The provider encodes the flag as the string "true".
func (u *RemoteUser) EmailVerified() bool {
	return u.Attribute("email_verified") == "true"
}

// Attribute returns the value of the named attribute, or "" if absent
func (u *RemoteUser) Attribute(name string) string {
	for _, attr := range u.Attributes {
		if attr.Name == name {
			return attr.Value
		}
	}
	return ""
}

// AuthResult carries the token set returned by an authentication flow
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    string
	ExpiresIn    int32
}

// SignUpResult carries the outcome of a registration call
type SignUpResult struct {
	// Sub is the provider-subject id: the provider's stable unique identifier
	// for the user, distinct from the mutable username
	Sub           string
	UserConfirmed bool
}
