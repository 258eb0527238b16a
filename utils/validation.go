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

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxUsernameLength matches the Cognito username limit
	MaxUsernameLength = 127
	// UsernameSuffixLength is the random suffix appended to generated usernames
	UsernameSuffixLength = 4
	// SaltLength is the length of the password-reset salt stored on confirmation
	SaltLength = 32

	usernameSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	emailPattern       = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonWordPattern     = regexp.MustCompile(`\W+`)
	lowerCasePattern   = regexp.MustCompile(`[a-z]`)
	upperCasePattern   = regexp.MustCompile(`[A-Z]`)
	digitPattern       = regexp.MustCompile(`\d`)
	specialCharPattern = regexp.MustCompile(`[\W_ ]`)
)

// ValidatePassword checks the password policy enforced at registration and
// password-change time. The policy mirrors the user pool settings so failures
// surface before the provider round trip. Every failure wraps
// ErrInvalidPassword so callers can classify it as client input.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must contain at least 8 characters", ErrInvalidPassword)
	}
	if !lowerCasePattern.MatchString(password) {
		return fmt.Errorf("%w: must contain a lower case letter", ErrInvalidPassword)
	}
	if !upperCasePattern.MatchString(password) {
		return fmt.Errorf("%w: must contain an upper case letter", ErrInvalidPassword)
	}
	if !digitPattern.MatchString(password) {
		return fmt.Errorf("%w: must contain a number", ErrInvalidPassword)
	}
	if !specialCharPattern.MatchString(password) {
		return fmt.Errorf("%w: must contain a special character or a space", ErrInvalidPassword)
	}
	if strings.HasPrefix(password, " ") || strings.HasSuffix(password, " ") {
		return fmt.Errorf("%w: must not contain a leading or trailing space", ErrInvalidPassword)
	}
	return nil
}

// ValidateUsername checks the username limits accepted by the identity
// provider. Failures wrap ErrInvalidUsername.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: cannot be empty", ErrInvalidUsername)
	}
	if len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: must be %d characters or fewer", ErrInvalidUsername, MaxUsernameLength)
	}
	return nil
}

// IsAllowedDomain reports whether the email belongs to the configured domain.
// An empty allowed domain disables the restriction.
func IsAllowedDomain(email, allowedDomain string) bool {
	if !emailPattern.MatchString(email) {
		return false
	}
	if allowedDomain == "" {
		return true
	}
	at := strings.LastIndex(email, "@")
	return strings.EqualFold(email[at+1:], allowedDomain)
}

// GenerateUsername derives a provider username from the email local part:
// special characters stripped, underscores folded to hyphens, plus a random
// suffix so two registrations from similar addresses never collide.
func GenerateUsername(email string) string {
	base := email
	if at := strings.Index(email, "@"); at >= 0 {
		base = email[:at]
	}
	base = nonWordPattern.ReplaceAllString(base, "")
	base = strings.ReplaceAll(base, "_", "-")

	suffix := make([]byte, UsernameSuffixLength)
	for i := range suffix {
		suffix[i] = usernameSuffixAlphabet[rand.Intn(len(usernameSuffixAlphabet))]
	}

	username := fmt.Sprintf("%s-%s", base, suffix)
	if len(username) > MaxUsernameLength {
		username = username[:MaxUsernameLength]
	}
	return username
}

// GenerateSalt produces the password-reset salt stored at confirmation time
func GenerateSalt() string {
	salt := strings.ReplaceAll(uuid.New().String(), "-", "")
	if len(salt) > SaltLength {
		salt = salt[:SaltLength]
	}
	return salt
}
