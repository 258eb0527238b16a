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

package authgate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/adexltd/accounts-service/clients/cognito"
	"github.com/adexltd/accounts-service/middleware/logger"
	"github.com/adexltd/accounts-service/models"
	"github.com/adexltd/accounts-service/utils"
)

// Middleware wraps a handler chain with authentication
type Middleware func(http.Handler) http.Handler

// Reason classifies why authentication failed. Every reason maps to the same
// generic 401 response; the distinction exists for logs and tests only.
type Reason string

const (
	ReasonTokenMissing        Reason = "TOKEN_MISSING"
	ReasonSignatureInvalid    Reason = "SIGNATURE_INVALID"
	ReasonTokenExpired        Reason = "TOKEN_EXPIRED"
	ReasonIdentityMismatch    Reason = "IDENTITY_MISMATCH"
	ReasonLocalUserNotFound   Reason = "LOCAL_USER_NOT_FOUND"
	ReasonProviderUnreachable Reason = "PROVIDER_UNREACHABLE"
)

// Failure is the typed outcome of a failed authentication attempt
type Failure struct {
	Reason Reason
	Err    error
}

// IdentityProvider is the slice of the provider client the gate needs
type IdentityProvider interface {
	GetUser(ctx context.Context, accessToken string) (*cognito.RemoteUser, error)
}

// UserResolver looks up the service's own user record. A (nil, nil) return
// means no row exists for the username.
type UserResolver interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Gate authenticates requests by running the stages in a fixed order:
// token presence, signature, expiry, provider cross-validation, local lookup.
// Each stage runs only when every earlier stage passed, so a request with a
// missing or expired token never generates provider traffic.
type Gate struct {
	verifier *Verifier
	provider IdentityProvider
	resolver UserResolver
	now      func() time.Time
}

// NewGate builds the authentication gate from its injected collaborators
func NewGate(verifier *Verifier, provider IdentityProvider, resolver UserResolver) *Gate {
	return &Gate{
		verifier: verifier,
		provider: provider,
		resolver: resolver,
		now:      time.Now,
	}
}

// Authenticate runs the full stage sequence over a bearer token. Exactly one
// of the returns is non-nil.
func (g *Gate) Authenticate(ctx context.Context, tokenString string) (*models.AuthenticatedUser, *Failure) {
	if tokenString == "" {
		return nil, &Failure{Reason: ReasonTokenMissing, Err: errors.New("no bearer token on request")}
	}

	claims, err := g.verifier.Verify(ctx, tokenString)
	if err != nil {
		if errors.Is(err, ErrKeySetUnavailable) {
			return nil, &Failure{Reason: ReasonProviderUnreachable, Err: err}
		}
		return nil, &Failure{Reason: ReasonSignatureInvalid, Err: err}
	}

	if IsExpired(claims.Exp, g.now().Unix()) {
		return nil, &Failure{Reason: ReasonTokenExpired, Err: errors.New("token expiry is in the past")}
	}

	remote, err := g.provider.GetUser(ctx, tokenString)
	if err != nil {
		if errors.Is(err, cognito.ErrUnavailable) {
			return nil, &Failure{Reason: ReasonProviderUnreachable, Err: err}
		}
		// The provider answered and refused the token (revoked, disabled user)
		return nil, &Failure{Reason: ReasonIdentityMismatch, Err: err}
	}

	if remote.Username != claims.Username {
		return nil, &Failure{
			Reason: ReasonIdentityMismatch,
			Err:    errors.New("token username does not match the provider record"),
		}
	}

	user, err := g.resolver.GetByUsername(ctx, claims.Username)
	if err != nil {
		// Failing closed: a broken lookup must not admit the request
		return nil, &Failure{Reason: ReasonLocalUserNotFound, Err: err}
	}
	if user == nil {
		return nil, &Failure{
			Reason: ReasonLocalUserNotFound,
			Err:    errors.New("provider identity has no local user record"),
		}
	}

	// The email comes from the provider's live record, not the local row,
	// so a stale or sparse shadow row never masks the current address
	return &models.AuthenticatedUser{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       remote.Email(),
		ExpiresAt:   claims.Exp,
		AccessToken: tokenString,
	}, nil
}

type authenticatedUserCtxKey struct{}

var authenticatedUserKey authenticatedUserCtxKey

// GetAuthenticatedUser returns the authenticated caller, or nil outside
// gate-protected handlers
func GetAuthenticatedUser(ctx context.Context) *models.AuthenticatedUser {
	user, ok := ctx.Value(authenticatedUserKey).(*models.AuthenticatedUser)
	if !ok {
		return nil
	}
	return user
}

// Middleware guards a handler chain with the gate. All failures produce the
// same 401 body; the reason goes to the log, where unreachable-provider and
// missing-local-row cases are raised to error severity since they indicate
// outages and identity drift rather than bad client input.
func (g *Gate) Middleware(header string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := strings.Replace(r.Header.Get(header), "Bearer ", "", 1)

			user, failure := g.Authenticate(r.Context(), tokenString)
			if failure != nil {
				log := logger.GetLogger(r.Context()).With(
					slog.String("reason", string(failure.Reason)),
					slog.String("error", failure.Err.Error()),
				)
				switch failure.Reason {
				case ReasonProviderUnreachable:
					log.Error("authentication failed: identity provider unreachable")
				case ReasonLocalUserNotFound:
					log.Error("authentication failed: no local record for provider identity")
				default:
					log.Warn("authentication failed")
				}
				utils.WriteErrorResponse(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), authenticatedUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
