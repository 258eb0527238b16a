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
	"crypto/rsa"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adexltd/accounts-service/clients/requests"
)

// ErrKeySetUnavailable marks a failed JWKS fetch. When the key set cannot be
// obtained no signature verification is attempted, and the caller must treat
// the token as unverified rather than invalid.
var ErrKeySetUnavailable = errors.New("key set unavailable")

// JWKS represents a JSON Web Key Set
type JWKS struct {
	Keys []JSONWebKey `json:"keys"`
}

// JSONWebKey represents a single key in a JWKS
type JSONWebKey struct {
	Kty string   `json:"kty"`
	Kid string   `json:"kid"`
	Use string   `json:"use"`
	N   string   `json:"n"`
	E   string   `json:"e"`
	Alg string   `json:"alg"`
	X5c []string `json:"x5c,omitempty"`
}

// key returns the entry with the given kid, or nil
func (j *JWKS) key(kid string) *JSONWebKey {
	for i := range j.Keys {
		if j.Keys[i].Kid == kid {
			return &j.Keys[i]
		}
	}
	return nil
}

// Verifier checks token signatures against the issuer's published key set.
// The key set is cached for cacheTTL; an unknown kid forces one refetch so
// provider key rotation does not lock authenticated users out for the TTL.
type Verifier struct {
	jwksURL  string
	issuer   string
	client   requests.HttpClient
	cacheTTL time.Duration

	mu        sync.RWMutex
	cached    *JWKS
	fetchedAt time.Time
}

// NewVerifier builds a Verifier. cacheTTL <= 0 disables caching and every
// verification fetches the key set.
func NewVerifier(jwksURL, issuer string, client requests.HttpClient, cacheTTL time.Duration) *Verifier {
	return &Verifier{
		jwksURL:  jwksURL,
		issuer:   issuer,
		client:   client,
		cacheTTL: cacheTTL,
	}
}

// Verify checks the token's RSA signature and issuer and returns its claims.
// Expiry is deliberately not checked here; the caller decides token lifetime
// separately so an expired-but-genuine token is distinguishable from a forgery.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*TokenClaims, error) {
	// The key set is fetched up front. If the fetch fails the token is left
	// unverified and the error says so; it must never read as a bad signature.
	keySet, fromCache, err := v.keySet(ctx)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("kid not found in token header")
		}

		key := keySet.key(kid)
		if key == nil && fromCache {
			// Unknown kid on a cached set usually means the provider rotated
			// its keys. Refetch once before rejecting.
			fresh, err := v.refetch(ctx)
			if err != nil {
				return nil, err
			}
			key = fresh.key(kid)
		}
		if key == nil {
			return nil, fmt.Errorf("unable to find key with kid: %s", kid)
		}

		return convertJWKToPublicKey(key)
	}, jwt.WithoutClaimsValidation())
	if err != nil {
		if errors.Is(err, ErrKeySetUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok {
		return nil, fmt.Errorf("failed to extract claims")
	}

	if err := v.validateIssuer(claims.Issuer); err != nil {
		return nil, err
	}

	return claims, nil
}

func (v *Verifier) validateIssuer(issuer string) error {
	if strings.TrimSpace(issuer) != strings.TrimSpace(v.issuer) {
		return fmt.Errorf("invalid issuer: expected %s, got %s", v.issuer, issuer)
	}
	return nil
}

// keySet returns the cached key set when fresh, fetching otherwise.
// fromCache tells the caller whether a kid miss may be stale data.
func (v *Verifier) keySet(ctx context.Context) (*JWKS, bool, error) {
	if v.cacheTTL > 0 {
		v.mu.RLock()
		if v.cached != nil && time.Since(v.fetchedAt) < v.cacheTTL {
			defer v.mu.RUnlock()
			return v.cached, true, nil
		}
		v.mu.RUnlock()
	}

	jwks, err := v.refetch(ctx)
	if err != nil {
		return nil, false, err
	}
	return jwks, false, nil
}

// refetch fetches the key set from the JWKS endpoint and replaces the cache
func (v *Verifier) refetch(ctx context.Context) (*JWKS, error) {
	var jwks JWKS
	err := requests.SendRequest(ctx, v.client,
		requests.NewHttpRequest("fetchJWKS", http.MethodGet, v.jwksURL)).
		ScanResponse(&jwks, http.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %v: %w", err, ErrKeySetUnavailable)
	}

	if v.cacheTTL > 0 {
		v.mu.Lock()
		v.cached = &jwks
		v.fetchedAt = time.Now()
		v.mu.Unlock()
	}

	return &jwks, nil
}

// convertJWKToPublicKey converts a JWK to an RSA public key
func convertJWKToPublicKey(jwk *JSONWebKey) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	n := new(big.Int).SetBytes(nBytes)

	var e int
	for _, b := range eBytes {
		e = e<<8 + int(b)
	}

	return &rsa.PublicKey{
		N: n,
		E: e,
	}, nil
}
