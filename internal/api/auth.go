// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

// adminClaims is the JWT payload for operator tokens.
type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueAdminToken mints an HS256 operator token. Used by the CLI token
// subcommand and by tests.
func IssueAdminToken(secret string, expiry time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt secret not configured")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "welmap",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	})
	return token.SignedString([]byte(secret))
}

// requireAdmin gates operator endpoints behind a Bearer token with the
// admin role. With no secret configured the endpoints are disabled
// outright rather than left open.
func requireAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				respondError(w, http.StatusForbidden, codeUnauthorized,
					"admin endpoints are disabled: no JWT secret configured", nil)
				return
			}

			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				respondError(w, http.StatusUnauthorized, codeUnauthorized,
					"missing bearer token", nil)
				return
			}

			claims := &adminClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				respondError(w, http.StatusUnauthorized, codeUnauthorized,
					"invalid or expired token", err)
				return
			}
			if claims.Role != adminRole {
				respondError(w, http.StatusForbidden, codeUnauthorized,
					"insufficient privileges", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
