// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func protectedHandler(secret string) (http.Handler, *bool) {
	reached := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	return requireAdmin(secret)(inner), &reached
}

func TestIssueAdminTokenRequiresSecret(t *testing.T) {
	if _, err := IssueAdminToken("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestRequireAdmin(t *testing.T) {
	secret := "test-secret"

	valid, err := IssueAdminToken(secret, time.Hour)
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}
	expired, err := IssueAdminToken(secret, -time.Hour)
	if err != nil {
		t.Fatalf("issuing expired token: %v", err)
	}
	wrongSecret, err := IssueAdminToken("other-secret", time.Hour)
	if err != nil {
		t.Fatalf("issuing foreign token: %v", err)
	}
	userToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, adminClaims{
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing user token: %v", err)
	}

	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
		wantInner  bool
	}{
		{"no secret configured", "", "Bearer " + valid, http.StatusForbidden, false},
		{"missing header", secret, "", http.StatusUnauthorized, false},
		{"not bearer", secret, "Basic abc", http.StatusUnauthorized, false},
		{"garbage token", secret, "Bearer nope", http.StatusUnauthorized, false},
		{"expired token", secret, "Bearer " + expired, http.StatusUnauthorized, false},
		{"wrong secret", secret, "Bearer " + wrongSecret, http.StatusUnauthorized, false},
		{"non-admin role", secret, "Bearer " + userToken, http.StatusForbidden, false},
		{"valid token", secret, "Bearer " + valid, http.StatusOK, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, reached := protectedHandler(tt.secret)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/welfare/sync", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d\nbody: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if *reached != tt.wantInner {
				t.Errorf("inner handler reached = %v, want %v", *reached, tt.wantInner)
			}
		})
	}
}
