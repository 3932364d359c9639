package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"globetrotter/globals"

	"github.com/julienschmidt/httprouter"
)

func TestIssueAndValidateToken(t *testing.T) {
	token, err := IssueToken("user-123", "traveler@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	claims, err := ValidateJWT("Bearer " + token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != "user-123" || claims.Email != "traveler@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	if _, err := ValidateJWT(""); err == nil {
		t.Fatal("empty token accepted")
	}
	if _, err := ValidateJWT("Bearer not-a-token"); err == nil {
		t.Fatal("malformed token accepted")
	}
}

func TestAuthenticateMiddleware(t *testing.T) {
	token, err := IssueToken("user-456", "other@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	var gotUserID string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID != "user-456" {
		t.Fatalf("user id not stored in context, got %q", gotUserID)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	handler(rec, req, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token should be rejected, got %d", rec.Code)
	}
}
