package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	m := NewSessionMiddleware("test-secret", time.Hour)

	token, err := m.signToken("abc-123")
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	sid, err := m.parseToken(token)
	if err != nil {
		t.Fatalf("parseToken: %v", err)
	}
	if sid != "abc-123" {
		t.Errorf("session id = %q, want abc-123", sid)
	}
}

func TestSessionTokenRejectsWrongSecret(t *testing.T) {
	signer := NewSessionMiddleware("secret-a", time.Hour)
	verifier := NewSessionMiddleware("secret-b", time.Hour)

	token, err := signer.signToken("abc-123")
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	if _, err := verifier.parseToken(token); err == nil {
		t.Fatal("expected signature error for wrong secret")
	}
}

func TestSessionTokenRejectsExpired(t *testing.T) {
	m := NewSessionMiddleware("test-secret", -time.Minute)

	token, err := m.signToken("abc-123")
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}
	if _, err := m.parseToken(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestSessionTokenRejectsGarbage(t *testing.T) {
	m := NewSessionMiddleware("test-secret", time.Hour)
	if _, err := m.parseToken("not-a-token"); err == nil {
		t.Fatal("expected parse error for garbage token")
	}
}

func TestEnsureSession_MintsCookie(t *testing.T) {
	m := NewSessionMiddleware("test-secret", time.Hour)

	var gotSID string
	handler := m.EnsureSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID = SessionID(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/simulator", nil))

	if gotSID == "" {
		t.Fatal("no session id in request context")
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sim_session" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no sim_session cookie set")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if sid, err := m.parseToken(cookie.Value); err != nil || sid != gotSID {
		t.Errorf("cookie token = (%q, %v), want context session id %q", sid, err, gotSID)
	}
}

func TestEnsureSession_ReusesValidCookie(t *testing.T) {
	m := NewSessionMiddleware("test-secret", time.Hour)

	token, err := m.signToken("existing-session")
	if err != nil {
		t.Fatalf("signToken: %v", err)
	}

	var gotSID string
	handler := m.EnsureSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID = SessionID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/simulator", nil)
	req.AddCookie(&http.Cookie{Name: "sim_session", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if gotSID != "existing-session" {
		t.Errorf("session id = %q, want existing-session", gotSID)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("valid cookie should not be re-issued")
	}
}

func TestEnsureSession_ReplacesTamperedCookie(t *testing.T) {
	m := NewSessionMiddleware("test-secret", time.Hour)

	var gotSID string
	handler := m.EnsureSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSID = SessionID(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/simulator", nil)
	req.AddCookie(&http.Cookie{Name: "sim_session", Value: "tampered.token.value"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if gotSID == "" || gotSID == "tampered.token.value" {
		t.Errorf("tampered cookie should mint a fresh session, got %q", gotSID)
	}
	var replaced bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sim_session" && c.Value != "tampered.token.value" {
			replaced = true
		}
	}
	if !replaced {
		t.Error("tampered cookie was not replaced")
	}
}
