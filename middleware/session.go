package middleware

import (
	"context"
	"net/http"
	"time"

	"nfl-rankings-go/logging"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionContextKey is the key used to store the session id in request context
type SessionContextKey string

const SessionKey SessionContextKey = "session_id"

const sessionCookieName = "sim_session"

// sessionClaims is the payload of the signed session cookie.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionMiddleware gives every visitor a signed simulator session cookie so
// their in-flight bracket picks survive page loads without any server-side
// login. The cookie only carries an opaque session id; the picks themselves
// stay in process memory.
type SessionMiddleware struct {
	secret []byte
	ttl    time.Duration
	logger *logging.Logger
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(secret string, ttl time.Duration) *SessionMiddleware {
	return &SessionMiddleware{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logging.WithPrefix("SessionMiddleware"),
	}
}

// EnsureSession validates the session cookie, minting a fresh session when
// the cookie is absent, expired, or tampered with, and puts the session id
// into the request context.
func (m *SessionMiddleware) EnsureSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""

		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if sid, err := m.parseToken(cookie.Value); err == nil {
				sessionID = sid
			} else {
				m.logger.Debugf("Rejected session cookie: %v", err)
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			token, err := m.signToken(sessionID)
			if err != nil {
				m.logger.Errorf("Failed to sign session token: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(m.ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			m.logger.Debugf("Issued new simulator session %s", sessionID)
		}

		ctx := context.WithValue(r.Context(), SessionKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionMiddleware) signToken(sessionID string) (string, error) {
	claims := sessionClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "nfl-rankings-go",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *SessionMiddleware) parseToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.SessionID, nil
}

// SessionID returns the simulator session id from the request context
func SessionID(r *http.Request) string {
	if sid, ok := r.Context().Value(SessionKey).(string); ok {
		return sid
	}
	return ""
}
