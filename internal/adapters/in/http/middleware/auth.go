// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// TokenVerifier turns an opaque bearer token into a sessionKey.
// The cart core never decodes the token itself; identity derivation is an
// external capability behind this port.
type TokenVerifier interface {
	VerifySessionToken(ctx context.Context, token string) (string, error)
}

// context keys use an unexported struct type to avoid collisions (SA1029).
type ctxKey struct{ name string }

var ctxKeySession = ctxKey{name: "sessionKey"}

// SessionAuth verifies the "token" request header and stores the derived
// sessionKey in the request context.
//
// Missing or invalid token fails fast with 401; a cart operation is never
// silently treated as guest.
type SessionAuth struct {
	Verifier TokenVerifier
}

func (m *SessionAuth) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m == nil || m.Verifier == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		token := strings.TrimSpace(r.Header.Get("token"))
		if token == "" {
			http.Error(w, "unauthorized: missing token", http.StatusUnauthorized)
			return
		}

		sessionKey, err := m.Verifier.VerifySessionToken(r.Context(), token)
		if err != nil {
			log.Printf("[auth] token rejected path=%s err=%v", r.URL.Path, err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if strings.TrimSpace(sessionKey) == "" {
			http.Error(w, "invalid session in token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeySession, sessionKey)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentSessionKey returns the sessionKey stored by SessionAuth.
func CurrentSessionKey(r *http.Request) (string, bool) {
	v, ok := r.Context().Value(ctxKeySession).(string)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// FirebaseTokenVerifier adapts the Firebase Auth client to TokenVerifier.
// sessionKey = Firebase uid.
type FirebaseTokenVerifier struct {
	Auth *fbauth.Client
}

func (v *FirebaseTokenVerifier) VerifySessionToken(ctx context.Context, token string) (string, error) {
	tok, err := v.Auth.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tok.UID), nil
}
