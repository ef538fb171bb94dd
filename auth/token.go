// Package auth implements the dashboard's stateless session credential.
//
// There is no user-account system and no server-side session store: a single
// shared secret gates the dashboard, and the session token is re-derived from
// that secret and compared on every request.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

// TokenCookieName is the cookie carrying the dashboard session token
const TokenCookieName = "dash_token"

// tokenMACKey is the fixed application constant used as the HMAC key when
// deriving the session token from the shared secret. Rotating the secret
// invalidates all outstanding tokens without any server-side state.
const tokenMACKey = "dsc10-tutor-logger-dashboard"

// DeriveToken derives the session token from the shared secret:
// hex(HMAC-SHA256(key = application constant, message = secret)).
func DeriveToken(secret string) string {
	mac := hmac.New(sha256.New, []byte(tokenMACKey))
	mac.Write([]byte(secret))
	return hex.EncodeToString(mac.Sum(nil))
}

// CheckPassword compares a submitted password against the configured shared
// secret in constant time.
func CheckPassword(submitted, secret string) bool {
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(secret)) == 1
}

// VerifyToken reports whether token matches the one derived from the current
// secret. The comparison never short-circuits.
func VerifyToken(token, secret string) bool {
	return hmac.Equal([]byte(token), []byte(DeriveToken(secret)))
}

// SetTokenCookie issues the session cookie after a successful login. The
// cookie is HTTP-only and same-site restricted; its lifetime is left to the
// browser since the server enforces no expiry of its own.
func SetTokenCookie(w http.ResponseWriter, secret string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookieName,
		Value:    DeriveToken(secret),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Authenticated reports whether the request carries a valid session cookie
func Authenticated(r *http.Request, secret string) bool {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil {
		return false
	}
	return VerifyToken(cookie.Value, secret)
}
