package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	SessionCookie = "humbug_session"
	sessionKey    = "session_id"

	sessionLifetime = 180 * 24 * time.Hour
)

// Session resolves the caller's guest identity: an opaque session id carried
// in a signed token, issued on first contact. No account or login involved.
// The token is read from the session cookie or the X-Session-Token header and
// echoed back through both on first issue.
func Session(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			token = cookie
		}
		if h := c.GetHeader("X-Session-Token"); h != "" {
			token = h
		}

		sid := ""
		if token != "" {
			sid, _ = parseSessionToken(token, secret)
		}
		if sid == "" {
			sid = uuid.NewString()
			if signed, err := signSessionToken(sid, secret); err == nil {
				c.SetCookie(SessionCookie, signed, int(sessionLifetime.Seconds()), "/", "", false, true)
				c.Header("X-Session-Token", signed)
			}
		}

		c.Set(sessionKey, sid)
		c.Next()
	}
}

func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

func signSessionToken(sid, secret string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sid,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionLifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseSessionToken(tokenString, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
	if err != nil || !token.Valid {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.Subject, nil
}
