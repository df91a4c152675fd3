package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/alimgiray/ghdash/internal/session"
	"github.com/alimgiray/ghdash/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "session"
	sessionDataKey    = "session"
	viewSessionKey    = "view_session"
)

type SessionData struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionMiddleware attaches a browser session to every request. A missing, tampered
// or expired cookie starts a new session; a valid one has its expiry extended.
func SessionMiddleware(store *session.Store, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionData := getSessionFromCookie(c)
		if sessionData == nil {
			sessionData = &SessionData{ID: uuid.NewString()}
		}

		// Written before the handler runs so the header is not lost once a body is sent
		if err := SetSession(c, sessionData, ttl); err != nil {
			c.Error(err)
		}

		c.Set(sessionDataKey, sessionData)
		c.Set(viewSessionKey, store.Get(sessionData.ID))

		c.Next()
	}
}

// getSessionFromCookie extracts and validates session data from cookie
func getSessionFromCookie(c *gin.Context) *SessionData {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	// Split cookie value (signature.data)
	parts := strings.Split(cookie, ".")
	if len(parts) != 2 {
		return nil
	}

	signature, data := parts[0], parts[1]

	if !verifySignature(data, signature) {
		return nil
	}

	decodedData, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return nil
	}

	var sessionData SessionData
	if err := json.Unmarshal(decodedData, &sessionData); err != nil {
		return nil
	}

	if _, err := uuid.Parse(sessionData.ID); err != nil {
		return nil
	}

	if time.Now().After(sessionData.ExpiresAt) {
		return nil
	}

	return &sessionData
}

// SetSession writes the session cookie with an expiry ttl from now
func SetSession(c *gin.Context, sessionData *SessionData, ttl time.Duration) error {
	sessionData.ExpiresAt = time.Now().Add(ttl)

	data, err := json.Marshal(sessionData)
	if err != nil {
		return err
	}

	encodedData := base64.URLEncoding.EncodeToString(data)
	signature := createSignature(encodedData)

	c.SetCookie(sessionCookieName, signature+"."+encodedData, int(ttl.Seconds()), "/", "", false, true)

	return nil
}

// createSignature creates HMAC signature for data
func createSignature(data string) string {
	h := hmac.New(sha256.New, []byte(config.AppConfig.Session.Secret))
	h.Write([]byte(data))
	return base64.URLEncoding.EncodeToString(h.Sum(nil))
}

// verifySignature verifies HMAC signature
func verifySignature(data, signature string) bool {
	expectedSignature := createSignature(data)
	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

// GetSession retrieves session data from context
func GetSession(c *gin.Context) *SessionData {
	sessionData, exists := c.Get(sessionDataKey)
	if !exists {
		return nil
	}

	if data, ok := sessionData.(*SessionData); ok {
		return data
	}

	return nil
}

// ViewSession retrieves the view state of the request's session
func ViewSession(c *gin.Context) *session.Session {
	sess, exists := c.Get(viewSessionKey)
	if !exists {
		return nil
	}

	if viewSession, ok := sess.(*session.Session); ok {
		return viewSession
	}

	return nil
}
