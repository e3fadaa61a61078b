package middlewares

import (
	"encoding/gob"
	"net/http"
	"net/url"

	"github.com/Kariqs/decorshop/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	SessionName = "decorshop-session"

	sessionKey        = "session"
	sessionUserIDKey  = "user_id"
	sessionCartKeyKey = "cart_key"
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashMessage is shown once on the next rendered page.
type FlashMessage struct {
	Type    string
	Message string
}

func init() {
	gob.Register(FlashMessage{})
}

// NewSessionStore returns the cookie store backing every browser session.
func NewSessionStore(key []byte, secure bool, domain string) *sessions.CookieStore {
	store := sessions.NewCookieStore(key)
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	store.Options.Path = "/"
	store.Options.MaxAge = 7 * 24 * 60 * 60
	if domain != "" {
		store.Options.Domain = domain
	}
	return store
}

// Sessions loads the request's session into the gin context. A cookie that
// no longer decodes (for example after a key rotation) starts a new session.
func Sessions(store sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := store.Get(c.Request, SessionName)
		if err != nil {
			logger.Warn(c, "Discarding unreadable session cookie")
			session, _ = store.New(c.Request, SessionName)
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

func GetSession(c *gin.Context) *sessions.Session {
	if value, ok := c.Get(sessionKey); ok {
		if session, ok := value.(*sessions.Session); ok {
			return session
		}
	}
	// Only reached when Sessions is not installed.
	return sessions.NewSession(nil, SessionName)
}

// SaveSession writes the session cookie. It must run before the response
// body or a redirect is written.
func SaveSession(c *gin.Context) {
	session := GetSession(c)
	if session.Store() == nil {
		return
	}
	if err := session.Save(c.Request, c.Writer); err != nil {
		logger.Error(c, "Failed to save session", err)
	}
}

func AddFlash(c *gin.Context, flashType, message string) {
	GetSession(c).AddFlash(FlashMessage{Type: flashType, Message: message})
}

// Flashes pops the pending flash messages.
func Flashes(c *gin.Context) []FlashMessage {
	var messages []FlashMessage
	for _, f := range GetSession(c).Flashes() {
		if fm, ok := f.(FlashMessage); ok {
			messages = append(messages, fm)
		}
	}
	return messages
}

// Redirect saves the session and sends a 303 to location.
func Redirect(c *gin.Context, location string) {
	SaveSession(c)
	c.Redirect(http.StatusSeeOther, location)
}

// RedirectWithFlash queues a flash message and redirects.
func RedirectWithFlash(c *gin.Context, location, flashType, message string) {
	AddFlash(c, flashType, message)
	Redirect(c, location)
}

// RedirectBack returns to the referring page on this site, or to fallback.
func RedirectBack(c *gin.Context, fallback string) {
	location := fallback
	if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.Path != "" && (ref.Host == "" || ref.Host == c.Request.Host) {
		location = ref.RequestURI()
	}
	Redirect(c, location)
}

func SessionUserID(c *gin.Context) string {
	id, _ := GetSession(c).Values[sessionUserIDKey].(string)
	return id
}

func SetSessionUser(c *gin.Context, userID string) {
	GetSession(c).Values[sessionUserIDKey] = userID
}

func ClearSessionUser(c *gin.Context) {
	delete(GetSession(c).Values, sessionUserIDKey)
}

// CartKey returns the session's cart key, or "" when no cart was started.
func CartKey(c *gin.Context) string {
	key, _ := GetSession(c).Values[sessionCartKeyKey].(string)
	return key
}

// EnsureCartKey returns the session's cart key, assigning a new one first
// when needed. The caller must save the session.
func EnsureCartKey(c *gin.Context) string {
	if key := CartKey(c); key != "" {
		return key
	}
	key := uuid.NewString()
	GetSession(c).Values[sessionCartKeyKey] = key
	return key
}
