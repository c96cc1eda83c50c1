// Package cookie writes the HttpOnly cookies that carry opaque references and session tokens.
package cookie

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie names.
const (
	// RegistrationRef holds the reference of a pending registration.
	RegistrationRef = "temp_registration_id"
	// LoginRef holds the reference of a pending login.
	LoginRef = "temp_session_id"
	// Session holds the session token.
	Session = "auth_session_id"
)

const (
	DefaultPendingTTL = 5 * time.Minute
	DefaultSessionTTL = 24 * time.Hour
)

// Config controls cookie attributes. Zero TTLs fall back to the defaults.
type Config struct {
	Secure     bool
	PendingTTL time.Duration
	SessionTTL time.Duration
}

// Jar sets and clears the auth cookies on a gin response.
// All cookies are scoped to "/", HttpOnly and SameSite=Lax.
type Jar struct {
	cfg Config
}

// NewJar creates a Jar.
func NewJar(cfg Config) *Jar {
	if cfg.PendingTTL <= 0 {
		cfg.PendingTTL = DefaultPendingTTL
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	return &Jar{cfg: cfg}
}

// SetPending sets a short-lived reference cookie (registration or login).
func (j *Jar) SetPending(c *gin.Context, name, ref string) {
	j.set(c, name, ref, j.cfg.PendingTTL)
}

// SetSession sets the session token cookie.
func (j *Jar) SetSession(c *gin.Context, token string) {
	j.set(c, Session, token, j.cfg.SessionTTL)
}

// Clear expires the named cookie.
func (j *Jar) Clear(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", j.cfg.Secure, true)
}

func (j *Jar) set(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl/time.Second), "/", "", j.cfg.Secure, true)
}
