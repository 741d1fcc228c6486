// Package cookies writes and clears the session cookies that carry the
// access and refresh tokens.
package cookies

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	AccessCookie  = "access_token"
	RefreshCookie = "refresh_token"
)

// Policy holds the attributes shared by every session cookie.
type Policy struct {
	Secure   bool
	SameSite http.SameSite
	now      func() time.Time
}

// NewPolicy returns the production policy (Secure, SameSite=None) or the
// development one (SameSite=Lax).
func NewPolicy(production bool) Policy {
	p := Policy{SameSite: http.SameSiteLaxMode, now: time.Now}
	if production {
		p.Secure = true
		p.SameSite = http.SameSiteNoneMode
	}
	return p
}

// SetAccess writes the access cookie with a lifetime matching the token.
func (p Policy) SetAccess(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(p.cookie(AccessCookie, token, expiresAt))
}

// SetRefresh writes the refresh cookie with a lifetime matching the token.
func (p Policy) SetRefresh(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(p.cookie(RefreshCookie, token, expiresAt))
}

// Clear expires both session cookies using the same attributes they were
// set with, so browsers match and drop them.
func (p Policy) Clear(c echo.Context) {
	for _, name := range []string{AccessCookie, RefreshCookie} {
		ck := p.base(name, "")
		ck.MaxAge = -1
		ck.Expires = time.Unix(0, 0)
		c.SetCookie(ck)
	}
}

// Read returns the named cookie's value or "" when it is absent.
func Read(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}

func (p Policy) cookie(name, value string, expiresAt time.Time) *http.Cookie {
	now := time.Now
	if p.now != nil {
		now = p.now
	}
	ck := p.base(name, value)
	ck.Expires = expiresAt
	ck.MaxAge = int(expiresAt.Sub(now()).Seconds())
	if ck.MaxAge <= 0 {
		ck.MaxAge = -1
	}
	return ck
}

func (p Policy) base(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.Secure,
		SameSite: p.SameSite,
	}
}
