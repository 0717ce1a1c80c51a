package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieConfig describes the two visitor cookies.
type CookieConfig struct {
	SessionName string
	UsageName   string
	TTL         time.Duration
	Domain      string
	Secure      bool
}

// readUsage returns the presented usage count, nil if absent or not a number.
func (cc CookieConfig) readUsage(c *gin.Context) *int {
	raw, err := c.Cookie(cc.UsageName)
	if err != nil {
		return nil
	}
	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &count
}

// readSession returns the presented session cookie, empty if absent.
func (cc CookieConfig) readSession(c *gin.Context) string {
	value, err := c.Cookie(cc.SessionName)
	if err != nil {
		return ""
	}
	return value
}

// setUsage writes the usage cookie. The widget reads it, so it is not HttpOnly.
func (cc CookieConfig) setUsage(c *gin.Context, count int) {
	cc.set(c, cc.UsageName, strconv.Itoa(count), false)
}

func (cc CookieConfig) setSession(c *gin.Context, value string) {
	cc.set(c, cc.SessionName, value, true)
}

func (cc CookieConfig) set(c *gin.Context, name, value string, httpOnly bool) {
	// A widget on another site only sends cookies back with SameSite=None, which requires Secure.
	if cc.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(name, value, int(cc.TTL/time.Second), "/", cc.Domain, cc.Secure, httpOnly)
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// sanitizeText strips markup and collapses whitespace in visitor input.
func sanitizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
