package http

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/UmutSen2662/Mono/internal/config"
)

const (
	nameCookie = "mono_name"

	defaultName = "Guest"
)

// Session issues a durable per-user identity on first contact and exposes
// it to downstream handlers under the "playerID"/"playerName" context
// keys. The id is an opaque uuid; there is no authentication beyond it.
func Session(cfg config.Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if err != nil || id == "" {
			id = strings.ReplaceAll(uuid.NewString(), "-", "")
			c.SetCookie(cfg.CookieName, id, cfg.CookieMaxAge, "/", "", false, true)
		}

		name, err := c.Cookie(nameCookie)
		if err != nil || name == "" {
			name = defaultName
		} else if decoded, derr := url.QueryUnescape(name); derr == nil {
			name = decoded
		}

		c.Set("playerID", id)
		c.Set("playerName", name)
		c.Next()
	}
}

func setNameCookie(c *gin.Context, cfg config.Server, name string) {
	c.SetCookie(nameCookie, url.QueryEscape(name), cfg.CookieMaxAge, "/", "", false, true)
}

func abortJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
