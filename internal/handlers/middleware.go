package handlers

import (
	"errors"
	"net/http"
	"time"

	"pharmacy_inventory/internal/models"
	"pharmacy_inventory/internal/service"

	"github.com/gin-gonic/gin"
)

// sessionMiddleware resolves the session cookie or falls back to a new
// in-memory session, and saves whatever the handler changed. A new session
// gets a row and a cookie only once something is saved into it.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	var sess *models.Session
	if token, err := c.Cookie(h.cookie.Name); err == nil && token != "" {
		loaded, err := h.services.Sessions.Load(ctx, token)
		switch {
		case err == nil:
			sess = loaded
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrSessionNotFound):
			if h.log != nil {
				h.log.Debugw("session_discarded", "err", err)
			}
		default:
			h.logAndFail(c, "session_load_failed", err)
			c.Abort()
			return
		}
	}

	if sess == nil {
		sess = h.services.Sessions.New()
		c.Set(newSessionKey, true)
	}

	// store in Gin context
	c.Set(sessionKey, sess)
	c.Next()

	h.saveSession(c)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.MaxAge/time.Second), "/", "", h.cookie.Secure, true)
}

// requireSession lets only logged-in users through; everyone else is sent
// to the login page.
func (h *Handler) requireSession(c *gin.Context) {
	sess := currentSession(c)
	if !sess.Authenticated() {
		if c.Request.Method != http.MethodGet {
			h.flash(c, models.FlashDanger, msgLoginRequired)
		}
		h.redirect(c, "/login")
		c.Abort()
		return
	}

	c.Set(userIDKey, sess.UserID)
	c.Next()
}

// requestLogger writes one structured line per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}
