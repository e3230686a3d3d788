package handlers

import (
	"net/http"
	"strconv"

	"pharmacy_inventory/internal/models"
	"pharmacy_inventory/internal/view"

	"github.com/gin-gonic/gin"
)

// Flash texts shown to users.
const (
	msgUsernameTaken   = "Username already exists. Please choose another one."
	msgAccountCreated  = "Account created successfully! Please log in."
	msgInvalidLogin    = "Invalid username or password."
	msgLoggedIn        = "Logged in successfully!"
	msgLoggedOut       = "You have been logged out."
	msgLoginRequired   = "Please log in to perform this action."
	msgMedicineAdded   = "Medicine added successfully!"
	msgMedicineUpdated = "Medicine updated successfully!"
	msgMedicineDeleted = "Medicine deleted successfully!"
	msgBadForm         = "The form could not be read. Please try again."
)

const (
	sessionKey    = "session"
	newSessionKey = "newSession"
	userIDKey     = "userId"
)

// currentSession returns the request's session, or nil outside the session middleware.
func currentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*models.Session)
	return s
}

func (h *Handler) flash(c *gin.Context, category, message string) {
	if s := currentSession(c); s != nil {
		s.AddFlash(category, message)
	}
}

// saveSession persists pending session changes before the response goes out,
// so the next request sees them. The cookie for a new session is issued here,
// after its row exists.
func (h *Handler) saveSession(c *gin.Context) {
	s := currentSession(c)
	if s == nil {
		return
	}
	if s.Dirty() {
		if err := h.services.Sessions.Save(c.Request.Context(), s); err != nil {
			if h.log != nil {
				h.log.Errorw("session_save_failed", "session_id", s.ID, "err", err)
			}
			return
		}
	}
	if !c.GetBool(newSessionKey) || !s.Stored() {
		return
	}
	token, err := h.services.Sessions.Token(s)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("session_token_failed", "session_id", s.ID, "err", err)
		}
		return
	}
	h.setSessionCookie(c, token)
	c.Set(newSessionKey, false)
}

func (h *Handler) redirect(c *gin.Context, location string) {
	h.saveSession(c)
	c.Redirect(http.StatusFound, location)
}

// render executes page with data plus the username and pending flashes.
func (h *Handler) render(c *gin.Context, code int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if s := currentSession(c); s != nil {
		data["user"] = s.Username
		data["flashes"] = s.PopFlashes()
		h.saveSession(c)
	}
	c.HTML(code, page, data)
}

func (h *Handler) notFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, view.NotFound, gin.H{"title": "Not found"})
}

// Centralized error logging and response.
func (h *Handler) logAndFail(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	h.render(c, http.StatusInternalServerError, view.InternalError, gin.H{"title": "Error"})
}

// medicineID parses the :id path parameter. Anything but a positive integer
// is answered with 404 and false.
func (h *Handler) medicineID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.notFound(c)
		return 0, false
	}
	return id, true
}
