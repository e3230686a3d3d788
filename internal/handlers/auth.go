package handlers

import (
	"errors"
	"net/http"

	"pharmacy_inventory/internal/models"
	"pharmacy_inventory/internal/service"
	"pharmacy_inventory/internal/view"

	"github.com/gin-gonic/gin"
)

// Single, shared credentials payload for both sign-up and login.
type authCredentials struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// bindFormOrRedirect binds the request body into dst. On failure it flashes
// and redirects back to fallback, and returns false.
func (h *Handler) bindFormOrRedirect(c *gin.Context, dst any, fallback string) bool {
	if err := c.ShouldBind(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.Request.URL.Path, "err", err)
		}
		h.flash(c, models.FlashDanger, msgBadForm)
		h.redirect(c, fallback)
		return false
	}
	return true
}

// @Summary      Sign-up page
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /signup [get]
func (h *Handler) signUpPage(c *gin.Context) {
	h.render(c, http.StatusOK, view.Signup, gin.H{"title": "Sign up"})
}

// @Summary      Create an account
// @Description  Redirects to /login on success, back to /signup with a flash otherwise
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Router       /signup [post]
func (h *Handler) signUp(c *gin.Context) {
	var input authCredentials
	if ok := h.bindFormOrRedirect(c, &input, "/signup"); !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), input.Username, input.Password)
	var ve *service.ValidationError
	switch {
	case err == nil:
		if h.log != nil {
			h.log.Infow("user_signed_up", "user_id", id, "username", input.Username)
		}
		h.flash(c, models.FlashSuccess, msgAccountCreated)
		h.redirect(c, "/login")
	case errors.Is(err, service.ErrDuplicateUsername):
		h.flash(c, models.FlashDanger, msgUsernameTaken)
		h.redirect(c, "/signup")
	case errors.As(err, &ve):
		h.flash(c, models.FlashDanger, ve.Message())
		h.redirect(c, "/signup")
	default:
		h.logAndFail(c, "auth_sign_up_failed", err, "username", input.Username)
	}
}

// @Summary      Login page
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *Handler) loginPage(c *gin.Context) {
	h.render(c, http.StatusOK, view.Login, gin.H{"title": "Log in"})
}

// @Summary      Log in
// @Description  Binds the session to the user and redirects to /dashboard, or back to /login with a flash
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      302
// @Router       /login [post]
func (h *Handler) login(c *gin.Context) {
	var input authCredentials
	if ok := h.bindFormOrRedirect(c, &input, "/login"); !ok {
		return
	}
	ctx := c.Request.Context()

	user, err := h.services.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("auth_login_failed", "username", input.Username)
			}
			h.flash(c, models.FlashDanger, msgInvalidLogin)
			h.redirect(c, "/login")
			return
		}
		h.logAndFail(c, "auth_login_failed", err, "username", input.Username)
		return
	}

	sess := currentSession(c)
	sess.AddFlash(models.FlashSuccess, msgLoggedIn)
	if err := h.services.Sessions.Login(ctx, sess, user); err != nil {
		h.logAndFail(c, "session_login_failed", err, "user_id", user.ID)
		return
	}
	h.redirect(c, "/dashboard")
}

// @Summary      Log out
// @Description  Clears the session's user; safe to call when not logged in
// @Tags         auth
// @Success      302
// @Router       /logout [get]
func (h *Handler) logout(c *gin.Context) {
	sess := currentSession(c)
	sess.AddFlash(models.FlashInfo, msgLoggedOut)
	if err := h.services.Sessions.Logout(c.Request.Context(), sess); err != nil {
		h.logAndFail(c, "session_logout_failed", err)
		return
	}
	h.redirect(c, "/login")
}
