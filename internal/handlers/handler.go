package handlers

import (
	"net/http"
	"time"

	_ "pharmacy_inventory/docs"
	"pharmacy_inventory/internal/logger"
	"pharmacy_inventory/internal/service"
	"pharmacy_inventory/internal/view"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const defaultCookieName = "pharmacy_session"

// CookieConfig describes the session cookie handed to browsers.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	cookie   CookieConfig
	now      func() time.Time
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, cookie CookieConfig) *Handler {
	if cookie.Name == "" {
		cookie.Name = defaultCookieName
	}
	return &Handler{services: services, log: log, cookie: cookie, now: time.Now}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)
	router.SetHTMLTemplate(view.MustTemplates())
	router.NoRoute(h.notFound)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Every page carries a session, logged in or not.
	pages := router.Group("/", h.sessionMiddleware)
	pages.GET("/", h.home)

	h.registerAuthRoutes(pages)
	h.registerInventoryRoutes(pages)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.RouterGroup) {
	r.GET("/signup", h.signUpPage)
	r.POST("/signup", h.signUp)
	r.GET("/login", h.loginPage)
	r.POST("/login", h.login)
	r.GET("/logout", h.logout)
}

func (h *Handler) registerInventoryRoutes(r *gin.RouterGroup) {
	inv := r.Group("/", h.requireSession)
	{
		inv.GET("/dashboard", h.dashboard)
		inv.GET("/add_medicine", h.addMedicinePage)
		inv.POST("/add_medicine", h.addMedicine)
		inv.GET("/edit_medicine/:id", h.editMedicinePage)
		inv.POST("/edit_medicine/:id", h.editMedicine)
		inv.POST("/delete_medicine/:id", h.deleteMedicine)
		inv.GET("/ws/inventory", h.wsInventory)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// @Summary      Entry point
// @Description  Redirects to the dashboard when logged in, otherwise to the login page
// @Tags         pages
// @Success      302
// @Router       / [get]
func (h *Handler) home(c *gin.Context) {
	if currentSession(c).Authenticated() {
		h.redirect(c, "/dashboard")
		return
	}
	h.redirect(c, "/login")
}
