package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"itemhub/internal/domain"
	"itemhub/internal/service"
)

const refreshCookie = "refreshToken"

// Options configures a Handler.
type Options struct {
	Auth   service.AuthService
	Users  service.UserService
	Groups service.GroupService
	Items  service.ItemService
	Logger *logrus.Logger

	RefreshTTL     time.Duration
	CookieSecure   bool
	AllowedOrigins []string
	// LoginRatePerSecond <= 0 disables login rate limiting.
	LoginRatePerSecond float64
	LoginBurst         int
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	auth   service.AuthService
	users  service.UserService
	groups service.GroupService
	items  service.ItemService
	logger *logrus.Logger

	refreshTTL     time.Duration
	cookieSecure   bool
	allowedOrigins []string
	loginLimiter   *ipRateLimiter
}

func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	h := &Handler{
		auth:           opts.Auth,
		users:          opts.Users,
		groups:         opts.Groups,
		items:          opts.Items,
		logger:         logger,
		refreshTTL:     opts.RefreshTTL,
		cookieSecure:   opts.CookieSecure,
		allowedOrigins: opts.AllowedOrigins,
	}
	if opts.LoginRatePerSecond > 0 {
		h.loginLimiter = newIPRateLimiter(opts.LoginRatePerSecond, opts.LoginBurst)
	}
	return h
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger))
	router.Use(corsMiddleware(h.allowedOrigins))

	router.GET("/api/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	v1 := router.Group("/api/v1")

	oauth := v1.Group("/oauth2")
	{
		login := []gin.HandlerFunc{h.login}
		if h.loginLimiter != nil {
			login = append([]gin.HandlerFunc{h.loginLimiter.middleware()}, login...)
		}
		oauth.POST("/token/", login...)
		oauth.POST("/refresh/", h.refresh)
	}

	authenticated := service.Policy{}
	// No owner lookup, so the ownership branch always denies and only
	// Administrators get through.
	adminOnly := service.Policy{
		AllowedRoles:     []string{domain.GroupAdministrator},
		RequireOwnership: true,
	}
	adminOrOwner := service.Policy{
		AllowedRoles:     []string{domain.GroupAdministrator},
		RequireOwnership: true,
		Owners:           h.items,
	}

	users := v1.Group("/users", h.authenticate())
	{
		users.GET("/", h.authorize(authenticated), h.listUsers)
		users.POST("/", h.authorize(adminOnly), h.createUser)
		users.GET("/me/", h.me)
		users.GET("/:id/", h.authorize(authenticated), h.getUser)
		users.PUT("/:id/", h.authorize(adminOnly), h.updateUser)
		users.DELETE("/:id/", h.authorize(adminOnly), h.deleteUser)
	}

	groups := v1.Group("/groups", h.authenticate())
	{
		groups.GET("/", h.authorize(authenticated), h.listGroups)
		groups.POST("/", h.authorize(adminOnly), h.createGroup)
		groups.GET("/:id/", h.authorize(authenticated), h.getGroup)
		groups.PUT("/:id/", h.authorize(adminOnly), h.updateGroup)
		groups.DELETE("/:id/", h.authorize(adminOnly), h.deleteGroup)
	}

	items := v1.Group("/items", h.authenticate())
	{
		items.GET("/", h.authorize(authenticated), h.listItems)
		items.POST("/", h.authorize(authenticated), h.createItem)
		items.GET("/:id/", h.authorize(adminOrOwner), h.getItem)
		items.PUT("/:id/", h.authorize(adminOrOwner), h.updateItem)
		items.DELETE("/:id/", h.authorize(adminOrOwner), h.deleteItem)
	}
}

func (h *Handler) login(c *gin.Context) {
	pair, err := h.auth.Login(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookie, pair.RefreshToken, int(h.refreshTTL.Seconds()), "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, TokenResponse{AccessToken: pair.AccessToken, TokenType: "bearer"})
}

func (h *Handler) refresh(c *gin.Context) {
	token, err := c.Cookie(refreshCookie)
	if err != nil || token == "" {
		abortWithDetail(c, http.StatusUnauthorized, "No refresh token")
		return
	}

	access, err := h.auth.Refresh(c.Request.Context(), token)
	switch {
	case errors.Is(err, service.ErrUnknownSubject):
		abortWithDetail(c, http.StatusUnauthorized, "User does not exist")
		return
	case errors.Is(err, domain.ErrInvalidToken):
		abortWithDetail(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	case err != nil:
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: access, TokenType: "bearer"})
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}
