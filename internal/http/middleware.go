package http

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"itemhub/internal/domain"
	"itemhub/internal/service"
)

const currentUserKey = "currentUser"

// corsMiddleware echoes allowed origins back so browsers may send the
// refresh cookie. A "*" entry allows any origin.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAny := slices.Contains(allowedOrigins, "*")
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (allowAny || slices.Contains(allowedOrigins, origin)) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Writer.Header().Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("request")
		case status >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// authenticate resolves the bearer token into an active user and stores it
// on the context.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithDetail(c, http.StatusUnauthorized, detailNotAuthorized)
			return
		}

		user, err := h.auth.ResolveToken(c.Request.Context(), token)
		if err != nil {
			h.respondError(c, err)
			return
		}
		if user, err = h.auth.RequireActive(user); err != nil {
			h.respondError(c, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// authorize applies policy to the current user. Routes with an :id
// parameter pass it as the target.
func (h *Handler) authorize(policy service.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		var target *int64
		if c.Param("id") != "" {
			id, ok := pathID(c)
			if !ok {
				return
			}
			target = &id
		}

		if err := service.Authorize(c.Request.Context(), currentUser(c), target, policy); err != nil {
			h.respondError(c, err)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
