package handlers

import (
	"net/http"
	"strings"

	"ecoroute/internal/models"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userId"

func (h *Handler) userIDMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userID, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(userIDKey, userID)
	c.Next()
}

// adminOnlyMiddleware loads the authenticated user and rejects any role
// outside the admin set. Runs after userIDMiddleware.
func (h *Handler) adminOnlyMiddleware(c *gin.Context) {
	userID := c.GetInt(userIDKey)
	u, err := h.services.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}
	if u.Role != models.RoleAdmin {
		if h.log != nil {
			h.log.Infow("admin_access_denied", "userId", userID, "role", u.Role)
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "not authorized",
		})
		return
	}
	c.Next()
}
