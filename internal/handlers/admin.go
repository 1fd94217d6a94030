package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Aggregate statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.AdminStats
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/admin/stats [get]
// @Security     BearerAuth
func (h *Handler) adminStats(c *gin.Context) {
	stats, err := h.services.Overview(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, "admin_stats_failed", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, users"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/admin/users [get]
// @Security     BearerAuth
func (h *Handler) adminUsers(c *gin.Context) {
	users, err := h.services.Stats.ListUsers(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, "admin_users_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// @Summary      Host system snapshot
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.SystemInfo
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/system [get]
// @Security     BearerAuth
func (h *Handler) adminSystem(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.System())
}

// @Summary      List all routes (admin view)
// @Tags         admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, routes"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/admin/routes [get]
// @Security     BearerAuth
func (h *Handler) adminRoutes(c *gin.Context) {
	routes, err := h.services.Routes.List(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, "admin_routes_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(routes), "routes": routes})
}
