package handlers

import (
	"net/http"

	"ecoroute/internal/models"
	"ecoroute/internal/service"

	"github.com/gin-gonic/gin"
)

// routeRequest serves both create and update: pointer fields distinguish
// "absent" from "zero" so partial updates only touch what was sent.
type routeRequest struct {
	Start         *models.Location     `json:"start_point"`
	End           *models.Location     `json:"end_point"`
	CarbonSaved   *float64             `json:"carbon_saved"`
	Distance      *float64             `json:"distance"`
	TransportMode *string              `json:"transport_mode"`
	EstimatedTime *int                 `json:"estimated_time"`
	Attractions   *[]models.Attraction `json:"attractions"`
}

func (r routeRequest) toParams() service.RouteParams {
	return service.RouteParams{
		Start:         r.Start,
		End:           r.End,
		CarbonSaved:   r.CarbonSaved,
		Distance:      r.Distance,
		TransportMode: r.TransportMode,
		EstimatedTime: r.EstimatedTime,
		Attractions:   r.Attractions,
	}
}

// @Summary      List all routes
// @Tags         routes
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, routes"
// @Failure      500  {object}  map[string]string
// @Router       /api/routes [get]
func (h *Handler) listRoutes(c *gin.Context) {
	routes, err := h.services.Routes.List(c.Request.Context())
	if err != nil {
		h.respondServiceError(c, "routes_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(routes), "routes": routes})
}

// @Summary      List routes by region
// @Tags         routes
// @Produce      json
// @Param        regionCode  path  string  true  "Continent code"  Enums(NA,EU,AS,OC,AF,SA)
// @Success      200  {object}  map[string]interface{}  "count, routes"
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/routes/region/{regionCode} [get]
func (h *Handler) listRoutesByRegion(c *gin.Context) {
	region := c.Param("regionCode")
	routes, err := h.services.ListByRegion(c.Request.Context(), region)
	if err != nil {
		h.respondServiceError(c, "routes_region_failed", err, "region", region)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(routes), "routes": routes})
}

// @Summary      Get route by id
// @Tags         routes
// @Produce      json
// @Param        id  path  string  true  "Route id"
// @Success      200  {object}  models.EcoRoute
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/routes/{id} [get]
func (h *Handler) getRoute(c *gin.Context) {
	id := c.Param("id")
	route, err := h.services.Routes.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondServiceError(c, "routes_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, route)
}

// @Summary      Create route
// @Tags         routes
// @Accept       json
// @Produce      json
// @Param        body  body  routeRequest  true  "Route payload"
// @Success      201   {object}  models.EcoRoute
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/routes [post]
func (h *Handler) createRoute(c *gin.Context) {
	var req routeRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	route, err := h.services.Routes.Create(c.Request.Context(), req.toParams())
	if err != nil {
		h.respondServiceError(c, "routes_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

// @Summary      Update route
// @Description  Only fields present in the body are changed.
// @Tags         routes
// @Accept       json
// @Produce      json
// @Param        id    path  string        true  "Route id"
// @Param        body  body  routeRequest  true  "Fields to change"
// @Success      200   {object}  models.EcoRoute
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/routes/{id} [put]
func (h *Handler) updateRoute(c *gin.Context) {
	var req routeRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	id := c.Param("id")
	route, err := h.services.Routes.Update(c.Request.Context(), id, req.toParams())
	if err != nil {
		h.respondServiceError(c, "routes_update_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, route)
}

// @Summary      Delete route
// @Tags         routes
// @Produce      json
// @Param        id  path  string  true  "Route id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/routes/{id} [delete]
func (h *Handler) deleteRoute(c *gin.Context) {
	id := c.Param("id")
	if err := h.services.Routes.Delete(c.Request.Context(), id); err != nil {
		h.respondServiceError(c, "routes_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
