package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wookrail/trainbooking/internal/service/routes"
)

type RouteHandler struct {
	service routes.RouteUseCase
}

func NewRouteHandler(service routes.RouteUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.GET("/route", h.route)
	router.GET("/search", h.search)
}

func (h *RouteHandler) route(c *gin.Context) {
	route, err := h.service.Route(c.Request.Context(), c.Query("train_no"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *RouteHandler) search(c *gin.Context) {
	trains, err := h.service.Search(c.Request.Context(), c.Query("source"), c.Query("destination"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trains)
}
