package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Domenick1991/searchbox/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

const defaultPopularLimit = 10

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Register(router *gin.RouterGroup) {
	router.GET("/airports", listHandler(h.service.Airports))
	router.GET("/countries", listHandler(h.service.Countries))
	router.GET("/routes", listHandler(h.service.Routes))
	router.GET("/routes/popular", h.popular)
	router.GET("/airlines", listHandler(h.service.Airlines))
	router.GET("/seatclasses", listHandler(h.service.SeatClasses))
}

func listHandler[T any](list func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := list(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func (h *CatalogHandler) popular(c *gin.Context) {
	limit := defaultPopularLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	routes, err := h.service.PopularRoutes(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, routes)
}
