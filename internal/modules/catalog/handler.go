package catalog

import (
	"net/http"

	"servicehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	services := v1.Group("/services")
	{
		services.GET("", h.ListServices)
		services.GET("/categories", h.ListCategories)
	}
}

// ListServices handles GET /api/v1/services. Only active listings are public.
func (h *Handler) ListServices(c *gin.Context) {
	listings, err := h.service.ListActive(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": listings})
}

func (h *Handler) ListCategories(c *gin.Context) {
	groups, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": groups})
}
