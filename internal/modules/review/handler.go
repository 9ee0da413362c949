package review

import (
	"net/http"
	"strconv"

	"servicehub/internal/middleware"
	"servicehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/providers/:id/reviews", h.ListForProvider)
	v1.GET("/reviews/recent", h.Recent)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/bookings/:id/review", h.Submit)
}

func (h *Handler) Submit(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	rv, err := h.svc.SubmitReview(c.Request.Context(), actor, bookingID, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"review": rv})
}

// ListForProvider returns the reviews and the rating aggregate of a provider.
func (h *Handler) ListForProvider(c *gin.Context) {
	providerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid provider ID")
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	stats, err := h.svc.ProviderStats(c.Request.Context(), providerID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	reviews, err := h.svc.ListForProvider(c.Request.Context(), providerID, limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"stats":   stats,
		"reviews": reviews,
	})
}

func (h *Handler) Recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	reviews, err := h.svc.Recent(c.Request.Context(), limit)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reviews": reviews})
}
