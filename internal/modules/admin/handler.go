package admin

import (
	"net/http"
	"strconv"

	"servicehub/internal/domain"
	"servicehub/internal/middleware"
	"servicehub/internal/modules/catalog"
	"servicehub/internal/modules/payment"
	"servicehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the admin console. The group is expected to carry
// JWTAuth and AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/dashboard", h.GetDashboard)

	// catalog
	admin.GET("/services", h.ListServices)
	admin.POST("/services", h.AddService)
	admin.POST("/services/:id/toggle", h.ToggleService)

	// providers
	admin.GET("/providers", h.ListProviders)
	admin.POST("/providers/:id/kyc/:action", h.DecideKyc)
	admin.POST("/providers/:id/status", h.SetProviderStatus)

	// customers
	admin.POST("/users/:id/status", h.SetUserStatus)

	// payments
	admin.POST("/payments/:id/settle", h.SettlePayment)
}

// GetDashboard returns platform totals and recent activity.
// @Summary		Admin dashboard
// @Tags		Admin
// @Security	BearerAuth
// @Success		200	{object}	Dashboard
// @Failure		403	{object}	map[string]interface{}
// @Router		/admin/dashboard [GET]
func (h *Handler) GetDashboard(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	d, err := h.service.Dashboard(c.Request.Context(), actor)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, d)
}

func (h *Handler) ListServices(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	list, err := h.service.ListServices(c.Request.Context(), actor)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": list})
}

// AddService creates a catalog listing.
// @Summary		Add service listing
// @Tags		Admin
// @Security	BearerAuth
// @Param		request	body	catalog.AddListingRequest	true	"Listing"
// @Router		/admin/services [POST]
func (h *Handler) AddService(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	var req catalog.AddListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	l, err := h.service.AddService(c.Request.Context(), actor, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": l})
}

func (h *Handler) ToggleService(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	l, err := h.service.ToggleService(c.Request.Context(), actor, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"service": l})
}

func (h *Handler) ListProviders(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	list, err := h.service.ListProviders(c.Request.Context(), actor)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"providers": list})
}

// DecideKyc approves or rejects a provider's KYC.
// @Summary		KYC decision
// @Tags		Admin
// @Security	BearerAuth
// @Param		id		path	int		true	"Provider ID"
// @Param		action	path	string	true	"approve | reject"
// @Router		/admin/providers/{id}/kyc/{action} [POST]
func (h *Handler) DecideKyc(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.service.DecideKyc(c.Request.Context(), actor, id, domain.KycDecision(c.Param("action")))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": p})
}

func (h *Handler) SetProviderStatus(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "status is required")
		return
	}

	p, err := h.service.SetProviderStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": p})
}

func (h *Handler) SetUserStatus(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "status is required")
		return
	}

	u, err := h.service.SetUserStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// SettlePayment records a gateway outcome for a pending payment.
// @Summary		Settle payment
// @Tags		Admin
// @Security	BearerAuth
// @Param		id		path	string					true	"Payment ID"
// @Param		request	body	payment.SettleRequest	true	"Outcome"
// @Router		/admin/payments/{id}/settle [POST]
func (h *Handler) SettlePayment(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	var req payment.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "outcome is required")
		return
	}

	p, err := h.service.SettlePayment(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
