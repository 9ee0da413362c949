package directory

import (
	"net/http"
	"strconv"

	"servicehub/internal/domain"
	"servicehub/internal/middleware"
	"servicehub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	// upload size limit enforced before the body reaches the store
	maxUploadBytes int64
}

func NewHandler(service *Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.POST("/auth/register/provider", h.RegisterProvider)

	providers := v1.Group("/providers")
	{
		providers.GET("", h.ListProviders)
		providers.GET("/:id", h.GetProvider)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	providers := protected.Group("/providers")
	{
		providers.POST("/me/kyc-documents", middleware.RequireKind(domain.KindProvider), h.UploadKycDocument)
		providers.GET("/:id/kyc-documents", h.ListKycDocuments)
	}
}

// RegisterProvider handles POST /api/v1/auth/register/provider
func (h *Handler) RegisterProvider(c *gin.Context) {
	var req RegisterProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.RegisterProvider(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"provider": p})
}

// ListProviders handles GET /api/v1/providers?service=
func (h *Handler) ListProviders(c *gin.Context) {
	providers, err := h.service.ListBookable(c.Request.Context(), c.Query("service"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"providers": providers})
}

func (h *Handler) GetProvider(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.service.Profile(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"provider": p})
}

// UploadKycDocument accepts a multipart "document" field.
func (h *Handler) UploadKycDocument(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		// multipart framing adds a little on top of the file itself
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)
	}
	fh, err := c.FormFile("document")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "document file is required")
		return
	}
	if h.maxUploadBytes > 0 && fh.Size > h.maxUploadBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "document exceeds upload limit")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "cannot read document")
		return
	}
	defer f.Close()

	doc, err := h.service.AttachKycDocument(c.Request.Context(), actor, actor.ID, KycUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"document": doc})
}

func (h *Handler) ListKycDocuments(c *gin.Context) {
	actor, ok := middleware.MustActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	docs, err := h.service.ListKycDocuments(c.Request.Context(), actor, id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"documents": docs})
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+param)
		return 0, false
	}
	return id, true
}
