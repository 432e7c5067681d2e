package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/procurelens/ProcureLens/internal/application/documents"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/errors"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// DocumentService ingests and resolves stored documents.
type DocumentService interface {
	Ingest(ctx context.Context, in documents.IngestInput) (*documents.Document, error)
	Get(ctx context.Context, id string) (*documents.Document, error)
}

// DocumentHandler serves the document endpoints.
type DocumentHandler struct {
	svc    DocumentService
	logger logging.Logger
}

// NewDocumentHandler builds the handler.
func NewDocumentHandler(svc DocumentService, log logging.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, logger: log}
}

type uploadRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	VendorID string `json:"vendor_id"`
	Content  string `json:"content"`
}

// Upload handles POST /api/v1/documents: ingest one plain-text document.
func (h *DocumentHandler) Upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "decode request body"))
		return
	}

	doc, err := h.svc.Ingest(c.Request.Context(), documents.IngestInput{
		Name:     req.Name,
		Type:     risk.DocumentType(req.Type),
		VendorID: req.VendorID,
		Content:  []byte(req.Content),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// Get handles GET /api/v1/documents/:id.
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
