package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	engine "github.com/procurelens/ProcureLens/internal/analysis"
	appanalysis "github.com/procurelens/ProcureLens/internal/application/analysis"
	"github.com/procurelens/ProcureLens/internal/infrastructure/monitoring/logging"
	"github.com/procurelens/ProcureLens/pkg/errors"
	"github.com/procurelens/ProcureLens/pkg/types/risk"
)

// AnalysisService runs contract analyses.
type AnalysisService interface {
	Analyze(ctx context.Context, in appanalysis.AnalyzeInput) (*engine.Result, error)
}

// AnalysisHandler serves the analysis endpoints.
type AnalysisHandler struct {
	svc    AnalysisService
	logger logging.Logger
}

// NewAnalysisHandler builds the handler.
func NewAnalysisHandler(svc AnalysisService, log logging.Logger) *AnalysisHandler {
	return &AnalysisHandler{svc: svc, logger: log}
}

type analyzeRequest struct {
	Content      string `json:"content"`
	DocumentType string `json:"document_type"`
	ContractID   string `json:"contract_id"`
	ContractName string `json:"contract_name"`
	VendorID     string `json:"vendor_id"`
}

// Analyze handles POST /api/v1/analyses: analyze inline document content.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "decode request body"))
		return
	}

	res, err := h.svc.Analyze(c.Request.Context(), appanalysis.AnalyzeInput{
		Content:      req.Content,
		DocumentType: risk.DocumentType(req.DocumentType),
		ContractID:   req.ContractID,
		ContractName: req.ContractName,
		VendorID:     req.VendorID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type analyzeDocumentRequest struct {
	ContractID   string `json:"contract_id"`
	ContractName string `json:"contract_name"`
}

// AnalyzeDocument handles POST /api/v1/documents/:id/analyses: analyze a
// previously ingested document. The body is optional and only overrides
// contract identity.
func (h *AnalysisHandler) AnalyzeDocument(c *gin.Context) {
	var req analyzeDocumentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, errors.Wrap(err, errors.ErrCodeBadRequest, "decode request body"))
			return
		}
	}

	res, err := h.svc.Analyze(c.Request.Context(), appanalysis.AnalyzeInput{
		DocumentID:   c.Param("id"),
		ContractID:   req.ContractID,
		ContractName: req.ContractName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
