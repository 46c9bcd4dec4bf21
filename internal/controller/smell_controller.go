package controller

import (
	"fmt"
	"net/http"

	"cppsniff/internal/report"
	"cppsniff/internal/smells/commented"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SmellController handles commented code detection HTTP endpoints
type SmellController struct {
	processor *ScanProcessor
	logger    *zap.Logger
}

// NewSmellController creates a new smell controller
func NewSmellController(processor *ScanProcessor, logger *zap.Logger) *SmellController {
	return &SmellController{
		processor: processor,
		logger:    logger,
	}
}

// ScanDirectoryRequest is the request body for directory scans
type ScanDirectoryRequest struct {
	Dir string `json:"dir" binding:"required"`
}

// ScanDirectory handles POST /api/v1/scanDirectory
func (sc *SmellController) ScanDirectory(c *gin.Context) {
	var req ScanDirectoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	rep, err := sc.processor.ScanDirectory(c.Request.Context(), req.Dir)
	if err != nil {
		sc.logger.Error("Failed to scan directory", zap.String("dir", req.Dir), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to scan directory: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, report.Build(rep))
}

// ClassifyRequest is the request body for classifying a single comment
type ClassifyRequest struct {
	Text string `json:"text"`
}

// ClassifyResponse carries the verdict for a comment
type ClassifyResponse struct {
	Strategy string `json:"strategy"`
	Text     string `json:"text"`
	commented.Verdict
}

// Classify handles POST /api/v1/classify
func (sc *SmellController) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ClassifyResponse{
		Strategy: sc.processor.Strategy(),
		Text:     commented.Normalize(req.Text),
		Verdict:  sc.processor.Classify(c.Request.Context(), req.Text),
	})
}

// Findings handles GET /api/v1/findings. Without run_id the latest run is returned.
func (sc *SmellController) Findings(c *gin.Context) {
	store := sc.processor.Store()
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Finding store is not configured",
		})
		return
	}

	ctx := c.Request.Context()
	runID := c.Query("run_id")
	if runID == "" {
		latest, err := store.LatestRunID(ctx)
		if err != nil {
			sc.logger.Error("Failed to find latest run", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to find latest run: %v", err),
			})
			return
		}
		if latest == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "No scan runs stored"})
			return
		}
		runID = latest
	}

	found, err := store.ListFindings(ctx, runID)
	if err != nil {
		sc.logger.Error("Failed to list findings", zap.String("run_id", runID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to list findings: %v", err),
		})
		return
	}

	findings := make([]report.Finding, 0, len(found))
	for _, s := range found {
		findings = append(findings, report.Finding{
			File:        s.Location.File,
			Line:        s.Location.Line,
			Column:      s.Location.Column,
			Type:        string(s.Type),
			Description: s.Description,
			Text:        s.Text,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"run_id":   runID,
		"findings": findings,
	})
}

