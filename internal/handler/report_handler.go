package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fxpulse/internal/model"
)

type ReportStore interface {
	GetLatestReport() (*model.ResearchReport, error)
	GetReports(limit, offset int) ([]model.ResearchReport, error)
	GetReportTotal() (int, error)
}

type ReportHandler struct {
	repository ReportStore
}

func NewReportHandler(repository ReportStore) *ReportHandler {
	return &ReportHandler{repository: repository}
}

func (h *ReportHandler) GetLatestReport(c *gin.Context) {
	report, err := h.repository.GetLatestReport()
	if err != nil {
		slog.Error("error fetching latest report", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No reports available"})
		return
	}

	c.JSON(http.StatusOK, toReportResponse(*report))
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	limit := getQueryBoundedInt(c, "limit", 10, 1, 50)
	offset := getQueryBoundedInt(c, "offset", 0, 0, 10000)

	reports, err := h.repository.GetReports(limit, offset)
	if err != nil {
		slog.Error("error fetching reports", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetReportTotal()
	if err != nil {
		slog.Error("error counting reports", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	out := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, toReportResponse(r))
	}

	c.JSON(http.StatusOK, ReportsResponse{Reports: out, Total: total, Limit: limit, Offset: offset})
}

func toReportResponse(r model.ResearchReport) ReportResponse {
	return ReportResponse{
		ID:            r.ID,
		Topic:         r.Topic,
		Questions:     r.Questions,
		Report:        r.Report,
		CitationCount: r.CitationCount,
		ModelUsed:     r.ModelUsed,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
}
