package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"fxpulse/internal/model"
)

type fakeReportStore struct {
	latest  *model.ResearchReport
	reports []model.ResearchReport
	total   int
	err     error
}

func (f *fakeReportStore) GetLatestReport() (*model.ResearchReport, error) {
	return f.latest, f.err
}

func (f *fakeReportStore) GetReports(limit, offset int) ([]model.ResearchReport, error) {
	return f.reports, f.err
}

func (f *fakeReportStore) GetReportTotal() (int, error) {
	return f.total, f.err
}

func newTestReportRouter(store ReportStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReportHandler(store)
	r.GET("/reports", h.GetReports)
	r.GET("/reports/latest", h.GetLatestReport)
	return r
}

func TestGetLatestReport(t *testing.T) {
	store := &fakeReportStore{
		latest: &model.ResearchReport{
			ID:            3,
			Topic:         "USD outlook",
			Questions:     []string{"What did the Fed signal?"},
			Report:        "# USD outlook\n\nSteady.",
			CitationCount: 4,
			ModelUsed:     "qwen/qwen3-32b-fp8",
			CreatedAt:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	r := newTestReportRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ReportResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, int64(3), res.ID)
	assert.Equal(t, "USD outlook", res.Topic)
	assert.Equal(t, 4, res.CitationCount)
	assert.Equal(t, 1, len(res.Questions))
}

func TestGetLatestReport_None(t *testing.T) {
	store := &fakeReportStore{}

	r := newTestReportRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports/latest", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReports(t *testing.T) {
	store := &fakeReportStore{
		reports: []model.ResearchReport{
			{ID: 2, Topic: "EUR outlook"},
			{ID: 1, Topic: "JPY outlook"},
		},
		total: 5,
	}

	r := newTestReportRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports?limit=2", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res ReportsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 2, len(res.Reports))
	assert.Equal(t, 5, res.Total)
	assert.Equal(t, 2, res.Limit)
	assert.Equal(t, 0, res.Offset)
}

func TestGetReports_DBError(t *testing.T) {
	store := &fakeReportStore{err: errors.New("DB down")}

	r := newTestReportRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/reports", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
