package handler

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fxpulse/internal/score"
)

// ScoreReader is the read side of the aggregation core, as consumed by
// the API.
type ScoreReader interface {
	Decayed(ctx context.Context, symbol, metric string, lookback time.Duration) (score.Result, error)
	Raw(ctx context.Context, symbol, metric string, lookback time.Duration) (score.Result, error)
}

type ScoreHandler struct {
	scores  ScoreReader
	symbols []string
}

// NewScoreHandler serves decayed and raw sentiment scores for the
// given symbols, in the given order.
func NewScoreHandler(scores ScoreReader, symbols []string) *ScoreHandler {
	return &ScoreHandler{scores: scores, symbols: symbols}
}

func (h *ScoreHandler) GetScores(c *gin.Context) {
	lookbackHours := getQueryBoundedInt(c, "lookback_hours", 168, 1, 720)
	lookback := time.Duration(lookbackHours) * time.Hour

	results := make([]CurrencyScoreResponse, 0, len(h.symbols))
	for _, symbol := range h.symbols {
		result, err := h.scores.Decayed(c.Request.Context(), symbol, score.MetricSentiment, lookback)
		if errors.Is(err, score.ErrNoData) {
			continue
		}
		if err != nil {
			slog.Error("error computing decayed score", "symbol", symbol, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Score computation error"})
			return
		}

		results = append(results, CurrencyScoreResponse{
			Symbol:       symbol,
			DecayedScore: roundTo(result.Score, 4),
			ArticleCount: result.ArticleCount,
			Timestamp:    result.LatestHour.Format(time.RFC3339),
		})
	}

	c.JSON(http.StatusOK, ScoresResponse{Scores: results, LookbackHours: lookbackHours})
}

func (h *ScoreHandler) GetScore(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("currency"))
	if !h.knownSymbol(symbol) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown currency " + symbol})
		return
	}

	lookbackHours := getQueryBoundedInt(c, "lookback_hours", 168, 1, 720)
	lookback := time.Duration(lookbackHours) * time.Hour

	result, err := h.scores.Decayed(c.Request.Context(), symbol, score.MetricSentiment, lookback)
	if errors.Is(err, score.ErrNoData) {
		// distinct from a computed zero score
		c.JSON(http.StatusNotFound, gin.H{"error": "No scores for " + symbol})
		return
	}
	if err != nil {
		slog.Error("error computing decayed score", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Score computation error"})
		return
	}

	c.JSON(http.StatusOK, CurrencyScoreResponse{
		Symbol:       symbol,
		DecayedScore: roundTo(result.Score, 4),
		ArticleCount: result.ArticleCount,
		Timestamp:    result.LatestHour.Format(time.RFC3339),
	})
}

func (h *ScoreHandler) GetRawAverages(c *gin.Context) {
	hours := getQueryBoundedInt(c, "hours", 24, 1, 168)
	lookback := time.Duration(hours) * time.Hour

	results := make([]RawAverageResponse, 0, len(h.symbols))
	for _, symbol := range h.symbols {
		result, err := h.scores.Raw(c.Request.Context(), symbol, score.MetricSentiment, lookback)
		if errors.Is(err, score.ErrNoData) {
			continue
		}
		if err != nil {
			slog.Error("error computing raw average", "symbol", symbol, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Score computation error"})
			return
		}

		results = append(results, RawAverageResponse{
			Symbol:       symbol,
			Average:      roundTo(result.Score, 4),
			ArticleCount: result.ArticleCount,
		})
	}

	c.JSON(http.StatusOK, RawAveragesResponse{Scores: results, Hours: hours})
}

func (h *ScoreHandler) knownSymbol(symbol string) bool {
	for _, s := range h.symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
