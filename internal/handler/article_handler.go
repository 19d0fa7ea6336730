package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fxpulse/internal/model"
)

type ArticleStore interface {
	GetScoredFeed(hours, limit int) ([]model.ScoredFeedItem, error)
	GetArticleTotal() (int, error)
}

type ArticleHandler struct {
	repository ArticleStore
}

func NewArticleHandler(repository ArticleStore) *ArticleHandler {
	return &ArticleHandler{repository: repository}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	hours := getQueryBoundedInt(c, "hours", 24, 1, 168)
	limit := getQueryBoundedInt(c, "limit", 20, 1, 100)

	items, err := h.repository.GetScoredFeed(hours, limit)
	if err != nil {
		slog.Error("error fetching articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	articles := make([]ArticleResponse, 0, len(items))
	for _, item := range items {
		articles = append(articles, ArticleResponse{
			ID:              item.ID.String(),
			URL:             item.URL,
			Headline:        item.Headline,
			Summary:         item.Summary,
			PublishedAt:     item.PublishedAt.Format(time.RFC3339),
			PrimaryCurrency: item.PrimaryCurrency,
			Symbols:         item.Symbols,
			Metrics:         item.Metrics,
		})
	}

	c.JSON(http.StatusOK, ArticlesResponse{Articles: articles, Count: len(articles)})
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetArticleTotal()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)

	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}

	return parsed
}

func getQueryBoundedInt(c *gin.Context, name string, defaultValue, min, max int) int {
	v := getQueryInt(name, defaultValue, c)

	if v < min {
		slog.Warn("query parameter below min, using default", "param", name, "value", v, "default", defaultValue)
		return defaultValue
	}

	if v > max {
		slog.Warn("query parameter exceeds max, clamping", "param", name, "value", v, "max", max)
		return max
	}

	return v
}
