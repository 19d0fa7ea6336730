package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"fxpulse/db"
	"fxpulse/internal/config"
	"fxpulse/internal/model"
	"fxpulse/internal/repository"
	"fxpulse/internal/score"
	"fxpulse/pkg/llm"
)

const maxRetries = 3

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	var scorer llm.Scorer
	if key := os.Getenv("NOVITA_API_KEY"); key != "" {
		scorer = llm.NewOpenAIClient(key, cfg.Scorer.BaseURL, cfg.Scorer.Model)
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		scorer = llm.NewAnthropicClient(key)
	} else {
		slog.Error("no scoring API key configured")
		return
	}

	articleRepository := repository.NewArticleRepository(db.DB)
	bucketRepository := repository.NewBucketRepository(db.DB, cfg.Decay.ScoreConfig())

	workers := cfg.Scorer.Workers
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			runWorker(worker, articleRepository, bucketRepository, scorer)
		}(i)
	}
	wg.Wait()
}

func runWorker(worker int, articles *repository.ArticleRepository, buckets *repository.BucketRepository, scorer llm.Scorer) {
	for {
		raw, err := db.PopFromQueue(db.ScoreQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "worker", worker, "error", err)
			return
		}

		articleID, err := uuid.Parse(raw)
		if err != nil {
			slog.Error("invalid article id in queue", "worker", worker, "id", raw, "error", err)
			continue
		}

		scoreArticle(worker, articleID, articles, buckets, scorer)
	}
}

func scoreArticle(worker int, articleID uuid.UUID, articles *repository.ArticleRepository, buckets *repository.BucketRepository, scorer llm.Scorer) {
	errorCount, err := articles.GetErrorCount(articleID)
	if err != nil {
		slog.Error("error getting error count", "worker", worker, "error", err, "article_id", articleID)
		return
	}

	if errorCount >= maxRetries {
		slog.Warn("article exceeded max retries, marking as failed", "article_id", articleID, "error_count", errorCount)
		articles.UpdateStatus(articleID, model.StatusFailed)
		db.PushToQueue(db.DeadLetterKey, articleID.String())
		return
	}

	article, err := articles.GetArticleByID(articleID)
	if err != nil {
		slog.Error("error getting article from DB", "worker", worker, "error", err, "article_id", articleID)
		return
	}

	if article == nil {
		slog.Warn("article not found in DB", "article_id", articleID)
		return
	}

	input := llm.ScoreInput{
		Headline:  article.Headline,
		Text:      article.RawText,
		Source:    article.Source,
		Timestamp: article.PublishedAt,
	}

	result, err := scorer.Score(input)
	if err != nil {
		slog.Error("error scoring article", "worker", worker, "error", err, "article_id", articleID)

		articles.SaveError(articleID, err.Error(), "llm_error")

		db.PushToQueue(db.ScoreQueueKey, articleID.String())

		time.Sleep(5 * time.Second)
		return
	}

	if !model.G8Currencies[result.PrimaryCurrency] {
		slog.Warn("LLM returned non-G8 primary currency, marking as failed", "currency", result.PrimaryCurrency, "article_id", articleID)
		articles.SaveError(articleID, "primary currency "+result.PrimaryCurrency+" not in G8", "validation_error")
		articles.UpdateStatus(articleID, model.StatusFailed)
		return
	}

	valid, rejected := score.FilterMetrics(result.Metrics)
	for _, name := range rejected {
		slog.Warn("rejected metric from LLM output", "article_id", articleID, "metric", name, "value", result.Metrics[name])
	}

	if len(valid) == 0 {
		slog.Warn("no valid metrics in LLM output, marking as failed", "article_id", articleID)
		articles.SaveError(articleID, "no valid metrics in LLM output", "validation_error")
		articles.UpdateStatus(articleID, model.StatusFailed)
		return
	}

	scored := model.ScoredArticle{
		ArticleID:       articleID,
		Summary:         result.Summary,
		PrimaryCurrency: result.PrimaryCurrency,
		Symbols:         result.AffectedPairs,
		Metrics:         valid,
		ModelUsed:       result.ModelUsed,
		PromptVersion:   result.PromptVersion,
		ScoredAt:        time.Now().UTC(),
	}

	err = articles.SaveScoredAndComplete(&scored)
	if err != nil {
		slog.Error("error saving scored article", "worker", worker, "error", err, "article_id", articleID)
		return
	}

	err = buckets.Fold(context.Background(), result.PrimaryCurrency, article.PublishedAt, valid)
	if err != nil {
		slog.Error("error folding scores into rollup", "worker", worker, "error", err, "article_id", articleID)
		return
	}

	slog.Info("article scored successfully", "article_id", articleID, "currency", result.PrimaryCurrency, "worker", worker)
}
