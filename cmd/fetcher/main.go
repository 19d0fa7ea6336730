package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"fxpulse/db"
	"fxpulse/internal/config"
	"fxpulse/internal/model"
	"fxpulse/internal/repository"
	"fxpulse/internal/score"
	"fxpulse/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	var clients []news.NewsClient
	if key := os.Getenv("TAVILY_API_KEY"); key != "" {
		clients = append(clients, news.NewTavilyClient(key, news.TavilyOptions{
			MaxResults:     cfg.Search.MaxResults,
			Hours:          cfg.Search.Hours,
			IncludeDomains: cfg.Search.IncludeDomains,
			ExcludeDomains: cfg.Search.ExcludeDomains,
		}))
	}
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		clients = append(clients, news.NewFinnHubClient(key))
	}

	if len(clients) == 0 {
		slog.Error("no news source API keys configured")
		return
	}

	repo := repository.NewArticleRepository(db.DB)

	for _, client := range clients {
		source := client.Name()

		queries := cfg.Search.Queries
		if source == "FinnHub" {
			// finnhub serves a single forex feed, queries do not apply
			queries = []string{""}
		}

		var saved, duplicated, errored int

		for _, query := range queries {
			found, err := client.Search(query)
			if err != nil {
				slog.Error("error searching news", "source", source, "query", query, "error", err)
				errored++
				continue
			}

			for _, a := range found {
				id := score.DeriveID(a.URL)

				exists, err := repo.HasArticle(id)
				if err != nil {
					slog.Error("error checking for duplicate", "source", source, "url", a.URL, "error", err)
					errored++
					continue
				}
				if exists {
					slog.Info("duplicate article skipped", "source", source, "url", a.URL)
					duplicated++
					continue
				}

				article := model.Article{
					ID:          id,
					URL:         a.URL,
					Headline:    a.Headline,
					RawText:     a.RawText,
					Source:      a.Source,
					Query:       query,
					PublishedAt: a.PublishedAt,
					FetchedAt:   time.Now().UTC(),
					Status:      model.StatusPending,
				}

				inserted, err := repo.SaveArticle(&article)
				if err != nil {
					slog.Error("error saving article", "source", source, "url", a.URL, "error", err)
					errored++
					continue
				}

				if !inserted {
					// lost the race to another fetcher, same outcome as the pre-check
					slog.Info("duplicate article skipped", "source", source, "url", a.URL)
					duplicated++
					continue
				}

				saved++

				err = db.PushToQueue(db.ScoreQueueKey, article.ID.String())
				if err != nil {
					slog.Error("error pushing to Redis queue", "source", source, "error", err, "article_id", article.ID)
					errored++
				}
			}
		}

		slog.Info("fetch complete", "source", source, "saved", saved, "duplicated", duplicated, "errors", errored)
	}
}
