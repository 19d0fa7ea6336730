package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"fxpulse/db"
	"fxpulse/internal/config"
	"fxpulse/internal/handler"
	"fxpulse/internal/repository"
	"fxpulse/internal/score"
)

// g8Symbols fixes the response ordering for the score endpoints.
var g8Symbols = []string{"USD", "EUR", "JPY", "GBP", "AUD", "CAD", "CHF", "NZD"}

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

	scoreCfg := cfg.Decay.ScoreConfig()

	bucketRepo := repository.NewBucketRepository(db.DB, scoreCfg)
	scoreService := score.NewService(scoreCfg, bucketRepo, clockwork.NewRealClock())
	scoreHandler := handler.NewScoreHandler(scoreService, g8Symbols)

	articleRepo := repository.NewArticleRepository(db.DB)
	articleHandler := handler.NewArticleHandler(articleRepo)

	reportRepo := repository.NewReportRepository(db.DB)
	reportHandler := handler.NewReportHandler(reportRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/scores", scoreHandler.GetScores)
	r.GET("/scores/average", scoreHandler.GetRawAverages)
	r.GET("/scores/:currency", scoreHandler.GetScore)
	r.GET("/articles", articleHandler.GetArticles)
	r.GET("/reports", reportHandler.GetReports)
	r.GET("/reports/latest", reportHandler.GetLatestReport)
	r.GET("/health", articleHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
