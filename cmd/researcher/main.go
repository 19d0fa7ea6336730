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
	"fxpulse/pkg/research"
)

const defaultTopic = "G8 currency outlook for the coming week"

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	novitaKey := os.Getenv("NOVITA_API_KEY")
	if novitaKey == "" {
		slog.Error("NOVITA_API_KEY not configured")
		return
	}

	parallelKey := os.Getenv("PARALLEL_API_KEY")
	if parallelKey == "" {
		slog.Error("PARALLEL_API_KEY not configured")
		return
	}

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	topic := os.Getenv("RESEARCH_TOPIC")
	if topic == "" {
		topic = defaultTopic
	}

	generator := research.NewQuestionGenerator(novitaKey, cfg.Scorer.BaseURL, cfg.Scorer.Model)
	questions := generator.Generate(topic, cfg.Research.Questions)
	slog.Info("research questions generated", "topic", topic, "count", len(questions))

	deep := research.NewDeepClient(parallelKey, research.DeepOptions{
		Processor:    cfg.Research.Processor,
		PollInterval: time.Duration(cfg.Research.PollSeconds) * time.Second,
		Timeout:      time.Duration(cfg.Research.TimeoutSeconds) * time.Second,
	})

	runner := research.NewRunner(deep, cfg.Research.MaxWorkers)
	findings := runner.ResearchAll(questions)

	var failed int
	for _, f := range findings {
		if f.Err != nil {
			slog.Warn("research question failed", "question", f.Question, "error", f.Err)
			failed++
		}
	}
	if failed == len(findings) {
		slog.Error("all research questions failed, no report written")
		return
	}

	synthesizer := research.NewSynthesizer(novitaKey, cfg.Scorer.BaseURL, cfg.Scorer.Model)
	reportText, err := synthesizer.Synthesize(topic, findings)
	if err != nil {
		log.Fatalf("error synthesizing report: %v", err)
	}

	report := model.ResearchReport{
		Topic:         topic,
		Questions:     questions,
		Report:        reportText,
		CitationCount: research.CitationCount(findings),
		ModelUsed:     cfg.Scorer.Model,
		CreatedAt:     time.Now().UTC(),
	}

	reportRepo := repository.NewReportRepository(db.DB)
	err = reportRepo.SaveReport(&report)
	if err != nil {
		log.Fatalf("error saving report: %v", err)
	}

	slog.Info("research report saved", "report_id", report.ID, "citations", report.CitationCount, "failed_questions", failed)
}
