package repository

import (
	"database/sql"
	"encoding/json"

	"fxpulse/internal/model"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) SaveReport(report *model.ResearchReport) error {
	questions, err := json.Marshal(report.Questions)
	if err != nil {
		return err
	}

	return r.db.QueryRow(`
		INSERT INTO research_report(topic, questions, report, citation_count, model_used)
		VALUES($1, $2, $3, $4, $5)
		RETURNING id
	`, report.Topic, questions, report.Report, report.CitationCount, report.ModelUsed).Scan(&report.ID)
}

func (r *ReportRepository) GetLatestReport() (*model.ResearchReport, error) {
	var report model.ResearchReport
	var questionsJSON []byte

	err := r.db.QueryRow(`
		SELECT id, topic, questions, report, citation_count, model_used, created_at
		FROM research_report
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&report.ID, &report.Topic, &questionsJSON, &report.Report, &report.CitationCount, &report.ModelUsed, &report.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(questionsJSON, &report.Questions); err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *ReportRepository) GetReports(limit, offset int) ([]model.ResearchReport, error) {
	rows, err := r.db.Query(`
		SELECT id, topic, questions, report, citation_count, model_used, created_at
		FROM research_report
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.ResearchReport
	for rows.Next() {
		var report model.ResearchReport
		var questionsJSON []byte
		err := rows.Scan(&report.ID, &report.Topic, &questionsJSON, &report.Report, &report.CitationCount, &report.ModelUsed, &report.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questionsJSON, &report.Questions); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *ReportRepository) GetReportTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM research_report`).Scan(&total)
	return total, err
}
