package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"fxpulse/internal/model"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// HasArticle is the dedup gate. An error here means uniqueness could
// not be verified; callers must fail the article closed rather than
// guess.
func (r *ArticleRepository) HasArticle(id uuid.UUID) (bool, error) {
	var one int
	err := r.db.QueryRow(`
		SELECT 1 FROM article WHERE id = $1
	`, id).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// SaveArticle inserts an article under its content-addressed ID.
// Returns false when the ID already exists: the conflicting insert is
// ignored and no second logical row is created.
func (r *ArticleRepository) SaveArticle(article *model.Article) (bool, error) {
	res, err := r.db.Exec(`
		INSERT INTO article(id, url, headline, raw_text, source, query, published_at, status)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`, article.ID, article.URL, article.Headline, article.RawText, article.Source, article.Query, article.PublishedAt, model.StatusPending)

	if err != nil {
		return false, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return inserted > 0, nil
}

func (r *ArticleRepository) GetArticleByID(id uuid.UUID) (*model.Article, error) {
	var a model.Article
	err := r.db.QueryRow(`
		SELECT id, url, headline, raw_text, source, query, published_at, fetched_at, status
		FROM article
		WHERE id = $1
	`, id).Scan(&a.ID, &a.URL, &a.Headline, &a.RawText, &a.Source, &a.Query, &a.PublishedAt, &a.FetchedAt, &a.Status)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &a, nil
}

func (r *ArticleRepository) UpdateStatus(id uuid.UUID, status string) error {
	_, err := r.db.Exec(`
		UPDATE article SET status = $1 WHERE id = $2
	`, status, id)
	return err
}

// SaveScoredAndComplete stores the scoring result and marks the
// article completed in one transaction.
func (r *ArticleRepository) SaveScoredAndComplete(scored *model.ScoredArticle) error {
	metrics, err := json.Marshal(scored.Metrics)
	if err != nil {
		return err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO scored_article(article_id, summary, primary_currency, symbols, metrics, model_used, prompt_version, scored_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
	`, scored.ArticleID, scored.Summary, scored.PrimaryCurrency, pq.Array(scored.Symbols), metrics, scored.ModelUsed, scored.PromptVersion, scored.ScoredAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		UPDATE article SET status = $1 WHERE id = $2
	`, model.StatusCompleted, scored.ArticleID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ArticleRepository) SaveError(articleID uuid.UUID, errMsg string, errType string) error {
	_, err := r.db.Exec(`
		INSERT INTO processing_error(article_id, error_message, error_type)
		VALUES($1, $2, $3)
	`, articleID, errMsg, errType)

	return err
}

func (r *ArticleRepository) GetErrorCount(id uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM processing_error
		WHERE article_id = $1
	`, id).Scan(&count)

	return count, err
}

// GetScoredFeed returns recently scored articles, newest first.
func (r *ArticleRepository) GetScoredFeed(hours int, limit int) ([]model.ScoredFeedItem, error) {
	rows, err := r.db.Query(`
		SELECT a.id, a.url, a.headline, a.published_at,
			s.summary, s.primary_currency, s.symbols, s.metrics
		FROM scored_article s
		JOIN article a ON a.id = s.article_id
		WHERE a.published_at >= now() - ($1 || ' hours')::interval
		ORDER BY a.published_at DESC
		LIMIT $2
	`, hours, limit)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.ScoredFeedItem
	for rows.Next() {
		var item model.ScoredFeedItem
		var metricsJSON []byte
		err := rows.Scan(&item.ID, &item.URL, &item.Headline, &item.PublishedAt,
			&item.Summary, &item.PrimaryCurrency, pq.Array(&item.Symbols), &metricsJSON)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(metricsJSON, &item.Metrics); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *ArticleRepository) GetArticleTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM article
	`).Scan(&total)
	return total, err
}
