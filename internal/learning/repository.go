package learning

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/retention/internal/srs"
)

//go:generate mockgen -source=repository.go -destination=../mocks/learning/mock_repository.go -package=mock_learning

// ReviewLogRepository defines operations for managing review logs.
type ReviewLogRepository interface {
	Create(ctx context.Context, log *ReviewLog) error
	// FindByItem returns the logs of itemID, oldest first. No logs is an empty slice.
	FindByItem(ctx context.Context, itemID string) ([]ReviewLog, error)
}

const reviewLogColumns = "item_id, owner_id, quality, response_time_ms, reviewed_at, interval_days, easiness, repetitions, reported_at"

// DBReviewLogRepository implements ReviewLogRepository on MySQL, PostgreSQL or SQLite.
type DBReviewLogRepository struct {
	db *sqlx.DB
}

// NewDBReviewLogRepository creates a new DBReviewLogRepository.
func NewDBReviewLogRepository(db *sqlx.DB) *DBReviewLogRepository {
	return &DBReviewLogRepository{db: db}
}

// Create inserts a new review log and sets its ID.
func (r *DBReviewLogRepository) Create(ctx context.Context, log *ReviewLog) error {
	query := `INSERT INTO review_logs (` + reviewLogColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	args := []any{
		log.ItemID, log.OwnerID, log.Quality, log.ResponseTimeMs,
		log.ReviewedAt.UTC(), log.IntervalDays, log.Easiness, log.Repetitions,
		reportedAtValue(log),
	}

	// pgx has no LastInsertId
	if r.db.DriverName() == "pgx" {
		if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query+" RETURNING id"), args...).Scan(&log.ID); err != nil {
			return fmt.Errorf("%w: db.QueryRowxContext(insert review_log) > %w", srs.ErrStorage, err)
		}
		return nil
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("%w: db.ExecContext(insert review_log) > %w", srs.ErrStorage, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: result.LastInsertId() > %w", srs.ErrStorage, err)
	}
	log.ID = id
	return nil
}

// FindByItem returns the logs of itemID, oldest first.
func (r *DBReviewLogRepository) FindByItem(ctx context.Context, itemID string) ([]ReviewLog, error) {
	logs := []ReviewLog{}
	if err := r.db.SelectContext(ctx, &logs,
		r.db.Rebind("SELECT id, "+reviewLogColumns+" FROM review_logs WHERE item_id = ? ORDER BY reviewed_at, id"),
		itemID); err != nil {
		return nil, fmt.Errorf("%w: db.SelectContext(review_logs by item) > %w", srs.ErrStorage, err)
	}
	for i := range logs {
		logs[i].ReviewedAt = logs[i].ReviewedAt.UTC()
		if logs[i].ReportedAt != nil {
			reported := logs[i].ReportedAt.UTC()
			logs[i].ReportedAt = &reported
		}
	}
	return logs, nil
}

func reportedAtValue(log *ReviewLog) sql.NullTime {
	if log.ReportedAt == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: log.ReportedAt.UTC(), Valid: true}
}
