package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/retention/internal/srs"
)

const itemColumns = "item_id, owner_id, content_ref, easiness, interval_days, repetitions, next_due, last_reviewed, revision"

// itemRow is the srs_items table layout.
type itemRow struct {
	ID           string       `db:"item_id"`
	OwnerID      string       `db:"owner_id"`
	ContentRef   string       `db:"content_ref"`
	Easiness     float64      `db:"easiness"`
	IntervalDays int          `db:"interval_days"`
	Repetitions  int          `db:"repetitions"`
	NextDue      time.Time    `db:"next_due"`
	LastReviewed sql.NullTime `db:"last_reviewed"`
	Revision     int64        `db:"revision"`
}

func (row itemRow) toItem() srs.Item {
	it := srs.Item{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		ContentRef:  row.ContentRef,
		Easiness:    row.Easiness,
		Interval:    row.IntervalDays,
		Repetitions: row.Repetitions,
		NextDue:     row.NextDue.UTC(),
		Revision:    row.Revision,
	}
	if row.LastReviewed.Valid {
		reviewed := row.LastReviewed.Time.UTC()
		it.LastReviewed = &reviewed
	}
	return it
}

func lastReviewedValue(it *srs.Item) sql.NullTime {
	if it.LastReviewed == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: it.LastReviewed.UTC(), Valid: true}
}

// DBItemRepository implements ItemRepository on top of MySQL, SQLite or PostgreSQL.
type DBItemRepository struct {
	db *sqlx.DB
}

// NewDBItemRepository creates a new DBItemRepository.
func NewDBItemRepository(db *sqlx.DB) *DBItemRepository {
	return &DBItemRepository{db: db}
}

// Get returns the item with the given ID, or nil if not found.
func (r *DBItemRepository) Get(ctx context.Context, itemID string) (*srs.Item, error) {
	var row itemRow
	err := r.db.GetContext(ctx, &row,
		r.db.Rebind("SELECT "+itemColumns+" FROM srs_items WHERE item_id = ?"),
		itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: db.GetContext(srs_items) > %w", srs.ErrStorage, err)
	}
	it := row.toItem()
	return &it, nil
}

// Put inserts or conditionally updates the item and advances its revision.
func (r *DBItemRepository) Put(ctx context.Context, it *srs.Item) error {
	if it == nil {
		return fmt.Errorf("%w: cannot store nil item", srs.ErrInvalidArgument)
	}
	if it.Revision == 0 {
		return r.insert(ctx, it)
	}
	return r.update(ctx, it)
}

func (r *DBItemRepository) insert(ctx context.Context, it *srs.Item) error {
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO srs_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		it.ID, it.OwnerID, it.ContentRef, it.Easiness, it.Interval, it.Repetitions,
		it.NextDue.UTC(), lastReviewedValue(it), 1)
	if err != nil {
		// A duplicate key is a lost race with another writer, not an outage
		existing, getErr := r.Get(ctx, it.ID)
		if getErr == nil && existing != nil {
			return fmt.Errorf("%w: item %s already stored", srs.ErrConflict, it.ID)
		}
		return fmt.Errorf("%w: db.ExecContext(insert srs_item) > %w", srs.ErrStorage, err)
	}
	it.Revision = 1
	return nil
}

func (r *DBItemRepository) update(ctx context.Context, it *srs.Item) error {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE srs_items
		SET content_ref = ?, easiness = ?, interval_days = ?, repetitions = ?, next_due = ?, last_reviewed = ?, revision = ?
		WHERE item_id = ? AND revision = ?`),
		it.ContentRef, it.Easiness, it.Interval, it.Repetitions,
		it.NextDue.UTC(), lastReviewedValue(it), it.Revision+1,
		it.ID, it.Revision)
	if err != nil {
		return fmt.Errorf("%w: db.ExecContext(update srs_item) > %w", srs.ErrStorage, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: result.RowsAffected() > %w", srs.ErrStorage, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: item %s changed since revision %d", srs.ErrConflict, it.ID, it.Revision)
	}
	it.Revision++
	return nil
}

// ListByOwner returns all items owned by ownerID, ordered by ID.
func (r *DBItemRepository) ListByOwner(ctx context.Context, ownerID string) ([]srs.Item, error) {
	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows,
		r.db.Rebind("SELECT "+itemColumns+" FROM srs_items WHERE owner_id = ? ORDER BY item_id"),
		ownerID); err != nil {
		return nil, fmt.Errorf("%w: db.SelectContext(srs_items by owner) > %w", srs.ErrStorage, err)
	}
	return toItems(rows), nil
}

// ListDueByOwner returns at most limit items of ownerID due at now, oldest first.
func (r *DBItemRepository) ListDueByOwner(ctx context.Context, ownerID string, now time.Time, limit int) ([]srs.Item, error) {
	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows,
		r.db.Rebind(`SELECT `+itemColumns+` FROM srs_items
		WHERE owner_id = ? AND next_due <= ?
		ORDER BY next_due, item_id
		LIMIT ?`),
		ownerID, now.UTC(), limit); err != nil {
		return nil, fmt.Errorf("%w: db.SelectContext(due srs_items) > %w", srs.ErrStorage, err)
	}
	return toItems(rows), nil
}

func toItems(rows []itemRow) []srs.Item {
	items := make([]srs.Item, len(rows))
	for i, row := range rows {
		items[i] = row.toItem()
	}
	return items
}
