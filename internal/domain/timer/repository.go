package timer

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository interface {
	// InTx runs fn against a repository bound to one transaction. The
	// toggle read-then-write sequence must live inside a single call.
	InTx(ctx context.Context, fn func(Repository) error) error

	// FindOpen returns the user's open entry, newest id first in case
	// of anomalies, or nil when there is none.
	FindOpen(ctx context.Context, userID int64) (*TimeEntry, error)

	// Create inserts a new open entry. A unique violation on the open
	// index surfaces as ErrToggleConflict.
	Create(ctx context.Context, e *TimeEntry) error

	// CloseOpen closes entry id only if it is still open and reports
	// whether this call performed the close.
	CloseOpen(ctx context.Context, id int64, endAt time.Time, endType string, seconds int64) (bool, error)

	GetForUser(ctx context.Context, userID, id int64) (*TimeEntry, error)
	ListForUser(ctx context.Context, userID int64, from, to time.Time) ([]*TimeEntry, error)
	UpdateNotes(ctx context.Context, userID, id int64, notes string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) InTx(ctx context.Context, fn func(Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}

func (r *repository) FindOpen(ctx context.Context, userID int64) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND end_at IS NULL", userID).
		Order("id DESC").
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	err := r.db.WithContext(ctx).Create(e).Error
	if isUniqueViolation(err) {
		return ErrToggleConflict
	}
	return err
}

func (r *repository) CloseOpen(ctx context.Context, id int64, endAt time.Time, endType string, seconds int64) (bool, error) {
	// Guarded update: the end_at IS NULL predicate makes this a
	// compare-and-set, so two concurrent closers cannot both win.
	res := r.db.WithContext(ctx).Model(&TimeEntry{}).
		Where("id = ? AND end_at IS NULL", id).
		Updates(map[string]any{
			"end_at":   endAt,
			"end_type": endType,
			"seconds":  seconds,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) GetForUser(ctx context.Context, userID, id int64) (*TimeEntry, error) {
	var e TimeEntry
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListForUser(ctx context.Context, userID int64, from, to time.Time) ([]*TimeEntry, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !from.IsZero() {
		q = q.Where("start_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("start_at < ?", to)
	}
	var entries []*TimeEntry
	err := q.Order("start_at DESC").Find(&entries).Error
	return entries, err
}

func (r *repository) UpdateNotes(ctx context.Context, userID, id int64, notes string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&TimeEntry{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("notes", notes)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// modernc sqlite reports constraint violations by message only.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
