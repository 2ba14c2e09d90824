package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"io.winapps.traveljournal/internal/apperr"
	models "io.winapps.traveljournal/internal/models/account"
)

type EntryRepository struct {
	pool *pgxpool.Pool
}

func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// FindEntries returns every entry in insertion order.
func (r *EntryRepository) FindEntries(ctx context.Context) ([]models.Entry, error) {
	query := `
		SELECT id, location, date, description, user_id, created_at
		FROM entries
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "Failed to list entries", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var entry models.Entry
		var description *string
		if err := rows.Scan(&entry.ID, &entry.Location, &entry.Date, &description, &entry.UserID, &entry.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.Storage, "Failed to scan entry", err)
		}
		if description != nil {
			entry.Description = *description
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "Failed to list entries", err)
	}
	return entries, nil
}

// FindEntryByID loads one entry.
func (r *EntryRepository) FindEntryByID(ctx context.Context, id int64) (*models.Entry, error) {
	query := `
		SELECT id, location, date, description, user_id, created_at
		FROM entries
		WHERE id = $1
	`
	var entry models.Entry
	var description *string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.Location, &entry.Date, &description, &entry.UserID, &entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Entry not found")
		}
		return nil, apperr.Wrap(apperr.Storage, "Failed to load entry", err)
	}
	if description != nil {
		entry.Description = *description
	}
	return &entry, nil
}

// CreateEntry inserts a new entry. userID is nil when the request carried no token.
func (r *EntryRepository) CreateEntry(ctx context.Context, location string, date time.Time, description string, userID *int64) (int64, error) {
	query := `
		INSERT INTO entries (location, date, description, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	var id int64
	err := r.pool.QueryRow(ctx, query, location, date, description, userID).Scan(&id)
	if err != nil {
		return 0, apperr.Wrap(apperr.Storage, "Failed to create entry", err)
	}
	return id, nil
}

// UpdateEntry writes the merged entry row back. The caller resolves partial
// fields against the current row first.
func (r *EntryRepository) UpdateEntry(ctx context.Context, entry *models.Entry) error {
	query := `
		UPDATE entries
		SET location = $1, date = $2, description = $3
		WHERE id = $4
	`
	tag, err := r.pool.Exec(ctx, query, entry.Location, entry.Date, entry.Description, entry.ID)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "Failed to update entry", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "Entry not found")
	}
	return nil
}

// DeleteEntry removes the entry row. Photos and tag links cascade at the
// schema level.
func (r *EntryRepository) DeleteEntry(ctx context.Context, id int64) error {
	query := `
		DELETE FROM entries
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "Failed to delete entry", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "Entry not found")
	}
	return nil
}
