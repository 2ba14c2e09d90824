package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"io.winapps.traveljournal/internal/apperr"
	models "io.winapps.traveljournal/internal/models/account"
)

type PhotoRepository struct {
	pool *pgxpool.Pool
}

func NewPhotoRepository(pool *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

// FindPhotosByEntry returns the photos owned by an entry in insertion order.
func (r *PhotoRepository) FindPhotosByEntry(ctx context.Context, entryID int64) ([]models.Photo, error) {
	query := `
		SELECT id, url, entry_id, uploaded_at
		FROM photos
		WHERE entry_id = $1
		ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "Failed to list photos", err)
	}
	defer rows.Close()

	photos := []models.Photo{}
	for rows.Next() {
		var photo models.Photo
		if err := rows.Scan(&photo.ID, &photo.URL, &photo.EntryID, &photo.UploadedAt); err != nil {
			return nil, apperr.Wrap(apperr.Storage, "Failed to scan photo", err)
		}
		photos = append(photos, photo)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "Failed to list photos", err)
	}
	return photos, nil
}

// CreatePhoto inserts a photo under the given entry inside one transaction,
// rolled back on failure.
func (r *PhotoRepository) CreatePhoto(ctx context.Context, entryID int64, url string) (*models.Photo, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "Failed to start transaction", err)
	}
	defer tx.Rollback(ctx)

	photo := models.Photo{
		URL:        url,
		EntryID:    entryID,
		UploadedAt: time.Now(),
	}

	query := `
		INSERT INTO photos (url, entry_id, uploaded_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := tx.QueryRow(ctx, query, photo.URL, photo.EntryID, photo.UploadedAt).Scan(&photo.ID); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "Failed to save photo", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "Failed to save photo", err)
	}
	return &photo, nil
}

// DeletePhoto removes a photo only when it belongs to the given entry, so a
// photo cannot be deleted through another entry's path.
func (r *PhotoRepository) DeletePhoto(ctx context.Context, entryID, photoID int64) error {
	query := `
		DELETE FROM photos
		WHERE id = $1 AND entry_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, photoID, entryID)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "Failed to delete photo", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "Photo not found")
	}
	return nil
}
