package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"io.winapps.traveljournal/internal/apperr"
	models "io.winapps.traveljournal/internal/models/account"
)

type TagRepository struct {
	pool *pgxpool.Pool
}

func NewTagRepository(pool *pgxpool.Pool) *TagRepository {
	return &TagRepository{pool: pool}
}

// FindTags returns every tag in insertion order.
func (r *TagRepository) FindTags(ctx context.Context) ([]models.Tag, error) {
	query := `
		SELECT id, name, created_at
		FROM tags
		ORDER BY id
	`
	return r.scanTags(ctx, query)
}

// FindTagsByEntry returns the tags attached to an entry.
func (r *TagRepository) FindTagsByEntry(ctx context.Context, entryID int64) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name, t.created_at
		FROM tags t
		JOIN entry_tags et ON et.tag_id = t.id
		WHERE et.entry_id = $1
		ORDER BY t.id
	`
	return r.scanTags(ctx, query, entryID)
}

func (r *TagRepository) scanTags(ctx context.Context, query string, args ...any) ([]models.Tag, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.Storage, "Failed to list tags", err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.Storage, "Failed to scan tag", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.Storage, "Failed to list tags", err)
	}
	return tags, nil
}

// FindTagByID loads one tag.
func (r *TagRepository) FindTagByID(ctx context.Context, id int64) (*models.Tag, error) {
	query := `
		SELECT id, name, created_at
		FROM tags
		WHERE id = $1
	`
	var tag models.Tag
	err := r.pool.QueryRow(ctx, query, id).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Tag not found")
		}
		return nil, apperr.Wrap(apperr.Storage, "Failed to load tag", err)
	}
	return &tag, nil
}

// CreateTag inserts a tag; a name collision surfaces as a conflict error.
func (r *TagRepository) CreateTag(ctx context.Context, name string) (int64, error) {
	query := `
		INSERT INTO tags (name)
		VALUES ($1)
		RETURNING id
	`
	var id int64
	err := r.pool.QueryRow(ctx, query, name).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, apperr.Wrap(apperr.Conflict, "Tag already exists", err)
		}
		return 0, apperr.Wrap(apperr.Storage, "Failed to create tag", err)
	}
	return id, nil
}

// DeleteTag removes a tag; entry links cascade at the schema level.
func (r *TagRepository) DeleteTag(ctx context.Context, id int64) error {
	query := `
		DELETE FROM tags
		WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "Failed to delete tag", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "Tag not found")
	}
	return nil
}

// AttachTag links a tag to an entry. Attaching an already-attached tag is a
// no-op, keeping each (entry, tag) pair unique.
func (r *TagRepository) AttachTag(ctx context.Context, entryID, tagID int64) error {
	query := `
		INSERT INTO entry_tags (entry_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (entry_id, tag_id) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, entryID, tagID); err != nil {
		return apperr.Wrap(apperr.Storage, "Failed to attach tag", err)
	}
	return nil
}

// DetachTag removes the link between an entry and a tag.
func (r *TagRepository) DetachTag(ctx context.Context, entryID, tagID int64) error {
	query := `
		DELETE FROM entry_tags
		WHERE entry_id = $1 AND tag_id = $2
	`
	tag, err := r.pool.Exec(ctx, query, entryID, tagID)
	if err != nil {
		return apperr.Wrap(apperr.Storage, "Failed to detach tag", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.NotFound, "Tag is not attached to this entry")
	}
	return nil
}
