package handlers

import (
	"context"
	"time"

	models "io.winapps.traveljournal/internal/models/account"
)

// Store interfaces are defined on the consumer side so tests can substitute
// in-memory fakes; internal/repository provides the pgx-backed implementations.

type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

type EntryStore interface {
	FindEntries(ctx context.Context) ([]models.Entry, error)
	FindEntryByID(ctx context.Context, id int64) (*models.Entry, error)
	CreateEntry(ctx context.Context, location string, date time.Time, description string, userID *int64) (int64, error)
	UpdateEntry(ctx context.Context, entry *models.Entry) error
	DeleteEntry(ctx context.Context, id int64) error
}

type PhotoStore interface {
	FindPhotosByEntry(ctx context.Context, entryID int64) ([]models.Photo, error)
	CreatePhoto(ctx context.Context, entryID int64, url string) (*models.Photo, error)
	DeletePhoto(ctx context.Context, entryID, photoID int64) error
}

type TagStore interface {
	FindTags(ctx context.Context) ([]models.Tag, error)
	FindTagsByEntry(ctx context.Context, entryID int64) ([]models.Tag, error)
	FindTagByID(ctx context.Context, id int64) (*models.Tag, error)
	CreateTag(ctx context.Context, name string) (int64, error)
	DeleteTag(ctx context.Context, id int64) error
	AttachTag(ctx context.Context, entryID, tagID int64) error
	DetachTag(ctx context.Context, entryID, tagID int64) error
}
