package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitPostgres initializes and returns a PostgreSQL connection pool
func InitPostgres(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Set connection pool settings
	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30
	config.HealthCheckPeriod = time.Minute * 5

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Create tables if they don't exist
	if err := createTables(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pool, nil
}

// createTables creates all required tables if they don't exist
func createTables(ctx context.Context, pool *pgxpool.Pool) error {
	// Users table - registered accounts; password_hash holds the bcrypt digest,
	// never the plaintext
	usersTable := `
		CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(120) UNIQUE NOT NULL,
			password_hash VARCHAR(128) NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Entries table - journal entries; user_id is NULL for entries created
	// without a token
	entriesTable := `
		CREATE TABLE IF NOT EXISTS entries (
			id BIGSERIAL PRIMARY KEY,
			location VARCHAR(100) NOT NULL,
			date TIMESTAMP NOT NULL,
			description TEXT,
			user_id BIGINT REFERENCES users(id),
			created_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Photos table - URL references to externally hosted media; rows follow
	// their entry on delete
	photosTable := `
		CREATE TABLE IF NOT EXISTS photos (
			id BIGSERIAL PRIMARY KEY,
			url VARCHAR(200) NOT NULL,
			entry_id BIGINT NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
			uploaded_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Tags table - user-defined labels, unique by name
	tagsTable := `
		CREATE TABLE IF NOT EXISTS tags (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(50) UNIQUE NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Entry-tag join table - each (entry, tag) pair at most once
	entryTagsTable := `
		CREATE TABLE IF NOT EXISTS entry_tags (
			entry_id BIGINT NOT NULL REFERENCES entries(id) ON DELETE CASCADE,
			tag_id BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (entry_id, tag_id)
		);
	`

	// Create indexes for better performance
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_entries_user_id ON entries(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_photos_entry_id ON photos(entry_id);`,
		`CREATE INDEX IF NOT EXISTS idx_entry_tags_tag_id ON entry_tags(tag_id);`,
	}

	// Execute table creation statements
	tables := []string{usersTable, entriesTable, photosTable, tagsTable, entryTagsTable}

	for _, table := range tables {
		if _, err := pool.Exec(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Execute index creation statements
	for _, index := range indexes {
		if _, err := pool.Exec(ctx, index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
