package db

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	version int
	name    string
	stmts   []string
}

// migrations is the forward-only schema history. Entries are append-only;
// never edit an applied version.
var migrations = []migration{
	{
		version: 1,
		name:    "initial schema",
		stmts: []string{
			`CREATE TABLE users (
				id SERIAL PRIMARY KEY,
				username VARCHAR(100) NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				is_active BOOLEAN NOT NULL DEFAULT TRUE,
				short_biography TEXT NOT NULL DEFAULT '',
				birth_date DATE,
				country VARCHAR(100) NOT NULL DEFAULT '',
				city VARCHAR(100) NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE TABLE posts (
				id SERIAL PRIMARY KEY,
				user_id INTEGER NOT NULL REFERENCES users(id),
				title VARCHAR(100) NOT NULL,
				content TEXT,
				date_published TIMESTAMPTZ NOT NULL DEFAULT now()
			)`,
			`CREATE INDEX idx_posts_user_id ON posts (user_id)`,
			`CREATE INDEX idx_posts_date_published ON posts (date_published DESC)`,
			`CREATE TABLE interests (
				id SERIAL PRIMARY KEY,
				name VARCHAR(100) NOT NULL UNIQUE
			)`,
			`CREATE TABLE user_interests (
				user_id INTEGER NOT NULL REFERENCES users(id),
				interest_id INTEGER NOT NULL REFERENCES interests(id),
				PRIMARY KEY (user_id, interest_id)
			)`,
			`CREATE TABLE subscriptions (
				subscriber_id INTEGER NOT NULL REFERENCES users(id),
				subscription_id INTEGER NOT NULL REFERENCES users(id),
				PRIMARY KEY (subscriber_id, subscription_id)
			)`,
		},
	},
	{
		version: 2,
		name:    "post content rework",
		stmts: []string{
			`ALTER TABLE posts ADD COLUMN post_content VARCHAR(1000)`,
			`UPDATE posts SET post_content = LEFT(content, 1000)`,
			`ALTER TABLE posts DROP COLUMN content`,
		},
	},
}

// Migrate applies any pending migrations, recording each in
// schema_migrations. Safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied bool
		err := db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.version).
			Scan(&applied)
		if err != nil {
			return fmt.Errorf("failed to check migration %d: %w", m.version, err)
		}
		if applied {
			continue
		}

		if err := apply(ctx, db, m); err != nil {
			return err
		}
		logger.Info("applied migration",
			zap.Int("version", m.version),
			zap.String("name", m.name),
		)
	}

	return nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %d: %w", m.version, err)
	}
	defer tx.Rollback()

	for _, stmt := range m.stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.version, m.name); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", m.version, err)
	}

	return tx.Commit()
}
