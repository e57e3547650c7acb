package journal

import (
	"database/sql"
	"fmt"
)

// createSchema creates the journal tables. Safe to call on every open.
func createSchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create journal schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    ingredient_count INTEGER NOT NULL,
    has_image INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL CHECK (status IN ('succeeded', 'failed')),
    status_code INTEGER NOT NULL DEFAULT 0,
    message TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submission_created_at ON submission(created_at);
`
