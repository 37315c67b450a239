package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(Up0002, Down0002)
}

func Up0002(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
CREATE TABLE submissions (
    id UUID PRIMARY KEY DEFAULT uuidv7_sub_ms(),
    name TEXT NOT NULL,
    roll_number TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    domain TEXT NOT NULL,
    task_option TEXT NOT NULL DEFAULT '',
    project_title TEXT NOT NULL DEFAULT '',
    project_description TEXT NOT NULL DEFAULT '',
    project_link TEXT NOT NULL DEFAULT '',
    github_link TEXT NOT NULL DEFAULT '',
    additional_links TEXT NOT NULL DEFAULT '',
    technologies_used TEXT NOT NULL DEFAULT '',
    challenges_faced TEXT NOT NULL DEFAULT '',
    learning_outcomes TEXT NOT NULL DEFAULT '',
    additional_comments TEXT NOT NULL DEFAULT '',
    codeforces_profile TEXT NOT NULL DEFAULT '',
    codeforces_rating TEXT NOT NULL DEFAULT '',
    leetcode_profile TEXT NOT NULL DEFAULT '',
    leetcode_rating TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp,
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT current_timestamp
);
`)
	if err != nil {
		return err
	}

	return nil
}

func Down0002(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE submissions;`)
	if err != nil {
		return err
	}

	return nil
}
