package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT 'project_manager',
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		short_id    TEXT NOT NULL DEFAULT '',
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		stage       TEXT NOT NULL DEFAULT 'initiation'
		            CHECK(stage IN ('initiation','planning','execution','monitoring','closing','closed')),
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		budget      REAL NOT NULL DEFAULT 0,
		manager_id  TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_short_id ON projects(short_id) WHERE short_id != ''`,

	`CREATE TABLE IF NOT EXISTS resources (
		id               TEXT PRIMARY KEY,
		project_id       TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name             TEXT NOT NULL,
		type             TEXT NOT NULL
		                 CHECK(type IN ('team_member','vendor','equipment','material')),
		cost_per_unit    REAL NOT NULL DEFAULT 0,
		availability     TEXT NOT NULL DEFAULT '',
		allocated_amount REAL NOT NULL DEFAULT 0,
		description      TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resources_project ON resources(project_id)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		due_date       TEXT NOT NULL,
		completed      INTEGER NOT NULL DEFAULT 0,
		completed_date TEXT,
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_project ON milestones(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_milestones_due ON milestones(due_date)`,

	`CREATE TABLE IF NOT EXISTS expenses (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		resource_id  TEXT REFERENCES resources(id) ON DELETE CASCADE,
		description  TEXT NOT NULL,
		amount       REAL NOT NULL,
		expense_type TEXT NOT NULL
		             CHECK(expense_type IN ('resource','vendor','equipment','material','other')),
		date         TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_expenses_project ON expenses(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_resource ON expenses(resource_id)`,

	`CREATE TABLE IF NOT EXISTS documents (
		id          TEXT PRIMARY KEY,
		project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		filename    TEXT NOT NULL,
		version     INTEGER NOT NULL DEFAULT 1,
		folder_path TEXT NOT NULL DEFAULT '/',
		file_path   TEXT NOT NULL,
		file_size   INTEGER NOT NULL DEFAULT 0,
		status      TEXT NOT NULL DEFAULT 'draft'
		            CHECK(status IN ('draft','pending_approval','approved','rejected')),
		uploaded_by TEXT NOT NULL,
		uploaded_at TEXT NOT NULL,
		approved_by TEXT,
		approved_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_documents_project_folder ON documents(project_id, folder_path)`,
}
