package database

import (
	"database/sql"
	"embed"

	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func MigrationSource() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations",
	}
}

// RunPostgresMigrations applies (or with migrate.Down, reverts) the embedded schema.
func RunPostgresMigrations(db *sql.DB, direction migrate.MigrationDirection) (int, error) {
	return migrate.Exec(db, "postgres", MigrationSource(), direction)
}
