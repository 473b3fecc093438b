package store

import (
	"database/sql"

	assets "github.com/haatos/simple-lms"
	"github.com/haatos/simple-lms/internal/settings"
	"github.com/pressly/goose/v3"
)

func RunMigrations(db *sql.DB, driver string) error {
	goose.SetBaseFS(assets.MigrationsFS)
	dialect, dir := "sqlite3", "migrations/sqlite"
	if driver == settings.DriverPostgres {
		dialect, dir = "postgres", "migrations/postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.Up(db, dir)
}
