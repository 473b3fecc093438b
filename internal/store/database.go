package store

import (
	"context"
	"database/sql"
	"log"
	"runtime"
	"time"

	"github.com/haatos/simple-lms/internal/settings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// InitDatabase opens the configured database. SQLite gets separate
// read-only and single-writer handles; PostgreSQL uses one pool for both.
func InitDatabase(s *settings.AppSettings, readonly bool) *sql.DB {
	if s.DBDriver == settings.DriverPostgres {
		db, err := sql.Open("pgx", s.PostgresURL)
		if err != nil {
			log.Fatal("fatal error opening postgres database:", err)
		}
		db.SetMaxOpenConns(max(8, runtime.NumCPU()*2))
		db.SetConnMaxIdleTime(5 * time.Minute)
		return db
	}

	db, err := sql.Open("sqlite", s.SQLiteDbString(readonly))
	if err != nil {
		log.Fatal("fatal error opening sqlite database:", err)
	}

	if readonly {
		db.SetMaxOpenConns(max(4, runtime.NumCPU()))
	} else {
		if _, err := db.Exec("PRAGMA temp_store=memory"); err != nil {
			log.Fatal(err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			log.Fatal(err)
		}
		db.SetMaxOpenConns(1)
	}

	return db
}

func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}
