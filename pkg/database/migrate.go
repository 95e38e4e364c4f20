package database

import (
	"database/sql"
	"fmt"

	"fitsocial/pkg/config"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// OpenSQL opens a plain database/sql handle for goose.
func OpenSQL(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// Migrate runs a goose command (up, down, status, create) against dir.
// create takes the migration name as its single argument.
func Migrate(db *sql.DB, dir, command string, args ...string) error {
	switch command {
	case "up", "down", "status":
	case "create":
		if len(args) == 0 || args[0] == "" {
			return fmt.Errorf("name is required for create command")
		}
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	var err error
	switch command {
	case "create":
		err = goose.Create(db, dir, args[0], "sql")
	case "up":
		err = goose.Up(db, dir)
	case "down":
		err = goose.Down(db, dir)
	case "status":
		err = goose.Status(db, dir)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}
