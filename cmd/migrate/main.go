// Package main is a database migration CLI.
//
// Migrations live in the migrations directory as numbered .up.sql/.down.sql
// pairs. Applied versions are tracked in a schema_migrations table.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

const usage = `
PulseHub - Database Migration Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Apply all pending migrations
  down        Roll back the most recent migration
  status      Show applied and pending migrations

Flags:
  -migrations string   Path to migrations directory (default "migrations")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
  go run cmd/migrate/main.go down
`

func main() {
	migrationsDir := flag.String("migrations", "migrations", "Path to migrations directory")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := ensureVersionTable(db); err != nil {
		log.Fatalf("failed to prepare version table: %v", err)
	}

	switch flag.Arg(0) {
	case "up":
		if err := migrateUp(db, *migrationsDir); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	case "down":
		if err := migrateDown(db, *migrationsDir); err != nil {
			log.Fatalf("rollback failed: %v", err)
		}
	case "status":
		if err := showStatus(db, *migrationsDir); err != nil {
			log.Fatalf("status failed: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}

// migration is one .up.sql/.down.sql pair identified by its version prefix.
type migration struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

func ensureVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// loadMigrations discovers migration pairs sorted by version.
func loadMigrations(dir string) ([]migration, error) {
	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	sort.Strings(ups)

	migrations := make([]migration, 0, len(ups))
	for _, up := range ups {
		base := strings.TrimSuffix(filepath.Base(up), ".up.sql")
		version, name, found := strings.Cut(base, "_")
		if !found {
			return nil, fmt.Errorf("malformed migration file name: %s", up)
		}
		migrations = append(migrations, migration{
			Version:  version,
			Name:     name,
			UpPath:   up,
			DownPath: filepath.Join(dir, base+".down.sql"),
		})
	}
	return migrations, nil
}

func appliedVersions(db *sql.DB) (map[string]bool, error) {
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

func migrateUp(db *sql.DB, dir string) error {
	migrations, err := loadMigrations(dir)
	if err != nil {
		return err
	}
	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	count := 0
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyFile(db, m.UpPath, func(tx *sql.Tx) error {
			_, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version)
			return err
		}); err != nil {
			return fmt.Errorf("migration %s: %w", m.Version, err)
		}
		log.Printf("applied %s_%s", m.Version, m.Name)
		count++
	}

	if count == 0 {
		log.Println("no pending migrations")
	} else {
		log.Printf("applied %d migration(s)", count)
	}
	return nil
}

func migrateDown(db *sql.DB, dir string) error {
	migrations, err := loadMigrations(dir)
	if err != nil {
		return err
	}
	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	// Most recent applied migration rolls back first.
	for i := len(migrations) - 1; i >= 0; i-- {
		m := migrations[i]
		if !applied[m.Version] {
			continue
		}
		if err := applyFile(db, m.DownPath, func(tx *sql.Tx) error {
			_, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = $1`, m.Version)
			return err
		}); err != nil {
			return fmt.Errorf("rollback %s: %w", m.Version, err)
		}
		log.Printf("rolled back %s_%s", m.Version, m.Name)
		return nil
	}

	log.Println("nothing to roll back")
	return nil
}

func showStatus(db *sql.DB, dir string) error {
	migrations, err := loadMigrations(dir)
	if err != nil {
		return err
	}
	applied, err := appliedVersions(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		state := "pending"
		if applied[m.Version] {
			state = "applied"
		}
		fmt.Printf("%-8s %s_%s\n", state, m.Version, m.Name)
	}
	return nil
}

// applyFile runs one SQL file and a bookkeeping step in a single transaction.
func applyFile(db *sql.DB, path string, record func(tx *sql.Tx) error) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(string(contents)); err != nil {
		return err
	}
	if err := record(tx); err != nil {
		return err
	}
	return tx.Commit()
}
