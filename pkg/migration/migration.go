// Package migration applies the versioned schema for the message database.
// Migrations are embedded SQL files named NNN_name.up.sql / NNN_name.down.sql
// and applied in version order inside transactions.
package migration

import (
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migration is one versioned schema step.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// Run applies every pending migration to the database.
func Run(conn *sql.DB) error {
	if err := ensureSchemaTable(conn); err != nil {
		return fmt.Errorf("create schema table: %w", err)
	}

	migrations, err := load()
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	current, dirty, err := currentVersion(conn)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty, manual intervention required", current)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		if err := apply(conn, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

func ensureSchemaTable(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			dirty      BOOLEAN NOT NULL DEFAULT FALSE,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

func load() ([]Migration, error) {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return nil, err
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version, name, direction, err := parseFilename(entry.Name())
		if err != nil {
			continue
		}
		content, err := migrationFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, err
		}
		m := byVersion[version]
		if m == nil {
			m = &Migration{Version: version, Name: name}
			byVersion[version] = m
		}
		switch direction {
		case "up":
			m.UpSQL = string(content)
		case "down":
			m.DownSQL = string(content)
		}
	}

	var migrations []Migration
	for _, m := range byVersion {
		if m.UpSQL != "" {
			migrations = append(migrations, *m)
		}
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

func parseFilename(filename string) (version int, name, direction string, err error) {
	base := strings.TrimSuffix(filename, ".sql")
	parts := strings.Split(base, ".")
	if len(parts) != 2 {
		return 0, "", "", fmt.Errorf("bad migration filename %q", filename)
	}
	direction = parts[1]
	if direction != "up" && direction != "down" {
		return 0, "", "", fmt.Errorf("bad migration direction %q", direction)
	}

	nameParts := strings.SplitN(parts[0], "_", 2)
	if len(nameParts) != 2 {
		return 0, "", "", fmt.Errorf("bad migration name %q", parts[0])
	}
	version, err = strconv.Atoi(nameParts[0])
	if err != nil {
		return 0, "", "", fmt.Errorf("bad migration version: %w", err)
	}
	return version, nameParts[1], direction, nil
}

func currentVersion(conn *sql.DB) (version int, dirty bool, err error) {
	row := conn.QueryRow(`SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`)
	err = row.Scan(&version, &dirty)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	return version, dirty, err
}

func apply(conn *sql.DB, m Migration) error {
	tx, err := conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO schema_migrations (version, dirty) VALUES (?, TRUE)`, m.Version); err != nil {
		return err
	}
	if _, err := tx.Exec(m.UpSQL); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE schema_migrations SET dirty = FALSE WHERE version = ?`, m.Version); err != nil {
		return err
	}
	return tx.Commit()
}
