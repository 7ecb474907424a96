package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "modernc.org/sqlite"
)

func sqlitePragmas(path string) []string {
	pragmas := []string{"busy_timeout(5000)", "foreign_keys(1)"}
	if path != ":memory:" {
		pragmas = append(pragmas, "journal_mode(WAL)", "synchronous(NORMAL)")
	}
	return pragmas
}

// sqliteDSN appends the pragmas as _pragma parameters, which the driver
// applies to every new connection in the pool.
func sqliteDSN(path string) string {
	q := url.Values{}
	for _, p := range sqlitePragmas(path) {
		q.Add("_pragma", p)
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode()
}

// OpenSQLite opens an embedded SQLite database with its pragmas set on every
// connection.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	// In-memory databases are per connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}
