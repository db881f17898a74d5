package storage

import (
	"database/sql"
	"strings"
)

// MySQLAdapter implements every repository port over one *sql.DB. The pool is
// constructed and closed by the caller.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// placeholders returns "?, ?, ..." for n parameters.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
