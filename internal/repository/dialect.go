package repository

import (
	"fmt"
	"strconv"
	"strings"

	// database/sql drivers selectable through config
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect captures the differences between the supported SQL engines.
// Queries are always written with '?' placeholders and rebound per dialect.
type Dialect struct {
	// Driver is the database/sql driver name.
	Driver string

	numberedPlaceholders bool
	returningID          bool
}

var (
	SQLite   = Dialect{Driver: "sqlite"}
	Postgres = Dialect{Driver: "postgres", numberedPlaceholders: true, returningID: true}
)

// DialectFor returns the dialect registered under driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case SQLite.Driver:
		return SQLite, nil
	case Postgres.Driver:
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Rebind rewrites '?' placeholders into the dialect's form. Placeholders
// inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if !d.numberedPlaceholders {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		ch := query[i]
		switch {
		case ch == '\'':
			inLiteral = !inLiteral
			b.WriteByte(ch)
		case ch == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

// ReturningID appends the clause that makes an INSERT report the generated
// key, when the dialect needs one.
func (d Dialect) ReturningID(query, idColumn string) string {
	if !d.returningID {
		return query
	}
	return query + " RETURNING " + idColumn
}
