package repository

import (
	_ "embed"
	"fmt"
	"strings"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

//go:embed schema/sqlite.sql
var sqliteSchema string

//go:embed schema/postgres.sql
var postgresSchema string

type dialect struct {
	driver string
	schema string
	// bind rewrites ? placeholders into the driver's form.
	bind func(query string) string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite:
		return dialect{driver: driver, schema: sqliteSchema, bind: func(q string) string { return q }}, nil
	case DriverPostgres:
		return dialect{driver: driver, schema: postgresSchema, bind: numberedPlaceholders}, nil
	default:
		return dialect{}, ErrUnsupportedDriver.Withf("driver %q", driver)
	}
}

func numberedPlaceholders(query string) string {
	var (
		b strings.Builder
		n int
	)

	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}
