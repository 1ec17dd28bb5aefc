package schemas

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/thorn-jmh/errorst"
)

// database/sql driver names registered by this package
const (
	DriverMySQL    = "mysql"
	DriverPgx      = "pgx"
	DriverPostgres = "postgres" // lib/pq
)

const pingTimeout = 5 * time.Second

// Open connects to dsn with driver and checks the connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errorst.Wrap(ErrUnsupportedSource, "empty DSN for driver %s", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, errorst.Wrap(err, "failed to open database with driver %s", driver)
	}
	// a generator run issues a handful of sequential queries
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, errorst.Wrap(err, "failed to ping database")
	}

	slog.Debug("database connected", "driver", driver)
	return db, nil
}

func driverOr(driver, fallback string) string {
	if driver == "" {
		return fallback
	}
	return driver
}

// isNullable interprets the YES/NO of information_schema.
func isNullable(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "YES")
}

// quoteEnum renders values as a MySQL style enum type, enum('a','b').
func quoteEnum(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	return "enum(" + strings.Join(quoted, ",") + ")"
}
