package schemas

import (
	"github.com/thorn-jmh/errorst"
)

var (
	ErrUnsupportedSource   = errorst.NewError("unsupported schema source")
	ErrUnsupportedDocument = errorst.Wrap(ErrUnsupportedSource, "unsupported schema document")
)

// NotFoundError reports a table missing from a schema source.
// Providers return it unwrapped.
type NotFoundError struct {
	Table  string
	Source SourceType
}

func (e *NotFoundError) Error() string {
	return "table " + e.Table + " not found in " + string(e.Source) + " source"
}

type SourceType string

const (
	SourceTypeFile     SourceType = "file"
	SourceTypeMySQL    SourceType = "mysql"
	SourceTypePostgres SourceType = "postgres"
)

// Source locates the column metadata of a database.
type Source struct {
	Type   SourceType
	Path   string // schema document, for file sources
	Driver string // database/sql driver name
	DSN    string
	Schema string // database (mysql) or schema (postgres); empty means the current one
}
