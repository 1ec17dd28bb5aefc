package schemas

import (
	"context"
	"io"

	"github.com/thorn-jmh/errorst"
)

// SchemaProvider supplies the column metadata of a table.
type SchemaProvider interface {
	Table(ctx context.Context, name string) (*Table, error)
}

// DocumentProvider serves tables out of a parsed schema document.
type DocumentProvider struct {
	Document *Document
}

// NewDocumentProvider reads the schema document at path.
func NewDocumentProvider(path string) (*DocumentProvider, error) {
	doc, err := FromFile(path)
	if err != nil {
		return nil, errorst.Wrap(err, "failed to load schema document")
	}
	return &DocumentProvider{Document: doc}, nil
}

func (p *DocumentProvider) Table(_ context.Context, name string) (*Table, error) {
	if p.Document != nil {
		if table, ok := p.Document.Tables[name]; ok {
			return table, nil
		}
	}
	return nil, &NotFoundError{Table: name, Source: SourceTypeFile}
}

// NewProvider builds the provider for src. The returned closer releases
// the database handle of SQL backed providers and is never nil.
func NewProvider(ctx context.Context, src Source) (SchemaProvider, io.Closer, error) {
	switch src.Type {
	case SourceTypeFile, "":
		p, err := NewDocumentProvider(src.Path)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return p, nopCloser{}, nil

	case SourceTypeMySQL:
		db, err := Open(ctx, driverOr(src.Driver, DriverMySQL), src.DSN)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return &MySQLProvider{DB: db, Schema: src.Schema}, db, nil

	case SourceTypePostgres:
		db, err := Open(ctx, driverOr(src.Driver, DriverPgx), src.DSN)
		if err != nil {
			return nil, nopCloser{}, err
		}
		return &PostgresProvider{DB: db, Schema: src.Schema}, db, nil

	default:
		return nil, nopCloser{}, errorst.Wrap(ErrUnsupportedSource, "source type %q", src.Type)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
