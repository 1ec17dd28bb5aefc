package schemas

import (
	"context"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/thorn-jmh/errorst"
)

const mysqlColumnsQuery = `
SELECT COLUMN_NAME AS name,
       DATA_TYPE   AS data_type,
       COLUMN_TYPE AS column_type,
       IS_NULLABLE AS is_nullable
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE())
  AND TABLE_NAME = ?
ORDER BY ORDINAL_POSITION`

// only the first column of a composite key is a match candidate
const mysqlForeignKeysQuery = `
SELECT COLUMN_NAME            AS column_name,
       REFERENCED_TABLE_NAME  AS foreign_table,
       REFERENCED_COLUMN_NAME AS foreign_column
FROM information_schema.KEY_COLUMN_USAGE
WHERE TABLE_SCHEMA = COALESCE(NULLIF(?, ''), DATABASE())
  AND TABLE_NAME = ?
  AND REFERENCED_TABLE_NAME IS NOT NULL
  AND ORDINAL_POSITION = 1
ORDER BY CONSTRAINT_NAME`

type mysqlColumn struct {
	Name       string `db:"name"`
	DataType   string `db:"data_type"`
	ColumnType string `db:"column_type"`
	IsNullable string `db:"is_nullable"`
}

type sqlForeignKey struct {
	ColumnName    string `db:"column_name"`
	ForeignTable  string `db:"foreign_table"`
	ForeignColumn string `db:"foreign_column"`
}

// MySQLProvider reads column metadata from MySQL's information_schema.
type MySQLProvider struct {
	DB     sqlscan.Querier
	Schema string // empty means DATABASE()
}

func (p *MySQLProvider) Table(ctx context.Context, name string) (*Table, error) {
	var rows []mysqlColumn
	if err := sqlscan.Select(ctx, p.DB, &rows, mysqlColumnsQuery, p.Schema, name); err != nil {
		return nil, errorst.Wrap(err, "failed to query columns of %s", name)
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{Table: name, Source: SourceTypeMySQL}
	}

	var fks []sqlForeignKey
	if err := sqlscan.Select(ctx, p.DB, &fks, mysqlForeignKeysQuery, p.Schema, name); err != nil {
		return nil, errorst.Wrap(err, "failed to query foreign keys of %s", name)
	}

	table := &Table{Name: name}
	for _, r := range rows {
		table.Columns = append(table.Columns, mysqlColumnOf(r))
	}
	table.ForeignKeys = foreignKeysOf(fks)
	return table, nil
}

func mysqlColumnOf(r mysqlColumn) Column {
	return Column{
		Name:     r.Name,
		TypeName: NormalizeType(r.DataType, r.ColumnType),
		Type:     r.ColumnType,
		Nullable: isNullable(r.IsNullable),
	}
}

func foreignKeysOf(rows []sqlForeignKey) []ForeignKey {
	fks := make([]ForeignKey, 0, len(rows))
	for _, r := range rows {
		fks = append(fks, ForeignKey{
			Column:        r.ColumnName,
			ForeignTable:  r.ForeignTable,
			ForeignColumn: r.ForeignColumn,
		})
	}
	return fks
}
