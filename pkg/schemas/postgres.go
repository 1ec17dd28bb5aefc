package schemas

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/thorn-jmh/errorst"
)

const postgresColumnsQuery = `
SELECT column_name              AS name,
       data_type                AS data_type,
       udt_name                 AS udt_name,
       character_maximum_length AS max_length,
       is_nullable              AS is_nullable
FROM information_schema.columns
WHERE table_schema = COALESCE(NULLIF($1, ''), current_schema())
  AND table_name = $2
ORDER BY ordinal_position`

const postgresEnumQuery = `
SELECT e.enumlabel AS label
FROM pg_type t
JOIN pg_enum e ON e.enumtypid = t.oid
WHERE t.typname = $1
ORDER BY e.enumsortorder`

// conkey[1] keeps composite keys to their first column
const postgresForeignKeysQuery = `
SELECT a.attname   AS column_name,
       cf.relname  AS foreign_table,
       af.attname  AS foreign_column
FROM pg_constraint con
JOIN pg_class c      ON c.oid = con.conrelid
JOIN pg_namespace n  ON n.oid = c.relnamespace
JOIN pg_class cf     ON cf.oid = con.confrelid
JOIN pg_attribute a  ON a.attrelid = con.conrelid AND a.attnum = con.conkey[1]
JOIN pg_attribute af ON af.attrelid = con.confrelid AND af.attnum = con.confkey[1]
WHERE con.contype = 'f'
  AND n.nspname = COALESCE(NULLIF($1, ''), current_schema())
  AND c.relname = $2
ORDER BY con.conname`

type postgresColumn struct {
	Name       string `db:"name"`
	DataType   string `db:"data_type"`
	UDTName    string `db:"udt_name"`
	MaxLength  *int64 `db:"max_length"`
	IsNullable string `db:"is_nullable"`
}

// PostgresProvider reads column metadata from information_schema and
// pg_catalog. Enum types are rendered as enum('a','b') raw types.
type PostgresProvider struct {
	DB     sqlscan.Querier
	Schema string // empty means current_schema()
}

func (p *PostgresProvider) Table(ctx context.Context, name string) (*Table, error) {
	var rows []postgresColumn
	if err := sqlscan.Select(ctx, p.DB, &rows, postgresColumnsQuery, p.Schema, name); err != nil {
		return nil, errorst.Wrap(err, "failed to query columns of %s", name)
	}
	if len(rows) == 0 {
		return nil, &NotFoundError{Table: name, Source: SourceTypePostgres}
	}

	table := &Table{Name: name}
	enums := make(map[string][]string)
	for _, r := range rows {
		var labels []string
		if r.DataType == "USER-DEFINED" {
			var ok bool
			if labels, ok = enums[r.UDTName]; !ok {
				if err := sqlscan.Select(ctx, p.DB, &labels, postgresEnumQuery, r.UDTName); err != nil {
					return nil, errorst.Wrap(err, "failed to query enum %s", r.UDTName)
				}
				enums[r.UDTName] = labels
			}
		}
		table.Columns = append(table.Columns, postgresColumnOf(r, labels))
	}

	var fks []sqlForeignKey
	if err := sqlscan.Select(ctx, p.DB, &fks, postgresForeignKeysQuery, p.Schema, name); err != nil {
		return nil, errorst.Wrap(err, "failed to query foreign keys of %s", name)
	}
	table.ForeignKeys = foreignKeysOf(fks)

	return table, nil
}

// postgresColumnOf builds a Column, labels being the values of an enum typed column.
func postgresColumnOf(r postgresColumn, labels []string) Column {
	col := Column{
		Name:     r.Name,
		Nullable: isNullable(r.IsNullable),
	}

	switch {
	case len(labels) > 0:
		col.TypeName = TypeNameEnum
		col.Type = quoteEnum(labels)
	case r.DataType == "USER-DEFINED":
		col.TypeName = NormalizeType(r.UDTName, r.UDTName)
		col.Type = r.UDTName
	default:
		col.TypeName = NormalizeType(r.DataType, r.UDTName)
		col.Type = r.DataType
		if r.MaxLength != nil {
			col.Type = fmt.Sprintf("%s(%d)", col.TypeName, *r.MaxLength)
		}
	}
	return col
}
