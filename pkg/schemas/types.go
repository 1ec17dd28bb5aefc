package schemas

import "strings"

// TypeName is the normalized lowercase keyword of a column type.
type TypeName string

const (
	TypeNameVarchar  TypeName = "varchar"
	TypeNameText     TypeName = "text"
	TypeNameInteger  TypeName = "integer"
	TypeNameSmallint TypeName = "smallint"
	TypeNameBigint   TypeName = "bigint"
	TypeNameFloat    TypeName = "float"
	TypeNameDouble   TypeName = "double"
	TypeNameDecimal  TypeName = "decimal"
	TypeNameBoolean  TypeName = "boolean"
	TypeNameDate     TypeName = "date"
	TypeNameDatetime TypeName = "datetime"
	TypeNameTime     TypeName = "time"
	TypeNameJSON     TypeName = "json"
	TypeNameEnum     TypeName = "enum"
)

// dialect spellings of the same type
var typeAliases = map[string]TypeName{
	"character varying": TypeNameVarchar,
	"char":              TypeNameVarchar,
	"character":         TypeNameVarchar,
	"bpchar":            TypeNameVarchar,

	"tinytext":   TypeNameText,
	"mediumtext": TypeNameText,
	"longtext":   TypeNameText,

	"int":       TypeNameInteger,
	"int4":      TypeNameInteger,
	"mediumint": TypeNameInteger,
	"serial":    TypeNameInteger,
	"int2":      TypeNameSmallint,
	"int8":      TypeNameBigint,
	"bigserial": TypeNameBigint,

	"real":             TypeNameFloat,
	"float4":           TypeNameFloat,
	"double precision": TypeNameDouble,
	"float8":           TypeNameDouble,
	"numeric":          TypeNameDecimal,

	"bool": TypeNameBoolean,

	"timestamp":                   TypeNameDatetime,
	"timestamptz":                 TypeNameDatetime,
	"timestamp without time zone": TypeNameDatetime,
	"timestamp with time zone":    TypeNameDatetime,
	"time without time zone":      TypeNameTime,
	"time with time zone":         TypeNameTime,
	"timetz":                      TypeNameTime,

	"jsonb": TypeNameJSON,
}

// NormalizeType maps a dialect data type to its TypeName.
// rawType disambiguates MySQL's tinyint(1) booleans. Unknown
// names come back lower-cased and otherwise untouched.
func NormalizeType(dataType, rawType string) TypeName {
	name := strings.ToLower(strings.TrimSpace(dataType))
	raw := strings.ToLower(strings.TrimSpace(rawType))

	if name == "" {
		// derive the keyword from the raw type, "varchar(255)" -> "varchar"
		name = raw
		if i := strings.IndexByte(name, '('); i >= 0 {
			name = strings.TrimSpace(name[:i])
		}
		name = strings.TrimSuffix(name, " unsigned")
	}

	if name == "tinyint" {
		if strings.HasPrefix(raw, "tinyint(1)") {
			return TypeNameBoolean
		}
		return TypeNameSmallint
	}
	if typ, ok := typeAliases[name]; ok {
		return typ
	}
	return TypeName(name)
}

// IsKnownType reports whether the rule deriver has a case for t.
func IsKnownType(t TypeName) bool {
	switch t {
	case TypeNameVarchar, TypeNameText,
		TypeNameInteger, TypeNameSmallint, TypeNameBigint,
		TypeNameFloat, TypeNameDouble, TypeNameDecimal,
		TypeNameBoolean, TypeNameDate, TypeNameDatetime, TypeNameTime,
		TypeNameJSON, TypeNameEnum:
		return true
	default:
		return false
	}
}
