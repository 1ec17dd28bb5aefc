package requestgen

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/thorn-jmh/reqgen/pkg/schemas"
)

// DefaultSkip lists the identity and timestamp columns never validated.
var DefaultSkip = []string{"id", "created_at", "updated_at", "deleted_at"}

// date_format patterns, in the rule vocabulary
const (
	dateTimeFormat = "Y-m-d H:i:s"
	timeFormat     = "H:i:s"
)

var (
	lengthPattern = regexp.MustCompile(`\d+`)
	enumPattern   = regexp.MustCompile(`(?is)^\s*enum\s*\((.*)\)\s*$`)
)

type augmenter func(ctx *Context)

var augmenters = map[schemas.TypeName]augmenter{
	schemas.TypeNameVarchar:  processVarchar,
	schemas.TypeNameText:     processText,
	schemas.TypeNameInteger:  processInteger,
	schemas.TypeNameSmallint: processInteger,
	schemas.TypeNameBigint:   processInteger,
	schemas.TypeNameFloat:    processNumeric,
	schemas.TypeNameDouble:   processNumeric,
	schemas.TypeNameDecimal:  processNumeric,
	schemas.TypeNameBoolean:  processBoolean,
	schemas.TypeNameDate:     processDate,
	schemas.TypeNameDatetime: processDatetime,
	schemas.TypeNameTime:     processTime,
	schemas.TypeNameJSON:     processJSON,
	schemas.TypeNameEnum:     processEnum,
}

// Deriver maps one column to its rules, messages and normalizers.
type Deriver struct {
	Catalog *Catalog
	skip    map[string]struct{}
}

// NewDeriver returns a Deriver skipping DefaultSkip plus extraSkip.
// A nil catalog means English.
func NewDeriver(catalog *Catalog, extraSkip ...string) *Deriver {
	if catalog == nil {
		catalog = English
	}
	d := &Deriver{
		Catalog: catalog,
		skip:    make(map[string]struct{}, len(DefaultSkip)+len(extraSkip)),
	}
	for _, name := range append(append([]string{}, DefaultSkip...), extraSkip...) {
		d.skip[strings.TrimSpace(name)] = struct{}{}
	}
	return d
}

// Skips reports whether the column named name is never validated.
func (d *Deriver) Skips(name string) bool {
	_, ok := d.skip[name]
	return ok
}

// Derive returns the validation of col, or the zero value when col is
// skipped. Unknown types and malformed raw types never fail: they only
// lose the constraints that could not be derived.
func (d *Deriver) Derive(col schemas.Column, foreignKeys []schemas.ForeignKey) FieldValidation {
	if d.Skips(col.Name) {
		return FieldValidation{}
	}

	result := FieldValidation{Field: col.Name}
	ctx := &Context{
		State: State{
			Column:      col,
			ForeignKeys: foreignKeys,
			Label:       LabelStyle(col.Name),
		},
		Catalog: d.Catalog,
		Result:  &result,
	}

	// first: presence
	if col.Nullable {
		ctx.addBareRule(Rule{Name: "nullable"})
	} else {
		ctx.addRule(Rule{Name: "required"})
	}

	// second: type specific rules
	if augment, ok := augmenters[col.TypeName]; ok {
		augment(ctx)
	}

	return result
}

func processVarchar(ctx *Context) {
	ctx.addRule(Rule{Name: "string"})
	if n := lengthPattern.FindString(ctx.Column.Type); n != "" {
		ctx.addRule(Rule{Name: "max", Params: []string{n}}, n)
	}
	ctx.normalize(NormalizeTrim)
}

func processText(ctx *Context) {
	ctx.addRule(Rule{Name: "string"})
}

func processInteger(ctx *Context) {
	ctx.addRule(Rule{Name: "integer"})
	if fk, ok := ctx.foreignKey(); ok {
		ctx.addRule(Rule{Name: "exists", Params: []string{fk.ForeignTable, fk.ForeignColumn}}, fk.ForeignTable)
	}
	ctx.normalize(NormalizeInt)
}

func processNumeric(ctx *Context) {
	ctx.addRule(Rule{Name: "numeric"})
	ctx.normalize(NormalizeFloat)
}

func processBoolean(ctx *Context) {
	ctx.addRule(Rule{Name: "boolean"})
	ctx.normalize(NormalizeBool)
}

func processDate(ctx *Context) {
	ctx.addRule(Rule{Name: "date"})
	ctx.normalize(NormalizeDate)
}

func processDatetime(ctx *Context) {
	ctx.addRule(Rule{Name: "date_format", Params: []string{dateTimeFormat}}, ctx.Catalog.DateTimePattern)
	ctx.normalize(NormalizeDateTime)
}

func processTime(ctx *Context) {
	ctx.addRule(Rule{Name: "date_format", Params: []string{timeFormat}}, ctx.Catalog.TimePattern)
}

func processJSON(ctx *Context) {
	ctx.addRule(Rule{Name: "json"})
}

func processEnum(ctx *Context) {
	values := parseEnumValues(ctx.Column.Type)
	if len(values) == 0 {
		return
	}

	params := make([]string, len(values))
	for i, v := range values {
		params[i] = quoteRuleParam(v)
	}
	ctx.addRule(Rule{Name: "in", Params: params}, strings.Join(values, ", "))
}

// parseEnumValues extracts the quoted values of enum('a','b'). Quotes are
// doubled ('') or backslash escaped inside a value, and commas inside
// quotes belong to the value. Anything malformed yields nil.
func parseEnumValues(rawType string) []string {
	m := enumPattern.FindStringSubmatch(rawType)
	if m == nil {
		return nil
	}

	var (
		values []string
		list   = []rune(m[1])
	)
	for i := 0; i < len(list); {
		r := list[i]
		switch {
		case unicode.IsSpace(r) || r == ',':
			i++
			continue
		case r != '\'' && r != '"':
			return nil
		}

		quote := r
		var value strings.Builder
		closed := false
		for i++; i < len(list); i++ {
			c := list[i]
			if c == '\\' && i+1 < len(list) {
				i++
				value.WriteRune(list[i])
				continue
			}
			if c == quote {
				if i+1 < len(list) && list[i+1] == quote {
					i++
					value.WriteRune(quote)
					continue
				}
				closed = true
				i++
				break
			}
			value.WriteRune(c)
		}
		if !closed {
			return nil
		}
		values = append(values, value.String())
	}
	return values
}

// quoteRuleParam protects a parameter holding the list separator, the
// rule parser reading parameters as CSV.
func quoteRuleParam(v string) string {
	if !strings.ContainsAny(v, `,"`) {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
