package requestgen

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Catalog holds the message templates of one locale. Each template is
// appended to the field label; verbs consume the rule's message args.
type Catalog struct {
	Tag       language.Tag
	Templates map[string]string // rule name -> template

	// display forms of the date_format patterns
	DateTimePattern string
	TimePattern     string
}

// Message renders the message of rule for label. Rules missing from the
// catalog fall back to English, then to a generic "is invalid".
func (c *Catalog) Message(rule, label string, args ...any) string {
	tpl, ok := c.Templates[rule]
	if !ok {
		if tpl, ok = English.Templates[rule]; !ok {
			tpl = "is invalid."
		}
	}
	return label + " " + fmt.Sprintf(tpl, args...)
}

var English = &Catalog{
	Tag: language.English,
	Templates: map[string]string{
		"required":    "is required.",
		"string":      "must be a string.",
		"max":         "may not be greater than %s characters.",
		"integer":     "must be an integer.",
		"exists":      "must exist in the %s table.",
		"numeric":     "must be a number.",
		"boolean":     "must be true or false.",
		"date":        "must be a valid date.",
		"date_format": "must match the format %s.",
		"json":        "must be a valid JSON string.",
		"in":          "must be one of: %s.",
	},
	DateTimePattern: "YYYY-MM-DD HH:MM:SS",
	TimePattern:     "HH:MM:SS",
}

var BrazilianPortuguese = &Catalog{
	Tag: language.BrazilianPortuguese,
	Templates: map[string]string{
		"required":    "é obrigatório.",
		"string":      "deve ser uma string.",
		"max":         "não pode ter mais que %s caracteres.",
		"integer":     "deve ser um número inteiro.",
		"exists":      "deve existir na tabela %s.",
		"numeric":     "deve ser um número.",
		"boolean":     "deve ser verdadeiro ou falso.",
		"date":        "deve ser uma data válida.",
		"date_format": "deve estar no formato %s.",
		"json":        "deve ser um JSON válido.",
		"in":          "deve ser um dos valores: %s.",
	},
	DateTimePattern: "AAAA-MM-DD HH:MM:SS",
	TimePattern:     "HH:MM:SS",
}

// the first catalog is the fallback of the matcher
var (
	catalogs       = []*Catalog{English, BrazilianPortuguese}
	catalogMatcher = language.NewMatcher([]language.Tag{English.Tag, BrazilianPortuguese.Tag})
)

// CatalogFor returns the catalog best matching locale, English when
// nothing matches or locale does not parse.
func CatalogFor(locale string) *Catalog {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return English
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return English
	}
	_, idx, confidence := catalogMatcher.Match(tag)
	if confidence == language.No {
		return English
	}
	return catalogs[idx]
}
