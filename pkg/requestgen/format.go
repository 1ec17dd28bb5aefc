package requestgen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

type NameStyle interface {
	Format(name string) string
}

type NameStyleFunc func(name string) string

func (f NameStyleFunc) Format(name string) string {
	return f(name)
}

// BigCamelStyle turns "blog_post" into "BlogPost".
var BigCamelStyle NameStyleFunc = func(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		words[i] = upperFirst(word)
	}
	return strings.Join(words, "")
}

// SnakeStyle turns "BlogPost" into "blog_post".
var SnakeStyle NameStyleFunc = func(name string) string {
	return inflect.Underscore(name)
}

// TableStyle turns a model name into its conventional table name,
// "BlogPost" into "blog_posts".
var TableStyle NameStyleFunc = func(name string) string {
	return inflect.Tableize(name)
}

// LabelStyle turns a field name into its display label,
// "first_name" into "First name".
var LabelStyle NameStyleFunc = func(name string) string {
	return upperFirst(strings.ReplaceAll(name, "_", " "))
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
