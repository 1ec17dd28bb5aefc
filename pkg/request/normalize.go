package request

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Layouts the date normalizers reformat to.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// All normalizers leave a missing key or a nil value alone, and leave
// values they cannot coerce untouched for the rules to reject.

// Trim strips surrounding white space from a string value.
func Trim(input map[string]any, field string) {
	if s, ok := input[field].(string); ok {
		input[field] = strings.TrimSpace(s)
	}
}

// ToInt casts the value to int. Strings must hold a base 10 integer.
func ToInt(input map[string]any, field string) {
	v, ok := present(input, field)
	if !ok {
		return
	}
	if s, isString := v.(string); isString {
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 0); err == nil {
			input[field] = int(n)
		}
		return
	}
	if n, err := cast.ToIntE(v); err == nil {
		input[field] = n
	}
}

// ToFloat casts the value to float64.
func ToFloat(input map[string]any, field string) {
	v, ok := present(input, field)
	if !ok {
		return
	}
	if f, err := cast.ToFloat64E(trimmed(v)); err == nil {
		input[field] = f
	}
}

// ToBool parses truthy and falsy values. "1", "true", "yes" and "on"
// are true; "0", "false", "no", "off" and "" are false.
func ToBool(input map[string]any, field string) {
	v, ok := present(input, field)
	if !ok {
		return
	}

	if s, isString := v.(string); isString {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "1", "true", "yes", "on":
			input[field] = true
		case "0", "false", "no", "off", "":
			input[field] = false
		}
		return
	}
	if b, err := cast.ToBoolE(v); err == nil {
		input[field] = b
	}
}

// ToDate reformats a date or timestamp to YYYY-MM-DD.
func ToDate(input map[string]any, field string) {
	reformat(input, field, DateLayout)
}

// ToDateTime reformats a date or timestamp to YYYY-MM-DD HH:MM:SS.
func ToDateTime(input map[string]any, field string) {
	reformat(input, field, DateTimeLayout)
}

func reformat(input map[string]any, field, layout string) {
	v, ok := present(input, field)
	if !ok {
		return
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return
	}
	if t, err := cast.ToTimeE(trimmed(v)); err == nil {
		input[field] = t.Format(layout)
	}
}

func present(input map[string]any, field string) (any, bool) {
	v, ok := input[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func trimmed(v any) any {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return v
}
