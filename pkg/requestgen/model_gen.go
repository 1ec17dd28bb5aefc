package requestgen

import (
	"strings"

	"github.com/thorn-jmh/reqgen/pkg/request"
)

// >>>>>>>>>>>> this used to describe the result of rule derivation >>>>>>>>>>>>>>>

// Rule is one validation constraint, rendered as a rule token.
type Rule struct {
	Name   string   // rule name, also the second half of the message key
	Params []string // rendered after a colon, comma separated
}

// String renders the rule token, e.g. "max:255" or "exists:users,id".
func (r Rule) String() string {
	if len(r.Params) == 0 {
		return r.Name
	}
	return r.Name + ":" + strings.Join(r.Params, ",")
}

type NormalizerKind string

const (
	NormalizeTrim     NormalizerKind = "trim"
	NormalizeInt      NormalizerKind = "int"
	NormalizeFloat    NormalizerKind = "float"
	NormalizeBool     NormalizerKind = "bool"
	NormalizeDate     NormalizerKind = "date"
	NormalizeDateTime NormalizerKind = "datetime"
)

// Normalizer is a pre-validation transform of one field.
type Normalizer struct {
	Field string
	Kind  NormalizerKind
}

func (n Normalizer) String() string {
	switch n.Kind {
	case NormalizeTrim:
		return "trim " + n.Field
	case NormalizeInt:
		return "cast " + n.Field + " to integer unless null"
	case NormalizeFloat:
		return "cast " + n.Field + " to float unless null"
	case NormalizeBool:
		return "parse " + n.Field + " as boolean unless null"
	case NormalizeDate:
		return "reformat " + n.Field + " as YYYY-MM-DD unless null"
	case NormalizeDateTime:
		return "reformat " + n.Field + " as YYYY-MM-DD HH:MM:SS unless null"
	default:
		return string(n.Kind) + " " + n.Field
	}
}

type Message struct {
	Key  string // field.rule
	Text string
}

// FieldValidation is the derivation result of one column.
// The zero value stands for a skipped column.
type FieldValidation struct {
	Field       string
	Rules       []Rule
	Messages    []Message
	Normalizers []Normalizer
}

// Empty reports whether the column was skipped.
func (v FieldValidation) Empty() bool {
	return v.Field == "" || len(v.Rules) == 0
}

// Tokens returns the rule tokens in order.
func (v FieldValidation) Tokens() []string {
	tokens := make([]string, len(v.Rules))
	for i, r := range v.Rules {
		tokens[i] = r.String()
	}
	return tokens
}

// MessageMap returns the messages keyed by field.rule.
func (v FieldValidation) MessageMap() map[string]string {
	m := make(map[string]string, len(v.Messages))
	for _, msg := range v.Messages {
		m[msg.Key] = msg.Text
	}
	return m
}

// GeneratedRequest is everything an emitter needs to render one request type.
type GeneratedRequest struct {
	Model       string // model name, e.g. BlogPost
	Name        string // type name, e.g. BlogPostRequest
	Table       string
	Rules       []request.FieldRules // column order
	Messages    map[string]string
	MessageKeys []string // first insertion order of Messages
	Normalizers []Normalizer
}

// OrderedMessages returns Messages in first insertion order.
func (r *GeneratedRequest) OrderedMessages() []Message {
	out := make([]Message, 0, len(r.MessageKeys))
	for _, key := range r.MessageKeys {
		out = append(out, Message{Key: key, Text: r.Messages[key]})
	}
	return out
}
