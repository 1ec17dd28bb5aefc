package requestgen

import (
	"github.com/thorn-jmh/reqgen/pkg/schemas"
)

// Context carries the state of deriving one column.
type Context struct {
	State
	Catalog *Catalog
	Result  *FieldValidation
}

type State struct {
	Column      schemas.Column       // column being derived
	ForeignKeys []schemas.ForeignKey // foreign keys of the column's table
	Label       string               // display label of the field
}

// addRule appends rule and its message. args follow the label in the
// message template of the rule.
func (ctx *Context) addRule(rule Rule, args ...any) {
	ctx.Result.Rules = append(ctx.Result.Rules, rule)
	ctx.Result.Messages = append(ctx.Result.Messages, Message{
		Key:  ctx.Column.Name + "." + rule.Name,
		Text: ctx.Catalog.Message(rule.Name, ctx.Label, args...),
	})
}

// addBareRule appends a rule that carries no message.
func (ctx *Context) addBareRule(rule Rule) {
	ctx.Result.Rules = append(ctx.Result.Rules, rule)
}

func (ctx *Context) normalize(kind NormalizerKind) {
	ctx.Result.Normalizers = append(ctx.Result.Normalizers, Normalizer{
		Field: ctx.Column.Name,
		Kind:  kind,
	})
}

// foreignKey returns the first foreign key leaving the column.
func (ctx *Context) foreignKey() (schemas.ForeignKey, bool) {
	for _, fk := range ctx.ForeignKeys {
		if fk.Column == ctx.Column.Name {
			return fk, true
		}
	}
	return schemas.ForeignKey{}, false
}
