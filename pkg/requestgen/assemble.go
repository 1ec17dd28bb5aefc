package requestgen

import (
	"log/slog"

	"github.com/thorn-jmh/reqgen/pkg/request"
	"github.com/thorn-jmh/reqgen/pkg/schemas"
)

// Assembler folds the derivations of a table's columns into a GeneratedRequest.
type Assembler struct {
	Deriver *Deriver
}

func NewAssembler(deriver *Deriver) *Assembler {
	if deriver == nil {
		deriver = NewDeriver(nil)
	}
	return &Assembler{Deriver: deriver}
}

// Assemble derives every column of table in order. Rules keep column
// order, a repeated message key keeps its first position and its last
// text, normalizers keep derivation order.
func (a *Assembler) Assemble(model string, table *schemas.Table) *GeneratedRequest {
	req := &GeneratedRequest{
		Model:    model,
		Name:     model + "Request",
		Table:    table.Name,
		Rules:    []request.FieldRules{},
		Messages: map[string]string{},
	}

	for _, col := range table.Columns {
		v := a.Deriver.Derive(col, table.ForeignKeys)
		if v.Empty() {
			continue
		}
		if !schemas.IsKnownType(col.TypeName) {
			slog.Debug("column type has no rules of its own",
				"table", table.Name, "column", col.Name, "type", col.TypeName)
		}

		req.Rules = append(req.Rules, request.FieldRules{Field: v.Field, Rules: v.Tokens()})
		for _, msg := range v.Messages {
			if _, seen := req.Messages[msg.Key]; !seen {
				req.MessageKeys = append(req.MessageKeys, msg.Key)
			}
			req.Messages[msg.Key] = msg.Text
		}
		req.Normalizers = append(req.Normalizers, v.Normalizers...)
	}

	return req
}
