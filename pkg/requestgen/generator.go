package requestgen

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thorn-jmh/errorst"
	"github.com/thorn-jmh/reqgen/pkg/schemas"
)

// Generator runs the whole flow for one model: resolve its table, derive,
// render and write <OutputDir>/<Model>Request.<ext>.
type Generator struct {
	Provider  schemas.SchemaProvider
	Assembler *Assembler
	Emitter   Emitter
	Writer    *Writer
	OutputDir string
	Tables    map[string]string // lower cased model -> table, see TableOverrides
}

// TableOverrides keys overrides by lower cased model name. When keys
// differ only in case, the lexically smallest key wins.
func TableOverrides(overrides map[string]string) map[string]string {
	models := make([]string, 0, len(overrides))
	for model := range overrides {
		models = append(models, model)
	}
	sort.Strings(models)

	out := make(map[string]string, len(overrides))
	for _, model := range models {
		key := strings.ToLower(model)
		if _, seen := out[key]; seen || overrides[model] == "" {
			continue
		}
		out[key] = overrides[model]
	}
	return out
}

// TableFor returns the table backing model.
func (g *Generator) TableFor(model string) string {
	if table, ok := g.Tables[strings.ToLower(model)]; ok {
		return table
	}
	return TableStyle(model)
}

// PathFor returns the destination file of model.
func (g *Generator) PathFor(model string) string {
	return filepath.Join(g.OutputDir, model+"Request."+g.Emitter.Extension())
}

// Render resolves and renders model without writing anything.
func (g *Generator) Render(ctx context.Context, model string) (*GeneratedRequest, []byte, error) {
	model = BigCamelStyle(strings.TrimSpace(model))
	if model == "" {
		return nil, nil, errorst.Wrap(ErrModelNotFound, "empty model name")
	}

	tableName := g.TableFor(model)
	table, err := g.Provider.Table(ctx, tableName)
	if err != nil {
		var notFound *schemas.NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil, errorst.Wrap(ErrModelNotFound, "%s (table %s): %v", model, tableName, err)
		}
		return nil, nil, errorst.Wrap(err, "failed to read table %s of model %s", tableName, model)
	}

	req := g.Assembler.Assemble(model, table)
	src, err := g.Emitter.Emit(req)
	if err != nil {
		return nil, nil, err
	}
	return req, src, nil
}

// Generate renders model and writes it, returning the written path.
func (g *Generator) Generate(ctx context.Context, model string) (string, error) {
	req, src, err := g.Render(ctx, model)
	if err != nil {
		return "", err
	}

	path := g.PathFor(req.Model)
	if err := g.Writer.Write(path, src); err != nil {
		return "", err
	}

	slog.Debug("request rendered",
		"model", req.Model, "table", req.Table, "fields", len(req.Rules), "normalizers", len(req.Normalizers))
	return path, nil
}
