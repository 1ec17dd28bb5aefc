package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/thorn-jmh/errorst"

	"github.com/thorn-jmh/reqgen/pkg/config"
	"github.com/thorn-jmh/reqgen/pkg/requestgen"
	"github.com/thorn-jmh/reqgen/pkg/schemas"
)

var errGenerateFailure = errorst.NewError("some requests were not generated")

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// failed models were already reported one by one
		if !errors.Is(err, errGenerateFailure) {
			logFailure("reqgen failed", err)
		}
		os.Exit(1)
	}
}

// run generates every model in order, logging to w. A failed model is
// logged and does not stop the others.
func run(ctx context.Context, cfg *config.Config, models []string, w io.Writer) error {
	slog.SetDefault(cfg.Log.Logger(w))

	g, closer, err := newGenerator(ctx, cfg, afero.NewOsFs())
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close schema source", "error", err.Error())
		}
	}()

	failed := 0
	for _, model := range models {
		path, err := g.Generate(ctx, model)
		if err != nil {
			failed++
			logFailure("request not generated", err, "model", model)
			continue
		}
		slog.Info("request generated", "model", model, "path", path)
	}

	if failed > 0 {
		return errorst.Wrap(errGenerateFailure, "%d of %d failed", failed, len(models))
	}
	return nil
}

// logFailure reports err as a single error line. The stack errorst
// records goes to debug.
func logFailure(msg string, err error, attrs ...any) {
	slog.Error(msg, append(attrs, "error", fmt.Sprintf("%s", err))...)
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug(msg, append(attrs, "trace", fmt.Sprintf("%+v", err))...)
	}
}

func newGenerator(ctx context.Context, cfg *config.Config, fs afero.Fs) (*requestgen.Generator, io.Closer, error) {
	emitter, err := requestgen.NewEmitter(cfg.Output.Emitter, cfg.EmitterOptions())
	if err != nil {
		return nil, nil, err
	}

	provider, c, err := schemas.NewProvider(ctx, cfg.SchemaSource())
	if err != nil {
		return nil, nil, err
	}

	catalog := requestgen.CatalogFor(cfg.Locale)
	slog.Debug("generator ready",
		"source", cfg.Source.Type, "emitter", emitter.Name(), "locale", catalog.Tag.String(), "output", cfg.Output.Dir)

	return &requestgen.Generator{
		Provider:  provider,
		Assembler: requestgen.NewAssembler(requestgen.NewDeriver(catalog, cfg.Skip...)),
		Emitter:   emitter,
		Writer:    requestgen.NewWriter(fs),
		OutputDir: cfg.Output.Dir,
		Tables:    requestgen.TableOverrides(cfg.Tables),
	}, c, nil
}
