package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thorn-jmh/reqgen/pkg/config"
)

const schemaYAML = `
tables:
  posts:
    columns:
      - {name: id, type: "bigint unsigned", nullable: false}
      - {name: title, type: "varchar(191)", nullable: false}
      - {name: user_id, type: "bigint unsigned", nullable: false}
    foreign_keys:
      - {column: user_id, foreign_table: users, foreign_column: id}
`

func testConfig(t *testing.T, emitter string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	schema := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(schema, []byte(schemaYAML), 0o644))

	return &config.Config{
		Log:    config.Log{Level: "error"},
		Source: config.Source{Type: "file", Path: schema},
		Output: config.Output{Dir: filepath.Join(dir, "requests"), Emitter: emitter},
		Locale: "en",
	}
}

func TestRun(t *testing.T) {
	cfg := testConfig(t, "laravel")

	require.NoError(t, run(context.Background(), cfg, []string{"Post"}, io.Discard))

	src, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "PostRequest.php"))
	require.NoError(t, err)
	assert.Contains(t, string(src), `'user_id' => ['required', 'integer', 'exists:users,id'],`)
}

func TestRun_PartialFailure(t *testing.T) {
	cfg := testConfig(t, "go")
	cfg.Log.Level = "info"

	logs := &bytes.Buffer{}
	err := run(context.Background(), cfg, []string{"Comment", "Post"}, logs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errGenerateFailure), err.Error())

	// one line per model, the failure without a stack trace
	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 2, logs.String())
	assert.Contains(t, lines[0], "level=ERROR")
	assert.Contains(t, lines[0], "model=Comment")
	assert.Contains(t, lines[0], "table comments")
	assert.NotContains(t, lines[0], "--- at")
	assert.NotContains(t, lines[0], ".go:")
	assert.Contains(t, lines[1], "level=INFO")
	assert.Contains(t, lines[1], "PostRequest.go")

	_, err = os.Stat(filepath.Join(cfg.Output.Dir, "PostRequest.go"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.Output.Dir, "CommentRequest.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestNewGenerator(t *testing.T) {
	cfg := testConfig(t, "go")
	cfg.Skip = []string{"title"}
	cfg.Tables = map[string]string{"article": "posts"}

	fs := afero.NewMemMapFs()
	g, c, err := newGenerator(context.Background(), cfg, fs)
	require.NoError(t, err)
	defer c.Close()

	assert.True(t, g.Assembler.Deriver.Skips("title"))
	req, _, err := g.Render(context.Background(), "Article")
	require.NoError(t, err)
	require.Len(t, req.Rules, 1)
	assert.Equal(t, "user_id", req.Rules[0].Field)

	cfg.Output.Emitter = "rails"
	_, _, err = newGenerator(context.Background(), cfg, fs)
	require.Error(t, err)
}
