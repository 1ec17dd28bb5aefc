package requestgen

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thorn-jmh/reqgen/pkg/schemas"
)

func newTestGenerator(fs afero.Fs, emitter Emitter) *Generator {
	return &Generator{
		Provider: &schemas.DocumentProvider{Document: &schemas.Document{
			Tables: map[string]*schemas.Table{"posts": postsTable()},
		}},
		Assembler: NewAssembler(nil),
		Emitter:   emitter,
		Writer:    NewWriter(fs),
		OutputDir: "requests",
	}
}

func TestGenerator_Generate(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := newTestGenerator(fs, &GoEmitter{})

	path, err := g.Generate(context.Background(), "post")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("requests", "PostRequest.go"), path)

	src, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Contains(t, string(src), "type PostRequest struct{}")

	// a second run leaves identical bytes
	_, err = g.Generate(context.Background(), "Post")
	require.NoError(t, err)
	again, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, src, again)
}

func TestGenerator_Laravel(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := newTestGenerator(fs, &LaravelEmitter{})

	path, err := g.Generate(context.Background(), "Post")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("requests", "PostRequest.php"), path)

	exists, err := afero.Exists(fs, path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGenerator_ModelNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := newTestGenerator(fs, &GoEmitter{})

	for _, model := range []string{"Comment", "  "} {
		_, err := g.Generate(context.Background(), model)
		require.Error(t, err, model)
		assert.True(t, errors.Is(err, ErrModelNotFound), err.Error())
		assert.False(t, errors.Is(err, ErrWriteFailure), err.Error())
	}

	exists, err := afero.DirExists(fs, "requests")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerator_TableOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := newTestGenerator(fs, &GoEmitter{})
	g.Tables = TableOverrides(map[string]string{"Article": "posts"})

	assert.Equal(t, "posts", g.TableFor("Article"))
	assert.Equal(t, "posts", g.TableFor("article"))
	assert.Equal(t, "comments", g.TableFor("Comment"))

	req, src, err := g.Render(context.Background(), "Article")
	require.NoError(t, err)
	assert.Equal(t, "ArticleRequest", req.Name)
	assert.Equal(t, "posts", req.Table)
	assert.Contains(t, string(src), "type ArticleRequest struct{}")

	// rendering writes nothing
	exists, err := afero.DirExists(fs, "requests")
	require.NoError(t, err)
	assert.False(t, exists)
}

type failingProvider struct{ err error }

func (p failingProvider) Table(context.Context, string) (*schemas.Table, error) {
	return nil, p.err
}

func TestGenerator_ProviderFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := newTestGenerator(fs, &GoEmitter{})
	g.Provider = failingProvider{err: assert.AnError}

	_, err := g.Generate(context.Background(), "Post")
	require.Error(t, err)
	assert.True(t, errors.Is(err, assert.AnError), err.Error())
	assert.False(t, errors.Is(err, ErrModelNotFound), err.Error())
	assert.False(t, errors.Is(err, ErrWriteFailure), err.Error())

	exists, err := afero.DirExists(fs, "requests")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGenerator_WriteFailure(t *testing.T) {
	g := newTestGenerator(afero.NewReadOnlyFs(afero.NewMemMapFs()), &GoEmitter{})

	_, err := g.Generate(context.Background(), "Post")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWriteFailure), err.Error())
	assert.False(t, errors.Is(err, ErrModelNotFound), err.Error())
}

func TestTableOverrides(t *testing.T) {
	overrides := map[string]string{
		"article":  "articles_v2",
		"Article":  "posts",
		"ARTICLE":  "legacy_posts",
		"BlogPost": "entries",
		"Draft":    "",
	}

	// repeated runs must agree whatever the map order
	for i := 0; i < 20; i++ {
		assert.Equal(t, map[string]string{
			"article":  "legacy_posts",
			"blogpost": "entries",
		}, TableOverrides(overrides))
	}
	assert.Empty(t, TableOverrides(nil))
}
