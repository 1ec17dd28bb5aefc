package requestgen

import (
	"go/parser"
	"go/token"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmitter(t *testing.T) {
	e, err := NewEmitter("go", EmitterOptions{Package: "forms"})
	require.NoError(t, err)
	assert.Equal(t, "go", e.Name())
	assert.Equal(t, "go", e.Extension())
	assert.Equal(t, &GoEmitter{Package: "forms"}, e)

	e, err = NewEmitter(" Laravel ", EmitterOptions{Namespace: `App\Http\Requests\Admin`})
	require.NoError(t, err)
	assert.Equal(t, "php", e.Extension())
	assert.Equal(t, &LaravelEmitter{Namespace: `App\Http\Requests\Admin`}, e)

	_, err = NewEmitter("rails", EmitterOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rails")

	assert.Equal(t, []string{"go", "laravel"}, EmitterNames())
}

func TestGoEmitter_Emit(t *testing.T) {
	req := NewAssembler(nil).Assemble("Post", postsTable())
	src, err := (&GoEmitter{}).Emit(req)
	require.NoError(t, err)
	code := string(src)

	_, err = parser.ParseFile(token.NewFileSet(), "PostRequest.go", src, parser.AllErrors)
	require.NoError(t, err, code)

	for _, want := range []string{
		"// Code generated by reqgen. DO NOT EDIT.",
		"package requests",
		`"github.com/thorn-jmh/reqgen/pkg/request"`,
		"type PostRequest struct{}",
		"var _ request.Request = PostRequest{}",
		"func (PostRequest) Rules() []request.FieldRules {",
		`{Field: "title", Rules: []string{"required", "string", "max:191"}},`,
		`{Field: "user_id", Rules: []string{"required", "integer", "exists:users,id"}},`,
		`{Field: "status", Rules: []string{"required", "in:draft,published"}},`,
		`{Field: "published_at", Rules: []string{"nullable", "date_format:Y-m-d H:i:s"}},`,
		"func (PostRequest) Messages() map[string]string {",
		"func (PostRequest) PrepareForValidation(input map[string]any) {",
		`request.Trim(input, "title")`,
		`request.ToInt(input, "user_id")`,
		`request.ToInt(input, "views")`,
		`request.ToDateTime(input, "published_at")`,
	} {
		assert.Contains(t, code, want)
	}
	assert.NotContains(t, code, `"id"`)
	assert.NotContains(t, code, "created_at")

	assert.Regexp(t, regexp.MustCompile(`"title\.max":\s+"Title may not be greater than 191 characters\.",`), code)
	assert.Regexp(t, regexp.MustCompile(`"user_id\.exists":\s+"User id must exist in the users table\.",`), code)

	// column order survives rendering
	assertInOrder(t, code, `Field: "title"`, `Field: "user_id"`, `Field: "status"`, `Field: "views"`, `Field: "published_at"`)
	assertInOrder(t, code, `"title.required"`, `"user_id.required"`, `"status.in"`, `"published_at.date_format"`)
	assertInOrder(t, code, `request.Trim(`, `request.ToInt(input, "user_id")`, `request.ToInt(input, "views")`, `request.ToDateTime(`)
}

func TestGoEmitter_Package(t *testing.T) {
	req := NewAssembler(nil).Assemble("Post", postsTable())
	src, err := (&GoEmitter{Package: "forms"}).Emit(req)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package forms")
}

func TestGoEmitter_Deterministic(t *testing.T) {
	e := &GoEmitter{}
	first, err := e.Emit(NewAssembler(nil).Assemble("Post", postsTable()))
	require.NoError(t, err)
	second, err := e.Emit(NewAssembler(nil).Assemble("Post", postsTable()))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGoEmitter_EmptyRequest(t *testing.T) {
	req := &GeneratedRequest{Model: "Tag", Name: "TagRequest", Table: "tags", Messages: map[string]string{}}
	src, err := (&GoEmitter{}).Emit(req)
	require.NoError(t, err)

	_, err = parser.ParseFile(token.NewFileSet(), "TagRequest.go", src, parser.AllErrors)
	require.NoError(t, err, string(src))
	assert.Contains(t, string(src), "func (TagRequest) PrepareForValidation(input map[string]any) {}")
}

func assertInOrder(t *testing.T, s string, parts ...string) {
	t.Helper()
	last := -1
	for _, part := range parts {
		idx := strings.Index(s, part)
		if !assert.GreaterOrEqual(t, idx, 0, "missing %q", part) {
			return
		}
		assert.Greater(t, idx, last, "%q out of order", part)
		last = idx
	}
}
