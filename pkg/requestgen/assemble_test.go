package requestgen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thorn-jmh/reqgen/pkg/request"
	"github.com/thorn-jmh/reqgen/pkg/schemas"
)

func postsTable() *schemas.Table {
	return &schemas.Table{
		Name: "posts",
		Columns: []schemas.Column{
			column("id", schemas.TypeNameBigint, "bigint unsigned", false),
			column("title", schemas.TypeNameVarchar, "varchar(191)", false),
			column("user_id", schemas.TypeNameBigint, "bigint unsigned", false),
			column("status", schemas.TypeNameEnum, "enum('draft','published')", false),
			column("views", schemas.TypeNameInteger, "int", true),
			column("published_at", schemas.TypeNameDatetime, "timestamp", true),
			column("created_at", schemas.TypeNameDatetime, "timestamp", true),
			column("updated_at", schemas.TypeNameDatetime, "timestamp", true),
		},
		ForeignKeys: []schemas.ForeignKey{
			{Column: "user_id", ForeignTable: "users", ForeignColumn: "id"},
		},
	}
}

func TestAssembler_Assemble(t *testing.T) {
	req := NewAssembler(nil).Assemble("Post", postsTable())

	assert.Equal(t, "Post", req.Model)
	assert.Equal(t, "PostRequest", req.Name)
	assert.Equal(t, "posts", req.Table)

	wantRules := []request.FieldRules{
		{Field: "title", Rules: []string{"required", "string", "max:191"}},
		{Field: "user_id", Rules: []string{"required", "integer", "exists:users,id"}},
		{Field: "status", Rules: []string{"required", "in:draft,published"}},
		{Field: "views", Rules: []string{"nullable", "integer"}},
		{Field: "published_at", Rules: []string{"nullable", "date_format:Y-m-d H:i:s"}},
	}
	if diff := cmp.Diff(wantRules, req.Rules); diff != "" {
		t.Errorf("rules mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{
		"title.required", "title.string", "title.max",
		"user_id.required", "user_id.integer", "user_id.exists",
		"status.required", "status.in",
		"views.integer",
		"published_at.date_format",
	}, req.MessageKeys)
	assert.Len(t, req.Messages, len(req.MessageKeys))

	assert.Equal(t, []Normalizer{
		{Field: "title", Kind: NormalizeTrim},
		{Field: "user_id", Kind: NormalizeInt},
		{Field: "views", Kind: NormalizeInt},
		{Field: "published_at", Kind: NormalizeDateTime},
	}, req.Normalizers)
}

func TestAssembler_SkippedOnly(t *testing.T) {
	table := &schemas.Table{
		Name: "tags",
		Columns: []schemas.Column{
			column("id", schemas.TypeNameBigint, "bigint", false),
			column("created_at", schemas.TypeNameDatetime, "timestamp", true),
		},
	}
	req := NewAssembler(nil).Assemble("Tag", table)

	require.NotNil(t, req.Rules)
	assert.Empty(t, req.Rules)
	assert.Empty(t, req.Messages)
	assert.Empty(t, req.Normalizers)
}

func TestAssembler_MessageCollision(t *testing.T) {
	// the same column twice: the key keeps its first position, the text is the last one
	table := &schemas.Table{
		Name: "items",
		Columns: []schemas.Column{
			column("code", schemas.TypeNameVarchar, "varchar(10)", false),
			column("name", schemas.TypeNameText, "text", false),
			column("code", schemas.TypeNameVarchar, "varchar(20)", false),
		},
	}
	req := NewAssembler(nil).Assemble("Item", table)

	assert.Equal(t, []string{
		"code.required", "code.string", "code.max",
		"name.required", "name.string",
	}, req.MessageKeys)
	assert.Equal(t, "Code may not be greater than 20 characters.", req.Messages["code.max"])
	assert.Len(t, req.Rules, 3)
}

func TestAssembler_Deterministic(t *testing.T) {
	a := NewAssembler(nil)
	first := a.Assemble("Post", postsTable())
	second := a.Assemble("Post", postsTable())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("assemble is not deterministic (-first +second):\n%s", diff)
	}
}

func TestGeneratedRequest_OrderedMessages(t *testing.T) {
	req := &GeneratedRequest{
		Messages:    map[string]string{"b.required": "B", "a.required": "A"},
		MessageKeys: []string{"b.required", "a.required"},
	}
	assert.Equal(t, []Message{
		{Key: "b.required", Text: "B"},
		{Key: "a.required", Text: "A"},
	}, req.OrderedMessages())
}
