package document

import (
	"testing"
)

func mustDecode(t *testing.T, s string) any {
	t.Helper()
	v, err := DecodeString(s)
	if err != nil {
		t.Fatalf("DecodeString(%s) error = %v", s, err)
	}
	return v
}

func blockTypes(blocks []any) []string {
	res := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if obj, ok := b.(*Object); ok {
			res = append(res, obj.StringOr("type", "?"))
		} else {
			res = append(res, "?")
		}
	}
	return res
}

func TestResolveBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "document blocks win over everything",
			input: `{"document": {"blocks": [{"type": "heading"}]}, "blocks": [{"type": "paragraph"}], "title": "T"}`,
			want:  []string{"heading"},
		},
		{
			name:  "root blocks",
			input: `{"blocks": [{"type": "paragraph"}, {"type": "table"}], "content": [{"type": "code"}]}`,
			want:  []string{"paragraph", "table"},
		},
		{
			name:  "document without blocks falls through",
			input: `{"document": {"title": "x"}, "blocks": [{"type": "list"}]}`,
			want:  []string{"list"},
		},
		{
			name:  "root array",
			input: `[{"type": "pageBreak"}, {"type": "paragraph"}]`,
			want:  []string{"pageBreak", "paragraph"},
		},
		{
			name:  "single block root",
			input: `{"type": "list", "items": ["a", "b"]}`,
			want:  []string{"list"},
		},
		{
			name:  "root content array",
			input: `{"content": [{"type": "equation"}]}`,
			want:  []string{"equation"},
		},
		{
			name:  "title and summary",
			input: `{"title": "Report", "summary": "All good", "other": "ignored"}`,
			want:  []string{"heading", "paragraph"},
		},
		{
			name:  "summary only",
			input: `{"summary": "All good"}`,
			want:  []string{"paragraph"},
		},
		{
			name:  "string fields collected",
			input: `{"a": "one", "n": 2, "b": "two"}`,
			want:  []string{"paragraph"},
		},
		{
			name:  "nothing usable",
			input: `{"n": 1, "list": [1, 2]}`,
			want:  []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := blockTypes(ResolveBlocks(mustDecode(t, tt.input)))
			if len(got) != len(tt.want) {
				t.Fatalf("ResolveBlocks() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ResolveBlocks()[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolveBlocks_Fallbacks(t *testing.T) {
	blocks := ResolveBlocks(mustDecode(t, `{"a": "one", "n": 2, "b": "two"}`))
	if len(blocks) != 1 {
		t.Fatalf("len = %d, want 1", len(blocks))
	}
	if got := blocks[0].(*Object).StringOr("content", ""); got != "one two" {
		t.Errorf("content = %q, want %q", got, "one two")
	}

	blocks = ResolveBlocks(mustDecode(t, `{"title": "Report"}`))
	heading := blocks[0].(*Object)
	level, _ := heading.Get("level")
	if lv, _ := Int(level); lv != 1 {
		t.Errorf("heading level = %d, want 1", lv)
	}
	if got := heading.StringOr("content", ""); got != "Report" {
		t.Errorf("heading content = %q", got)
	}

	blocks = ResolveBlocks("just text")
	if got := blocks[0].(*Object).StringOr("content", ""); got != "just text" {
		t.Errorf("string root content = %q", got)
	}

	if blocks := ResolveBlocks(nil); blocks != nil {
		t.Errorf("ResolveBlocks(nil) = %v, want nil", blocks)
	}
	if blocks := ResolveBlocks(true); blocks != nil {
		t.Errorf("ResolveBlocks(true) = %v, want nil", blocks)
	}
}
