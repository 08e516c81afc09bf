package render

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func paragraph(runs string) string {
	return `{"type":"paragraph","content":` + runs + `}`
}

func TestRender_TextRuns(t *testing.T) {
	tests := []struct {
		name string
		runs string
		want string
	}{
		{
			name: "subscript ignores other flags",
			runs: `[{"text":"2","subscript":true,"bold":true,"color":"red"}]`,
			want: `<p><sub>2</sub></p>`,
		},
		{
			name: "superscript",
			runs: `[{"text":"n","superscript":true,"italic":true}]`,
			want: `<p><sup>n</sup></p>`,
		},
		{
			name: "concatenation without whitespace",
			runs: `["a",{"text":"b","bold":true},"c"]`,
			want: `<p>a<span style="font-weight: bold">b</span>c</p>`,
		},
		{
			name: "declaration order and explicit style last",
			runs: `[{"style":{"fontSize":"14pt"},"fontSize":12,"fontFamily":"Arial","color":"red","strikethrough":true,"underline":"wavy","text":"t"}]`,
			want: `<p><span style="text-decoration-line: underline line-through; text-decoration-style: wavy; color: red; font-family: &#39;Arial&#39;; font-size: 12px; font-size: 14pt">t</span></p>`,
		},
		{
			name: "double strikethrough",
			runs: `[{"text":"t","strikethrough":"double","underlineColor":"green","highlight":"yellow"}]`,
			want: `<p><span style="text-decoration-line: line-through; text-decoration-style: double; text-decoration-color: green; background-color: yellow">t</span></p>`,
		},
		{
			name: "spacing and shadow",
			runs: `[{"text":"t","letterSpacing":1.5,"textShadow":"1px 1px #000"}]`,
			want: `<p><span style="letter-spacing: 1.5px; text-shadow: 1px 1px #000">t</span></p>`,
		},
		{
			name: "link supersedes formatting",
			runs: `[{"text":"go","bold":true,"link":"https://x.test/?a=1&b=2"}]`,
			want: `<p><a href="https://x.test/?a=1&amp;b=2" style="color: blue; text-decoration: underline">go</a></p>`,
		},
		{
			name: "link object with color",
			runs: `[{"text":"go","color":"green","link":{"url":"https://x.test"}}]`,
			want: `<p><a href="https://x.test" style="color: green; text-decoration: underline">go</a></p>`,
		},
		{
			name: "empty untyped run renders nothing",
			runs: `[{"text":""},"x"]`,
			want: `<p>x</p>`,
		},
		{
			name: "unknown run type renders bare text",
			runs: `[{"type":"sparkle","text":"odd","bold":true}]`,
			want: `<p>odd</p>`,
		},
		{
			name: "inline image",
			runs: `[{"type":"image","src":"a.png","alt":"A","style":{"width":16}}]`,
			want: `<p><img src="a.png" alt="A" style="display: inline-block; vertical-align: middle; width: 16px"/></p>`,
		},
		{
			name: "numbers become text",
			runs: `["n=",42]`,
			want: `<p>n=42</p>`,
		},
	}
	r := newTestRenderer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderString(t, r, paragraph(tt.runs)); got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestRender_FieldRuns(t *testing.T) {
	const span = `<span data-field="%s" contenteditable="false" style="background-color: #e8eaed; border-radius: 2px; padding: 0 2px">`
	tests := []struct {
		code string
		want string
	}{
		{"PAGE_NUMBER", "#"},
		{"TOTAL_PAGES", "##"},
		{"CURRENT_DATE", "3/5/2024"},
		{"AUTHOR", "[AUTHOR]"},
	}
	r := newTestRenderer(t)
	for _, tt := range tests {
		got := renderString(t, r, paragraph(`[{"type":"field","code":"`+tt.code+`"}]`))
		want := `<p>` + fmt.Sprintf(span, tt.code) + tt.want + `</span></p>`
		if got != want {
			t.Errorf("field %s:\ngot  %s\nwant %s", tt.code, got, want)
		}
	}

	// field detected by shape
	got := renderString(t, r, paragraph(`[{"code":"TOTAL_PAGES"}]`))
	if want := `<p>` + fmt.Sprintf(span, "TOTAL_PAGES") + `##</span></p>`; got != want {
		t.Errorf("untyped field: got %s", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		locale string
		want   string
	}{
		{"en-US", "3/5/2024"},
		{"en", "3/5/2024"},
		{"en-GB", "05/03/2024"},
		{"de-DE", "5.3.2024"},
		{"ru", "05.03.2024"},
		{"ja-JP", "2024/3/5"},
		{"nl", "5-3-2024"},
		{"", "3/5/2024"},
		{"not a locale!", "3/5/2024"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.locale, fixedNow); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.locale, got, tt.want)
		}
	}
}

func TestRender_CurrentDateLocale(t *testing.T) {
	opts := DefaultOptions()
	opts.Locale = "de"
	opts.Now = func() time.Time { return fixedNow }
	r := New(opts, nil)

	got := renderString(t, r, paragraph(`[{"type":"field","code":"CURRENT_DATE"}]`))
	if want := `>5.3.2024</span>`; !strings.Contains(got, want) {
		t.Errorf("got %s, want it to contain %s", got, want)
	}
}
