package content

import (
	"archive/zip"
	"context"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"bdr/common"
	"bdr/config"
	"bdr/document"
	"bdr/state"
)

func prepare(t *testing.T, input string) *Content {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	c, err := Prepare(ctx, strings.NewReader(input), "docs/report.json", common.OutputFmtHtml, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	return c
}

func TestPrepare(t *testing.T) {
	c := prepare(t, `{
		"title": " Quarterly report ",
		"language": "de-DE",
		"header": "Confidential",
		"footer": [{"text":"Page "},{"type":"field","code":"PAGE_NUMBER"}],
		"blocks": [
			{"type":"page_settings","config":{"size":"A4","orientation":"Landscape","margins":{"top":10,"right":"2cm","bottom":10,"left":20}}},
			{"type":"heading","level":1,"content":"Results"},
			{"type":"paragraph","content":"Body"}
		]
	}`)

	if c.SrcName != "docs/report.json" || c.OutputFormat != common.OutputFmtHtml {
		t.Errorf("unexpected source info: %q %s", c.SrcName, c.OutputFormat)
	}
	if c.Title != "Quarterly report" {
		t.Errorf("Title = %q", c.Title)
	}
	if c.Lang != "de-DE" {
		t.Errorf("Lang = %q, want de-DE", c.Lang)
	}
	if len(c.Blocks) != 2 || c.Blocks[0].Kind != document.BlockHeading || c.Blocks[1].Kind != document.BlockParagraph {
		t.Fatalf("page settings were not extracted from blocks: %+v", c.Blocks)
	}
	if want := "@page { size: A4 landscape; margin: 10px 2cm 10px 20px }"; c.Page.Rule() != want {
		t.Errorf("Rule() = %q, want %q", c.Page.Rule(), want)
	}
	if c.Header.PlainText() != "Confidential" {
		t.Errorf("Header = %+v", c.Header)
	}
	if len(c.Footer.Runs) != 2 || c.Footer.Runs[1].Kind != document.RunField {
		t.Errorf("Footer = %+v", c.Footer)
	}
}

func TestPrepare_ReportData(t *testing.T) {
	tests := []struct {
		name   string
		report bool
	}{
		{"without report", false},
		{"with report", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := state.ContextWithEnv(context.Background())
			env := state.EnvFromContext(ctx)

			dest := filepath.Join(t.TempDir(), "report.zip")
			if tt.report {
				rpt, err := (&config.ReporterConfig{Destination: dest}).Prepare()
				if err != nil {
					t.Fatalf("Prepare() report error = %v", err)
				}
				env.Rpt = rpt
			}

			c, err := Prepare(ctx, strings.NewReader(`{"blocks":[{"type":"paragraph","content":"x"}]}`), "in/doc.json", common.OutputFmtHtml, zaptest.NewLogger(t))
			if err != nil {
				t.Fatalf("Prepare() error = %v", err)
			}
			if len(c.Blocks) != 1 {
				t.Fatalf("Blocks = %+v", c.Blocks)
			}
			if !tt.report {
				return
			}

			if err := env.Rpt.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}
			zr, err := zip.OpenReader(dest)
			if err != nil {
				t.Fatalf("failed to open report: %v", err)
			}
			defer zr.Close()

			var names []string
			for _, f := range zr.File {
				names = append(names, f.Name)
			}
			for _, want := range []string{"doc.json", "doc.json_prepared.txt"} {
				if !slices.Contains(names, want) {
					t.Errorf("report entries %v do not contain %s", names, want)
				}
			}
		})
	}
}

func TestPrepare_NestedDocument(t *testing.T) {
	c := prepare(t, `{"document":{"title":"Inner","header":"H","blocks":[{"type":"pageSettings","config":{"size":{"width":800,"height":"11in"}}},"text"]}}`)
	if c.Title != "Inner" {
		t.Errorf("Title = %q, want Inner", c.Title)
	}
	if c.Header.PlainText() != "H" {
		t.Errorf("Header = %+v", c.Header)
	}
	if want := "@page { size: 800px 11in }"; c.Page.Rule() != want {
		t.Errorf("Rule() = %q, want %q", c.Page.Rule(), want)
	}
	if len(c.Blocks) != 1 {
		t.Errorf("Blocks = %d, want 1", len(c.Blocks))
	}
}

func TestPrepare_TitleFromHeading(t *testing.T) {
	c := prepare(t, `[{"type":"paragraph","content":"x"},{"type":"heading","content":[{"text":"First "},{"text":"heading","bold":true}]},{"type":"heading","content":"Second"}]`)
	if c.Title != "First heading" {
		t.Errorf("Title = %q, want %q", c.Title, "First heading")
	}
	if c.Page != nil {
		t.Errorf("Page = %+v, want nil", c.Page)
	}
	if c.Page.Rule() != "" {
		t.Errorf("nil page Rule() = %q", c.Page.Rule())
	}
}

func TestPrepare_PageSettingsEdgeCases(t *testing.T) {
	c := prepare(t, `{"blocks":[
		{"type":"page_settings","config":{"orientation":"sideways","margins":5}},
		{"type":"page_settings","config":{"size":"letter"}}
	],"language":"not a language!"}`)

	if c.Page == nil {
		t.Fatal("Page is nil")
	}
	if c.Page.HasOrientation {
		t.Errorf("unknown orientation accepted: %+v", c.Page)
	}
	// first settings win
	if want := "@page { margin: 5px }"; c.Page.Rule() != want {
		t.Errorf("Rule() = %q, want %q", c.Page.Rule(), want)
	}
	if len(c.Blocks) != 0 {
		t.Errorf("Blocks = %d, want 0", len(c.Blocks))
	}
	if c.Lang != "" {
		t.Errorf("invalid language kept: %q", c.Lang)
	}

	c = prepare(t, `[{"type":"page_settings"}]`)
	if c.Page == nil || c.Page.Rule() != "" {
		t.Errorf("empty page settings = %+v", c.Page)
	}
}

func TestPrepare_Errors(t *testing.T) {
	ctx := state.ContextWithEnv(context.Background())
	if _, err := Prepare(ctx, strings.NewReader(`{"blocks": [`), "bad.json", common.OutputFmtHtml, zaptest.NewLogger(t)); err == nil {
		t.Error("expected error for truncated JSON")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := Prepare(cancelled, strings.NewReader(`{}`), "a.json", common.OutputFmtHtml, zaptest.NewLogger(t)); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestContent_String(t *testing.T) {
	c := prepare(t, `{"title":"T","footer":"F","blocks":[
		{"type":"page_settings","config":{"size":"A4"}},
		{"type":"heading","level":2,"content":"H"},
		{"type":"list","listType":"ordered","items":["a",{"content":"b","subItems":["c"]}]},
		{"type":"table","config":{"hasHeaderRow":true},"rows":[["x","y"]]},
		{"type":"equation","latex":"x^2"},
		{"type":"callout"}
	]}`)

	out := c.String()
	wants := []string{
		`Document "docs/report.json" format=html`,
		`  Title: "T"`,
		`  Page: "@page { size: A4 }"`,
		`  Blocks: 5`,
		`    [0] heading level=2`,
		`    [1] list ordered=true items=2`,
		`        Sub ordered=true items=1`,
		`    [2] table rows=1 header=true banded=false`,
		`      Cell[0,1]: runs=1 blocks=0`,
		`      Latex: "x^2"`,
		`    [4] generic (type "callout") empty`,
		`  Footer: runs=1 blocks=0`,
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("String() output\n%s\ndoes not contain\n%s", out, want)
		}
	}

	var nilContent *Content
	if nilContent.String() != "<nil Content>" {
		t.Error("nil Content String() mismatch")
	}
}
