package content

import (
	"fmt"

	"bdr/document"
	"bdr/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of prepared document. It exists solely for
// inspection of debug reports.
func (c *Content) String() string {
	if c == nil {
		return "<nil Content>"
	}

	tw := treeWriter{debug.NewTreeWriter()}
	tw.Line(0, "Document %q format=%s", c.SrcName, c.OutputFormat)
	tw.TextBlock(1, "Title", c.Title)
	tw.TextBlock(1, "Lang", c.Lang)
	if c.Page != nil {
		tw.TextBlock(1, "Page", c.Page.Rule())
	}
	if !c.Header.IsEmpty() {
		tw.content(1, "Header", c.Header)
	}
	tw.Line(1, "Blocks: %d", len(c.Blocks))
	for i := range c.Blocks {
		tw.block(2, i, &c.Blocks[i])
	}
	if !c.Footer.IsEmpty() {
		tw.content(1, "Footer", c.Footer)
	}
	return tw.String()
}

func (tw treeWriter) content(depth int, label string, c document.Content) {
	tw.Line(depth, "%s: runs=%d blocks=%d", label, len(c.Runs), len(c.Blocks))
	if text := c.PlainText(); text != "" {
		tw.TextBlock(depth+1, "Text", text)
	}
	for i := range c.Blocks {
		tw.block(depth+1, i, &c.Blocks[i])
	}
}

func (tw treeWriter) block(depth, idx int, b *document.Block) {
	head := fmt.Sprintf("[%d] %s", idx, b.Kind)
	if b.Type != "" && b.Type != string(b.Kind) {
		head += fmt.Sprintf(" (type %q)", b.Type)
	}

	switch b.Kind {
	case document.BlockHeading:
		tw.Line(depth, "%s level=%d", head, b.Level)
	case document.BlockImage:
		tw.Line(depth, "%s src=%q", head, b.Image.Src)
	case document.BlockCode:
		tw.Line(depth, "%s language=%q raw=%v", head, b.Code.Language, b.Code.IsRaw)
	case document.BlockEquation:
		tw.Line(depth, "%s", head)
		tw.TextBlock(depth+1, "Latex", b.Equation.Latex)
	case document.BlockList:
		tw.list(depth, head, b.List)
	case document.BlockTable:
		tw.Line(depth, "%s rows=%d header=%v banded=%v", head, len(b.Table.Rows), b.Table.HasHeaderRow, b.Table.BandedRows)
		for r, row := range b.Table.Rows {
			for c, cell := range row.Cells {
				tw.content(depth+1, fmt.Sprintf("Cell[%d,%d]", r, c), cell.Content)
			}
		}
	case document.BlockSectionBreak:
		tw.Line(depth, "%s orientation=%q", head, b.Section.Orientation)
	default:
		if b.Empty {
			tw.Line(depth, "%s empty", head)
		} else {
			tw.Line(depth, "%s", head)
		}
	}

	if text := b.Content.PlainText(); text != "" {
		tw.TextBlock(depth+1, "Text", text)
	}
}

func (tw treeWriter) list(depth int, head string, l *document.List) {
	tw.Line(depth, "%s ordered=%v items=%d", head, l.Ordered, len(l.Items))
	for i, item := range l.Items {
		tw.TextBlock(depth+1, fmt.Sprintf("Item[%d]", i), item.Content.PlainText())
		if item.Sub != nil {
			tw.list(depth+2, "Sub", item.Sub)
		}
	}
}
