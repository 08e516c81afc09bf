package render

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bdr/css"
	"bdr/document"
)

const (
	codeStyle         = "background-color: #1e1e1e; color: #d4d4d4; padding: 12px; border-radius: 4px; overflow-x: auto; font-family: monospace"
	equationStyle     = "text-align: center; margin: 12px 0"
	sectionBreakStyle = "border-top: 2px dashed #9ca3af; margin: 24px 0; padding-top: 4px; text-align: center; color: #6b7280; font-size: 11px; user-select: none"
	pageBreakStyle    = "page-break-after: always; break-after: page; height: 0"
)

var headings = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// tableDefaults are added to table style unless already declared.
var tableDefaults = []css.Declaration{
	{Property: "border-collapse", Value: "collapse"},
	{Property: "width", Value: "100%"},
	{Property: "margin", Value: "12px 0"},
}

func (r *Renderer) block(b *document.Block) *html.Node {
	style := r.flowSafe(b.Kind, css.Join(css.StyleOf(b.Style), css.ResolveParagraph(b.ParagraphStyle)))

	switch b.Kind {
	case document.BlockHeading:
		level := min(max(b.Level, 1), 6)
		return appendAll(setStyle(element(headings[level-1]), style), r.Runs(b.Content.Runs))

	case document.BlockParagraph:
		return appendAll(setStyle(element(atom.P), style), r.Runs(b.Content.Runs))

	case document.BlockQuote:
		return appendAll(setStyle(element(atom.Blockquote), style), r.Runs(b.Content.Runs))

	case document.BlockImage:
		div := element(atom.Div, "style", "text-align: center")
		div.AppendChild(setStyle(element(atom.Img, "src", b.Image.Src, "alt", b.Image.Alt), style))
		return div

	case document.BlockCode:
		return r.code(b, style)

	case document.BlockEquation:
		div := element(atom.Div,
			"data-type", "equation",
			"data-latex", b.Equation.Latex,
			"contenteditable", "false",
			"style", css.Join(equationStyle, style),
		)
		div.AppendChild(textNode(b.Equation.Latex))
		return div

	case document.BlockList:
		return r.list(b.List, style)

	case document.BlockTable:
		return r.table(b.Table, style)

	case document.BlockSectionBreak:
		return sectionBreak(b.Section)

	case document.BlockPageBreak:
		return element(atom.Div, "data-type", "page-break", "class", "page-break", "style", pageBreakStyle)
	}

	if b.Empty {
		return nil
	}
	return appendAll(setStyle(element(atom.Div), style), r.Runs(b.Content.Runs))
}

func (r *Renderer) code(b *document.Block, style string) *html.Node {
	pre := element(atom.Pre, "style", css.Join(codeStyle, style))
	code := element(atom.Code)
	if b.Code.Language != "" {
		code.Attr = append(code.Attr, html.Attribute{Key: "class", Val: "language-" + b.Code.Language})
	}
	if b.Code.IsRaw {
		code.AppendChild(textNode(b.Code.Raw))
	} else {
		appendAll(code, r.Runs(b.Content.Runs))
	}
	pre.AppendChild(code)
	return pre
}

func (r *Renderer) list(l *document.List, style string) *html.Node {
	tag := atom.Ul
	if l.Ordered {
		tag = atom.Ol
	}
	if l.MarkerStyle != "" {
		style = css.Join("list-style-type: "+l.MarkerStyle, style)
	}

	list := setStyle(element(tag), style)
	for i := range l.Items {
		item := &l.Items[i]
		li := appendAll(element(atom.Li), r.Runs(item.Content.Runs))
		if item.Sub != nil {
			li.AppendChild(r.list(item.Sub, ""))
		}
		list.AppendChild(li)
	}
	return list
}

func (r *Renderer) table(t *document.Table, style string) *html.Node {
	table := setStyle(element(atom.Table), css.WithDefaults(style, tableDefaults...))

	if len(t.ColumnWidths) > 0 {
		colgroup := element(atom.Colgroup)
		for _, w := range t.ColumnWidths {
			col := element(atom.Col)
			if width := css.ResolveUnit(w); width != "" {
				setStyle(col, "width: "+width)
			}
			colgroup.AppendChild(col)
		}
		table.AppendChild(colgroup)
	}

	borderColor := t.BorderColor
	if borderColor == "" {
		borderColor = r.opts.BorderColor
	}

	tbody := element(atom.Tbody)
	for ri, row := range t.Rows {
		header := ri == 0 && t.HasHeaderRow
		tint := "transparent"
		switch {
		case header:
			tint = r.opts.HeaderTint
		case t.BandedRows && ri%2 == 0:
			tint = r.opts.BandTint
		}

		tr := element(atom.Tr)
		for ci := range row.Cells {
			tr.AppendChild(r.cell(&row.Cells[ci], header, borderColor, tint))
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)
	return table
}

func (r *Renderer) cell(c *document.Cell, header bool, borderColor, tint string) *html.Node {
	tag := atom.Td
	if header {
		tag = atom.Th
	}

	base := document.ObjectOf(
		"border", "1px solid "+borderColor,
		"padding", "8px",
		"backgroundColor", tint,
		"verticalAlign", "top",
	)
	var style string
	switch cs := c.Style.(type) {
	case *document.Object:
		style = css.StyleToString(base.Merge(cs))
	default:
		// declaration strings cannot be merged, cascade order does the job
		style = css.Join(css.StyleToString(base), css.StyleOf(cs))
	}

	cell := element(tag, "style", style)
	if c.ColSpan > 0 {
		cell.Attr = append(cell.Attr, html.Attribute{Key: "colspan", Val: strconv.Itoa(c.ColSpan)})
	}
	if c.RowSpan > 0 {
		cell.Attr = append(cell.Attr, html.Attribute{Key: "rowspan", Val: strconv.Itoa(c.RowSpan)})
	}
	return appendAll(cell, r.Content(c.Content))
}

func sectionBreak(s *document.SectionBreak) *html.Node {
	cfg := s.Config
	if cfg == nil {
		cfg = document.NewObject()
	}
	data, err := cfg.MarshalJSON()
	if err != nil {
		data = []byte("{}")
	}

	label := "Section Break"
	if s.Orientation != "" {
		label = strings.ToUpper(s.Orientation) + " Section"
	}

	div := element(atom.Div,
		"data-type", "section-break",
		"data-config", EncodeURIComponent(string(data)),
		"contenteditable", "false",
		"class", "section-break no-print",
		"style", sectionBreakStyle,
	)
	div.AppendChild(textNode(label))
	return div
}

// EncodeURIComponent percent-encodes everything except unreserved URI
// characters and !~*'() marks.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var sb strings.Builder
	sb.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(hex[c>>4])
		sb.WriteByte(hex[c&0x0f])
	}
	return sb.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
