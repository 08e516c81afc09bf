package render

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bdr/css"
	"bdr/document"
)

const (
	fieldStyle       = "background-color: #e8eaed; border-radius: 2px; padding: 0 2px"
	inlineImageStyle = "display: inline-block; vertical-align: middle"
)

// Runs renders inline runs in order, no whitespace is inserted between them.
func (r *Renderer) Runs(runs []document.Run) []*html.Node {
	nodes := make([]*html.Node, 0, len(runs))
	for i := range runs {
		if n := r.run(&runs[i]); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

func (r *Renderer) run(run *document.Run) *html.Node {
	switch run.Kind {
	case document.RunField:
		return r.fieldRun(run.Field)
	case document.RunImage:
		return imageRun(run.Image)
	case document.RunText:
		return r.textRun(run.Text)
	}
	return nil
}

// FieldText returns display text of a field code.
func (r *Renderer) FieldText(code string) string {
	switch code {
	case document.FieldPageNumber:
		return "#"
	case document.FieldTotalPages:
		return "##"
	case document.FieldCurrentDate:
		return FormatDate(r.opts.Locale, r.opts.Now())
	}
	return "[" + code + "]"
}

func (r *Renderer) fieldRun(f *document.FieldRun) *html.Node {
	span := element(atom.Span, "data-field", f.Code, "contenteditable", "false", "style", fieldStyle)
	span.AppendChild(textNode(r.FieldText(f.Code)))
	return span
}

func imageRun(img *document.ImageRun) *html.Node {
	return element(atom.Img,
		"src", img.Src,
		"alt", img.Alt,
		"style", css.Join(inlineImageStyle, css.StyleOf(img.Style)),
	)
}

func (r *Renderer) textRun(tr *document.TextRun) *html.Node {
	explicitStyle := css.StyleOf(tr.Style)
	if tr.Text == "" && explicitStyle == "" && !tr.Typed {
		return nil
	}

	// sub/superscript short-circuits every other formatting flag
	switch {
	case tr.Subscript:
		return appendAll(element(atom.Sub), []*html.Node{textNode(tr.Text)})
	case tr.Superscript:
		return appendAll(element(atom.Sup), []*html.Node{textNode(tr.Text)})
	}

	decls := runDeclarations(tr)
	if explicitStyle != "" {
		decls = append(decls, explicitStyle)
	}

	if tr.HasLink {
		color := tr.Color
		if color == "" {
			color = r.opts.LinkColor
		}
		a := element(atom.A, "href", tr.Link, "style", "color: "+color+"; text-decoration: underline")
		a.AppendChild(textNode(tr.Text))
		return a
	}

	if len(decls) == 0 {
		return textNode(tr.Text)
	}
	span := element(atom.Span, "style", strings.Join(decls, "; "))
	span.AppendChild(textNode(tr.Text))
	return span
}

// runDeclarations collects convenience formatting in fixed order.
func runDeclarations(tr *document.TextRun) []string {
	var decls []string
	if tr.Bold {
		decls = append(decls, "font-weight: bold")
	}
	if tr.Italic {
		decls = append(decls, "font-style: italic")
	}

	var lines []string
	if tr.Underline {
		lines = append(lines, "underline")
	}
	if tr.Strikethrough {
		lines = append(lines, "line-through")
	}
	if len(lines) > 0 {
		decls = append(decls, "text-decoration-line: "+strings.Join(lines, " "))
		switch {
		case tr.Wavy:
			decls = append(decls, "text-decoration-style: wavy")
		case tr.Double:
			decls = append(decls, "text-decoration-style: double")
		}
	}

	if tr.UnderlineColor != "" {
		decls = append(decls, "text-decoration-color: "+tr.UnderlineColor)
	}
	if tr.Color != "" {
		decls = append(decls, "color: "+tr.Color)
	}
	if tr.Highlight != "" {
		decls = append(decls, "background-color: "+tr.Highlight)
	}
	if ff := strings.Trim(strings.TrimSpace(tr.FontFamily), `'"`); ff != "" {
		decls = append(decls, "font-family: '"+ff+"'")
	}
	if fs := css.ResolveUnit(tr.FontSize); fs != "" {
		decls = append(decls, "font-size: "+fs)
	}
	if ls := css.ResolveUnit(tr.LetterSpacing); ls != "" {
		decls = append(decls, "letter-spacing: "+ls)
	}
	if tr.TextShadow != "" {
		decls = append(decls, "text-shadow: "+tr.TextShadow)
	}
	return decls
}
