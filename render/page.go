package render

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page is complete standalone document around rendered markup.
type Page struct {
	Title  string
	Lang   string
	CSS    string
	Header []*html.Node
	Body   []*html.Node
	Footer []*html.Node
}

func (p *Page) lang() string {
	if p.Lang == "" {
		return "en"
	}
	return p.Lang
}

// WriteHTML writes page as HTML5 document.
func (p *Page) WriteHTML(w io.Writer) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html, "lang", p.lang())
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	title := element(atom.Title)
	title.AppendChild(textNode(p.Title))
	head.AppendChild(title)
	if p.CSS != "" {
		style := element(atom.Style)
		style.AppendChild(textNode(p.CSS))
		head.AppendChild(style)
	}
	root.AppendChild(head)

	body := element(atom.Body)
	if len(p.Header) > 0 {
		body.AppendChild(appendAll(element(atom.Header), p.Header))
	}
	body.AppendChild(appendAll(element(atom.Main), p.Body))
	if len(p.Footer) > 0 {
		body.AppendChild(appendAll(element(atom.Footer), p.Footer))
	}
	root.AppendChild(body)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("unable to write html page: %w", err)
	}
	return nil
}

// XHTML builds page as well formed XHTML document.
func (p *Page) XHTML() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(`DOCTYPE html`)

	root := doc.CreateElement("html")
	root.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	root.CreateAttr("xml:lang", p.lang())

	head := root.CreateElement("head")
	meta := head.CreateElement("meta")
	meta.CreateAttr("http-equiv", "Content-Type")
	meta.CreateAttr("content", "text/html; charset=utf-8")
	head.CreateElement("title").SetText(p.Title)
	if p.CSS != "" {
		style := head.CreateElement("style")
		style.CreateAttr("type", "text/css")
		style.SetText(p.CSS)
	}

	body := root.CreateElement("body")
	if len(p.Header) > 0 {
		appendXHTML(body.CreateElement("header"), p.Header)
	}
	appendXHTML(body.CreateElement("main"), p.Body)
	if len(p.Footer) > 0 {
		appendXHTML(body.CreateElement("footer"), p.Footer)
	}
	return doc
}

// WriteXHTML writes page as XHTML document.
func (p *Page) WriteXHTML(w io.Writer) error {
	if _, err := p.XHTML().WriteTo(w); err != nil {
		return fmt.Errorf("unable to write xhtml page: %w", err)
	}
	return nil
}

// appendXHTML copies html node tree under parent. Text goes into element
// text or into tail of the preceding child element.
func appendXHTML(parent *etree.Element, nodes []*html.Node) {
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			el := parent.CreateElement(n.Data)
			for _, a := range n.Attr {
				el.CreateAttr(a.Key, a.Val)
			}
			var children []*html.Node
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				children = append(children, c)
			}
			appendXHTML(el, children)
		case html.TextNode:
			appendXHTMLText(parent, n.Data)
		}
	}
}

func appendXHTMLText(parent *etree.Element, text string) {
	children := parent.ChildElements()
	if len(children) == 0 {
		parent.SetText(parent.Text() + text)
		return
	}
	last := children[len(children)-1]
	last.SetTail(last.Tail() + text)
}
