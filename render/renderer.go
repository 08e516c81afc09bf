// Package render turns normalized document blocks into HTML markup for rich
// text editing surfaces.
//
// Rendering is total: whatever shape input has, something renderable comes
// out. Renderer keeps no mutable state, so single instance may be used from
// many goroutines at once.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bdr/css"
	"bdr/document"
)

// Renderer renders documents.
type Renderer struct {
	opts Options
	log  *zap.Logger
}

// New creates renderer. Nil logger disables logging.
func New(opts Options, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{opts: opts.withDefaults(), log: log.Named("render")}
}

// Render renders document root of any supported shape with default options.
func Render(root any) string {
	return New(DefaultOptions(), nil).Render(root)
}

// Render resolves block list from root, renders every block and concatenates
// markup without separators. Root is a decoded document value (see
// document.Decode), plain Go maps and slices are accepted too.
func (r *Renderer) Render(root any) string {
	return r.serialize(r.Nodes(root))
}

// RenderJSON decodes data and renders it. Error is returned only when data
// is not JSON at all.
func (r *Renderer) RenderJSON(data []byte) (string, error) {
	root, err := document.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unable to render: %w", err)
	}
	return r.Render(root), nil
}

// Nodes resolves and renders root into list of sibling nodes.
func (r *Renderer) Nodes(root any) []*html.Node {
	raw := document.ResolveBlocks(document.FromNative(root))
	if len(raw) == 0 {
		r.log.Debug("Document has no recognizable blocks")
		return nil
	}
	return r.Blocks(document.NormalizeBlocks(raw, r.log))
}

// Blocks renders normalized blocks in order.
func (r *Renderer) Blocks(blocks []document.Block) []*html.Node {
	nodes := make([]*html.Node, 0, len(blocks))
	for i := range blocks {
		if n := r.block(&blocks[i]); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// Content renders either nested blocks or inline runs of c.
func (r *Renderer) Content(c document.Content) []*html.Node {
	if len(c.Blocks) > 0 {
		return r.Blocks(c.Blocks)
	}
	return r.Runs(c.Runs)
}

// Serialize writes nodes as HTML, escaping all text and attribute values.
func Serialize(nodes []*html.Node) (string, error) {
	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", fmt.Errorf("unable to serialize node %q: %w", n.Data, err)
		}
	}
	return sb.String(), nil
}

func (r *Renderer) serialize(nodes []*html.Node) string {
	out, err := Serialize(nodes)
	if err != nil {
		// tree is built here and never contains error nodes
		r.log.Debug("Serialization failed", zap.Error(err))
		return ""
	}
	return out
}

// flowSafe removes out of flow positioning from style of flow blocks.
func (r *Renderer) flowSafe(kind document.BlockKind, style string) string {
	if !kind.Flow() || style == "" {
		return style
	}
	safe := css.StripPositioning(style)
	if safe != style {
		r.log.Debug("Dropped positioning from flow block", zap.String("kind", string(kind)), zap.String("style", style))
	}
	return safe
}

func element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// setStyle adds style attribute unless style is empty.
func setStyle(n *html.Node, style string) *html.Node {
	if style != "" {
		n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: style})
	}
	return n
}

func appendAll(parent *html.Node, children []*html.Node) *html.Node {
	for _, c := range children {
		parent.AppendChild(c)
	}
	return parent
}
