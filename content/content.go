// Package content prepares raw JSON document for rendering: it decodes
// source, resolves and normalizes blocks and collects what page assembly
// needs around them (title, language, page setup, header and footer).
package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"bdr/common"
	"bdr/css"
	"bdr/document"
	"bdr/state"
)

// Content encapsulates decoded source document together with normalized
// block model derived from it.
type Content struct {
	SrcName      string
	OutputFormat common.OutputFmt

	Root   any
	Title  string
	Lang   string
	Page   *PageSetup
	Header document.Content
	Footer document.Content
	Blocks []document.Block
}

// PageSetup is page geometry requested by page settings pseudo-block.
type PageSetup struct {
	Size           string
	Orientation    common.Orientation
	HasOrientation bool
	Margin         string
}

// Rule returns @page rule for page setup or empty string when there is
// nothing to set.
func (p *PageSetup) Rule() string {
	if p == nil {
		return ""
	}
	var decls []string
	size := p.Size
	if p.HasOrientation {
		size = strings.TrimSpace(size + " " + p.Orientation.String())
	}
	if size != "" {
		decls = append(decls, "size: "+size)
	}
	if p.Margin != "" {
		decls = append(decls, "margin: "+p.Margin)
	}
	if len(decls) == 0 {
		return ""
	}
	return "@page { " + strings.Join(decls, "; ") + " }"
}

const pageSettingsKey = "pagesettings"

// Prepare reads, decodes and prepares JSON document for rendering.
func Prepare(ctx context.Context, r io.Reader, srcName string, outputFormat common.OutputFmt, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}

	baseSrcName := filepath.Base(srcName)
	env.Rpt.StoreData(baseSrcName, data)

	root, err := document.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	c := &Content{
		SrcName:      srcName,
		OutputFormat: outputFormat,
		Root:         root,
	}

	var kept []any
	for _, raw := range document.ResolveBlocks(root) {
		settings, ok := pageSettings(raw)
		if !ok {
			kept = append(kept, raw)
			continue
		}
		if c.Page != nil {
			log.Debug("Ignoring repeated page settings", zap.String("file", srcName))
			continue
		}
		c.Page = preparePage(settings.Object("config"), log)
	}
	c.Blocks = document.NormalizeBlocks(kept, log)

	if obj, ok := root.(*document.Object); ok {
		c.Title = firstString(obj, "title")
		c.Lang = documentLang(obj, log)
		if v, ok := lookup(obj, "header"); ok {
			c.Header = document.NormalizeContent(v, log)
		}
		if v, ok := lookup(obj, "footer"); ok {
			c.Footer = document.NormalizeContent(v, log)
		}
	}
	if c.Title == "" {
		c.Title = headingTitle(c.Blocks)
	}

	env.Rpt.StoreData(baseSrcName+"_prepared.txt", []byte(c.String()))
	return c, nil
}

func pageSettings(v any) (*document.Object, bool) {
	obj, ok := v.(*document.Object)
	if !ok {
		return nil, false
	}
	tag, _ := obj.String("type")
	return obj, document.TagKey(tag) == pageSettingsKey
}

func preparePage(cfg *document.Object, log *zap.Logger) *PageSetup {
	p := &PageSetup{}
	if cfg == nil {
		return p
	}

	switch size, _ := cfg.Get("size"); t := size.(type) {
	case string:
		p.Size = strings.TrimSpace(t)
	case *document.Object:
		w, _ := t.Get("width")
		h, _ := t.Get("height")
		if w, h := css.ResolveUnit(w), css.ResolveUnit(h); w != "" && h != "" {
			p.Size = w + " " + h
		}
	}

	if o, ok := cfg.String("orientation"); ok {
		if orientation, err := common.ParseOrientation(strings.ToLower(strings.TrimSpace(o))); err == nil {
			p.Orientation, p.HasOrientation = orientation, true
		} else {
			log.Debug("Ignoring unknown page orientation", zap.String("orientation", o))
		}
	}

	if margins, ok := cfg.Get("margins"); ok {
		p.Margin = strings.TrimPrefix(css.ResolvePadding(margins), "padding: ")
	}
	return p
}

// lookup finds key on document root or under root.document.
func lookup(root *document.Object, key string) (any, bool) {
	if v, ok := root.Get(key); ok && v != nil {
		return v, true
	}
	if v, ok := root.Object("document").Get(key); ok && v != nil {
		return v, true
	}
	return nil, false
}

func firstString(root *document.Object, keys ...string) string {
	for _, key := range keys {
		if v, ok := lookup(root, key); ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func documentLang(root *document.Object, log *zap.Logger) string {
	raw := firstString(root, "language", "lang")
	if raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		log.Debug("Ignoring invalid document language", zap.String("language", raw), zap.Error(err))
		return ""
	}
	return tag.String()
}

func headingTitle(blocks []document.Block) string {
	for i := range blocks {
		if blocks[i].Kind == document.BlockHeading {
			if t := strings.TrimSpace(blocks[i].Content.PlainText()); t != "" {
				return t
			}
		}
	}
	return ""
}
