package document

import (
	"strings"

	"go.uber.org/zap"
)

// Normalization turns loosely shaped producer output into validated blocks.
// It never fails: anything it cannot make sense of is dropped or degraded to
// plain text, and the reason is logged at debug level.

var blockKinds = map[string]BlockKind{
	"heading":      BlockHeading,
	"paragraph":    BlockParagraph,
	"image":        BlockImage,
	"code":         BlockCode,
	"equation":     BlockEquation,
	"list":         BlockList,
	"table":        BlockTable,
	"sectionbreak": BlockSectionBreak,
	"pagebreak":    BlockPageBreak,
	"blockquote":   BlockQuote,
	"quote":        BlockQuote,
}

var tagCleaner = strings.NewReplacer("_", "", "-", "", " ", "")

// TagKey folds producer type tag for matching: case and separators are
// ignored, so "page_settings", "pageSettings" and "Page Settings" are equal.
func TagKey(tag string) string {
	return strings.ToLower(tagCleaner.Replace(tag))
}

// KindOf maps producer type tag to block kind. Anything unknown is generic.
func KindOf(tag string) BlockKind {
	if k, ok := blockKinds[TagKey(tag)]; ok {
		return k
	}
	return BlockGeneric
}

// isBlockObject reports whether v looks like a block rather than a run. Image
// is ambiguous and is treated as a run in content position.
func isBlockObject(v any) bool {
	obj, ok := v.(*Object)
	if !ok {
		return false
	}
	tag, ok := obj.String("type")
	if !ok {
		return false
	}
	k := KindOf(tag)
	return k != BlockGeneric && k != BlockImage
}

type normalizer struct {
	log *zap.Logger
}

func newNormalizer(log *zap.Logger) *normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &normalizer{log: log}
}

// NormalizeBlocks normalizes raw block list. Entries which are not blocks are
// skipped, bare strings become paragraphs.
func NormalizeBlocks(raw []any, log *zap.Logger) []Block {
	return newNormalizer(log).blocks(raw)
}

// NormalizeBlock normalizes single raw block. Returns false when v cannot be
// a block at all.
func NormalizeBlock(v any, log *zap.Logger) (Block, bool) {
	return newNormalizer(log).block(v)
}

// NormalizeInline normalizes inline content. Nested blocks, if any, are
// flattened into their runs.
func NormalizeInline(v any, log *zap.Logger) Content {
	return newNormalizer(log).inline(v)
}

// NormalizeContent normalizes content which may hold either inline runs or
// nested blocks (table cells, header and footer regions).
func NormalizeContent(v any, log *zap.Logger) Content {
	return newNormalizer(log).content(v)
}

func (n *normalizer) blocks(raw []any) []Block {
	res := make([]Block, 0, len(raw))
	for _, v := range raw {
		if b, ok := n.block(v); ok {
			res = append(res, b)
		}
	}
	return res
}

func contentValue(obj *Object) (any, bool) {
	if obj.Present("content") {
		v, _ := obj.Get("content")
		return v, true
	}
	if obj.Present("text") {
		v, _ := obj.Get("text")
		return v, true
	}
	return nil, false
}

// styleValue returns style under key when it is a descriptor or a non blank
// declaration string.
func styleValue(obj *Object, key string) any {
	v, _ := obj.Get(key)
	switch t := v.(type) {
	case *Object:
		return t
	case string:
		if strings.TrimSpace(t) != "" {
			return t
		}
	}
	return nil
}

func (n *normalizer) block(v any) (Block, bool) {
	var obj *Object
	switch t := v.(type) {
	case *Object:
		obj = t
	case string:
		return Block{Kind: BlockParagraph, Content: Content{Runs: []Run{textRun(t)}}}, true
	default:
		n.log.Debug("Skipping block of unexpected shape", zap.Any("value", v))
		return Block{}, false
	}

	tag, _ := obj.String("type")
	b := Block{
		Kind:           KindOf(tag),
		Type:           tag,
		Style:          styleValue(obj, "style"),
		ParagraphStyle: obj.Object("paragraphStyle"),
	}

	switch b.Kind {
	case BlockHeading:
		b.Level = n.headingLevel(obj)
		if c, ok := contentValue(obj); ok {
			b.Content = n.inline(c)
		}
	case BlockParagraph, BlockQuote:
		if c, ok := contentValue(obj); ok {
			b.Content = n.inline(c)
		}
	case BlockImage:
		b.Image = &Image{Src: obj.StringOr("src", obj.StringOr("url", "")), Alt: obj.StringOr("alt", "")}
	case BlockCode:
		b.Code = &Code{Language: obj.StringOr("language", "")}
		c, _ := contentValue(obj)
		if s, ok := c.(string); ok {
			b.Code.Raw, b.Code.IsRaw = s, true
		} else {
			b.Content = n.inline(c)
		}
	case BlockEquation:
		latex, ok := obj.String("latex")
		if !ok {
			latex, _ = obj.String("content")
		}
		b.Equation = &Equation{Latex: latex}
	case BlockList:
		b.List = n.list(obj, nil)
	case BlockTable:
		b.Table = n.table(obj)
	case BlockSectionBreak:
		cfg := obj.Object("config")
		b.Section = &SectionBreak{Config: cfg, Orientation: cfg.StringOr("orientation", "")}
	case BlockPageBreak:
	default:
		c, ok := contentValue(obj)
		if !ok {
			n.log.Debug("Block of unknown type without content, ignoring", zap.String("type", tag))
			b.Empty = true
			break
		}
		n.log.Debug("Rendering block of unknown type as generic", zap.String("type", tag))
		b.Content = n.inline(c)
	}
	return b, true
}

func (n *normalizer) headingLevel(obj *Object) int {
	v, _ := obj.Get("level")
	level, ok := Int(v)
	if !ok {
		if v != nil {
			n.log.Debug("Invalid heading level, using 1", zap.Any("level", v))
		}
		return 1
	}
	if clamped := min(max(level, 1), 6); clamped != level {
		n.log.Debug("Heading level clamped", zap.Int("level", level), zap.Int("clamped", clamped))
		return clamped
	}
	return level
}

func isOrderedType(lt string) bool {
	switch strings.ToLower(lt) {
	case "ordered", "numbered", "number", "ol":
		return true
	}
	return false
}

// list normalizes list block. When parent is set the list is nested and
// inherits parent's list type.
func (n *normalizer) list(obj *Object, parent *List) *List {
	l := &List{MarkerStyle: obj.StringOr("markerStyle", "")}
	if parent != nil {
		l.Ordered = parent.Ordered
	} else {
		l.Ordered = isOrderedType(obj.StringOr("listType", ""))
	}

	items, _ := obj.Array("items")
	l.Items = make([]ListItem, 0, len(items))
	for _, v := range items {
		l.Items = append(l.Items, n.listItem(v, l))
	}
	return l
}

func (n *normalizer) listItem(v any, parent *List) ListItem {
	obj, ok := v.(*Object)
	if !ok {
		return ListItem{Content: n.inline(v)}
	}

	var li ListItem
	if c, ok := obj.Get("content"); ok {
		li.Content = n.inline(c)
	} else {
		// item itself is a run
		li.Content = n.inline(obj)
	}

	switch sub := obj.values["subItems"].(type) {
	case *Object:
		li.Sub = n.list(sub, parent)
	case []any:
		li.Sub = n.list(ObjectOf("items", sub), parent)
	}
	return li
}

func (n *normalizer) table(obj *Object) *Table {
	cfg := obj.Object("config")
	lookup := func(key string) any {
		if v, ok := cfg.Get(key); ok {
			return v
		}
		v, _ := obj.Get(key)
		return v
	}

	t := &Table{
		HasHeaderRow: Truthy(lookup("hasHeaderRow")),
		BandedRows:   Truthy(lookup("bandedRows")),
	}
	if widths, ok := lookup("columnWidths").([]any); ok {
		t.ColumnWidths = widths
	}
	if bc, ok := lookup("borderColor").(string); ok {
		t.BorderColor = bc
	}

	rows, _ := obj.Array("rows")
	for _, rv := range rows {
		var cells []any
		switch r := rv.(type) {
		case *Object:
			cells, _ = r.Array("cells")
		case []any:
			cells = r
		default:
			n.log.Debug("Skipping table row of unexpected shape", zap.Any("row", rv))
			continue
		}
		row := Row{Cells: make([]Cell, 0, len(cells))}
		for _, cv := range cells {
			row.Cells = append(row.Cells, n.cell(cv))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (n *normalizer) cell(v any) Cell {
	obj, ok := v.(*Object)
	if !ok {
		return Cell{Content: n.inline(v)}
	}
	c := Cell{Style: styleValue(obj, "style")}
	if cv, ok := contentValue(obj); ok {
		c.Content = n.content(cv)
	}
	if span, ok := Int(obj.values["colSpan"]); ok && span > 0 {
		c.ColSpan = span
	}
	if span, ok := Int(obj.values["rowSpan"]); ok && span > 0 {
		c.RowSpan = span
	}
	return c
}

func (n *normalizer) content(v any) Content {
	switch t := v.(type) {
	case *Object:
		if isBlockObject(t) {
			b, _ := n.block(t)
			return Content{Blocks: []Block{b}}
		}
	case []any:
		if containsBlock(t) {
			return Content{Blocks: n.blocks(t)}
		}
	}
	return n.inline(v)
}

func containsBlock(items []any) bool {
	for _, item := range items {
		if isBlockObject(item) {
			return true
		}
	}
	return false
}

func (n *normalizer) inline(v any) Content {
	var runs []Run
	switch t := v.(type) {
	case nil:
		return Content{}
	case []any:
		runs = make([]Run, 0, len(t))
		for _, item := range t {
			runs = append(runs, n.inlineItem(item)...)
		}
	default:
		runs = n.inlineItem(t)
	}
	return Content{Runs: runs}
}

func (n *normalizer) inlineItem(v any) []Run {
	switch t := v.(type) {
	case nil:
		return nil
	case *Object:
		if isBlockObject(t) {
			// flatten misplaced block into its runs
			b, _ := n.block(t)
			return b.Content.Runs
		}
		return []Run{n.run(t)}
	case []any:
		return n.inline(t).Runs
	}
	if s := Text(v); s != "" {
		return []Run{textRun(s)}
	}
	return nil
}

func textRun(s string) Run {
	return Run{Kind: RunText, Text: &TextRun{Text: s}}
}

func (n *normalizer) run(obj *Object) Run {
	tag, typed := obj.String("type")
	switch strings.ToLower(tag) {
	case "field":
		return fieldRun(obj)
	case "image":
		return imageRun(obj)
	case "text":
		r := formattedRun(obj)
		r.Text.Typed = true
		return r
	case "":
		switch {
		case obj.Present("code") && !obj.Has("text"):
			return fieldRun(obj)
		case obj.Present("src") && !obj.Has("text"):
			return imageRun(obj)
		}
		return formattedRun(obj)
	}
	n.log.Debug("Unknown run type, rendering bare text", zap.String("type", tag))
	v, _ := obj.Get("text")
	return Run{Kind: RunText, Text: &TextRun{Text: Text(v), Typed: typed}}
}

func fieldRun(obj *Object) Run {
	v, _ := obj.Get("code")
	return Run{Kind: RunField, Field: &FieldRun{Code: Text(v)}}
}

func imageRun(obj *Object) Run {
	return Run{Kind: RunImage, Image: &ImageRun{
		Src:   obj.StringOr("src", ""),
		Alt:   obj.StringOr("alt", ""),
		Style: styleValue(obj, "style"),
	}}
}

func formattedRun(obj *Object) Run {
	text, _ := obj.Get("text")
	underline, _ := obj.Get("underline")
	strike, _ := obj.Get("strikethrough")

	tr := &TextRun{
		Text:           Text(text),
		Bold:           obj.Truthy("bold"),
		Italic:         obj.Truthy("italic"),
		Underline:      Truthy(underline),
		Wavy:           underline == "wavy",
		Strikethrough:  Truthy(strike),
		Double:         strike == "double",
		Subscript:      obj.Truthy("subscript"),
		Superscript:    obj.Truthy("superscript"),
		UnderlineColor: obj.StringOr("underlineColor", ""),
		Color:          obj.StringOr("color", ""),
		Highlight:      obj.StringOr("highlight", ""),
		FontFamily:     obj.StringOr("fontFamily", ""),
		TextShadow:     obj.StringOr("textShadow", ""),
		Style:          styleValue(obj, "style"),
	}
	if obj.Present("fontSize") {
		tr.FontSize = obj.values["fontSize"]
	}
	if obj.Present("letterSpacing") {
		tr.LetterSpacing = obj.values["letterSpacing"]
	}

	switch link := obj.values["link"].(type) {
	case string:
		tr.Link = link
	case *Object:
		tr.Link = link.StringOr("url", link.StringOr("href", ""))
	}
	tr.HasLink = tr.Link != ""

	return Run{Kind: RunText, Text: tr}
}
