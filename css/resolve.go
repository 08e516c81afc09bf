// Package css turns style descriptors of the document model into inline CSS
// declaration strings and post-processes such strings.
//
// All functions here are total: missing or malformed descriptor fields are
// omitted from output, never replaced with something that could break the
// cascade.
package css

import (
	"strings"
	"unicode"

	"bdr/document"
)

// sizeProperties get implicit "px" when their value is a bare number.
var sizeProperties = map[string]bool{
	"width":          true,
	"height":         true,
	"font-size":      true,
	"margin":         true,
	"padding":        true,
	"border-width":   true,
	"top":            true,
	"left":           true,
	"right":          true,
	"bottom":         true,
	"spacing":        true,
	"letter-spacing": true,
	"indent":         true,
}

// KebabCase converts camelCase property name to CSS form: fontSize ->
// font-size. Names already in kebab-case are returned as is.
func KebabCase(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// StyleToString converts style descriptor into declaration string keeping
// descriptor key order.
func StyleToString(style *document.Object) string {
	if style.Len() == 0 {
		return ""
	}

	parts := make([]string, 0, style.Len())
	for _, key := range style.Keys() {
		v, _ := style.Get(key)
		name := KebabCase(key)

		switch t := v.(type) {
		case bool:
			switch name {
			case "bold":
				if t {
					parts = append(parts, "font-weight: bold")
				}
			case "italic":
				if t {
					parts = append(parts, "font-style: italic")
				}
			default:
				parts = append(parts, name+": "+document.Text(t))
			}
			continue
		case string:
			if s := strings.TrimSpace(t); s != "" {
				parts = append(parts, name+": "+s)
			}
			continue
		}

		if f, ok := document.Number(v); ok {
			value := document.FormatNumber(f)
			if sizeProperties[name] {
				value += "px"
			}
			parts = append(parts, name+": "+value)
		}
		// null, objects and arrays have no declaration form
	}
	return strings.Join(parts, "; ")
}

// StyleOf accepts either style descriptor or already formatted declaration
// string.
func StyleOf(style any) string {
	switch t := style.(type) {
	case *document.Object:
		return StyleToString(t)
	case string:
		return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(t), ";"))
	}
	return ""
}

// ResolveUnit formats size value: numbers get "px", strings are passed
// through, anything else is empty.
func ResolveUnit(v any) string {
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	if f, ok := document.Number(v); ok {
		return document.FormatNumber(f) + "px"
	}
	return ""
}

var borderSides = []string{"top", "bottom", "left", "right"}

// ResolveBorders produces border declarations for each side with a
// descriptor. Width defaults to 1px, style to solid and color to black.
func ResolveBorders(borders *document.Object) string {
	var parts []string
	for _, side := range borderSides {
		desc := borders.Object(side)
		if desc == nil {
			continue
		}
		width, _ := desc.Get("width")
		w := ResolveUnit(width)
		if w == "" {
			w = "1px"
		}
		parts = append(parts, "border-"+side+": "+w+" "+desc.StringOr("style", "solid")+" "+desc.StringOr("color", "#000000"))
	}
	return strings.Join(parts, "; ")
}

// ResolvePadding handles scalar padding and per side descriptor, absent
// sides are 0px.
func ResolvePadding(padding any) string {
	if obj, ok := padding.(*document.Object); ok {
		sides := make([]string, 0, 4)
		for _, side := range []string{"top", "right", "bottom", "left"} {
			v, _ := obj.Get(side)
			u := ResolveUnit(v)
			if u == "" {
				u = "0px"
			}
			sides = append(sides, u)
		}
		return "padding: " + strings.Join(sides, " ")
	}
	if u := ResolveUnit(padding); u != "" {
		return "padding: " + u
	}
	return ""
}

// ResolveIndent maps indent descriptor to margins and text indent.
func ResolveIndent(indent *document.Object) string {
	var parts []string
	for _, m := range []struct{ key, property string }{
		{"left", "margin-left"},
		{"right", "margin-right"},
		{"firstLine", "text-indent"},
	} {
		v, _ := indent.Get(m.key)
		if u := ResolveUnit(v); u != "" {
			parts = append(parts, m.property+": "+u)
		}
	}
	return strings.Join(parts, "; ")
}

// ResolveParagraph converts paragraph style into declarations.
func ResolveParagraph(ps *document.Object) string {
	if ps.Len() == 0 {
		return ""
	}

	var parts []string
	if align := ps.StringOr("alignment", ""); align != "" {
		parts = append(parts, "text-align: "+align)
	}
	before, _ := ps.Get("spacingBefore")
	if u := ResolveUnit(before); u != "" {
		parts = append(parts, "margin-top: "+u)
	}
	after, _ := ps.Get("spacingAfter")
	if u := ResolveUnit(after); u != "" {
		parts = append(parts, "margin-bottom: "+u)
	}
	// line height is a multiplier, numbers stay bare
	ls, _ := ps.Get("lineSpacing")
	if lh := document.Text(ls); lh != "" {
		if _, isBool := ls.(bool); !isBool {
			parts = append(parts, "line-height: "+lh)
		}
	}
	parts = append(parts, ResolveIndent(ps.Object("indent")))
	padding, _ := ps.Get("padding")
	parts = append(parts, ResolvePadding(padding))
	parts = append(parts, ResolveBorders(ps.Object("borders")))
	if bg := ps.StringOr("backgroundColor", ""); bg != "" {
		parts = append(parts, "background-color: "+bg)
	}
	return Join(parts...)
}

// Join concatenates declaration strings in order, later ones win per cascade.
// Empty parts are skipped.
func Join(parts ...string) string {
	var sb strings.Builder
	for _, p := range parts {
		p = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(p), ";"))
		if p == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(p)
	}
	return sb.String()
}
