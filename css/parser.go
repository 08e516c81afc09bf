package css

import (
	"errors"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Declaration is a single "property: value" pair of an inline style.
type Declaration struct {
	Property  string // lower case property name
	Value     string // raw value without !important
	Important bool
}

// String formats declaration the way it is emitted into style attribute.
func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + d.Value + " !important"
	}
	return d.Property + ": " + d.Value
}

// ParseDeclarations tokenizes inline style string into ordered declarations.
// Semicolons inside strings and functions (url(), rgb()) do not split
// declarations. Malformed parts are skipped.
func ParseDeclarations(style string) []Declaration {
	decls, _ := parseDeclarations(style)
	return decls
}

// parseDeclarations also reports whether style was parsed without errors.
func parseDeclarations(style string) ([]Declaration, bool) {
	if strings.TrimSpace(style) == "" {
		return nil, true
	}

	var (
		decls []Declaration
		clean = true
	)

	parser := css.NewParser(parse.NewInput(strings.NewReader(style)), true)
	// parser consumes at least one token per error, this bounds the loop
	for budget := len(style) + 1; ; {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if errors.Is(parser.Err(), io.EOF) {
				return decls, clean
			}
			// recoverable, parser skipped to the next ; or }
			clean = false
			if budget--; budget <= 0 {
				return decls, false
			}

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			name := strings.ToLower(strings.TrimSpace(string(data)))
			if name == "" {
				continue
			}
			value, important := splitImportant(rawValue(parser.Values()))
			if value == "" {
				continue
			}
			decls = append(decls, Declaration{Property: name, Value: value, Important: important})

		default:
			// at-rules and blocks have no place in inline style
			clean = false
		}
	}
}

// rawValue builds value string from tokens collapsing whitespace.
func rawValue(tokens []css.Token) string {
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(rawParts, ""))
}

func splitImportant(raw string) (string, bool) {
	i := strings.LastIndexByte(raw, '!')
	if i < 0 || !strings.EqualFold(strings.TrimSpace(raw[i+1:]), "important") {
		return raw, false
	}
	return strings.TrimSpace(raw[:i]), true
}

// HasProperty reports whether style declares property name.
func HasProperty(style, name string) bool {
	name = strings.ToLower(name)
	for _, d := range ParseDeclarations(style) {
		if d.Property == name {
			return true
		}
	}
	return false
}

// WithDefaults appends default declarations for properties style does not
// declare yet. Applying it twice gives the same result.
func WithDefaults(style string, defaults ...Declaration) string {
	present := make(map[string]bool)
	for _, d := range ParseDeclarations(style) {
		present[d.Property] = true
	}

	parts := []string{style}
	for _, d := range defaults {
		if present[d.Property] {
			continue
		}
		present[d.Property] = true
		parts = append(parts, d.String())
	}
	return Join(parts...)
}

// StripPositioning removes declarations which would take block out of the
// normal flow: position absolute or fixed and any top, left, right or bottom
// offsets. Well formed style without such declarations is returned
// unchanged, malformed style is rebuilt from the declarations it parses to.
func StripPositioning(style string) string {
	decls, clean := parseDeclarations(style)

	kept := make([]string, 0, len(decls))
	for _, d := range decls {
		if isPositioning(d) {
			continue
		}
		kept = append(kept, d.String())
	}
	if clean && len(kept) == len(decls) {
		return style
	}
	return strings.Join(kept, "; ")
}

func isPositioning(d Declaration) bool {
	switch d.Property {
	case "top", "left", "right", "bottom":
		return true
	case "position":
		switch strings.ToLower(d.Value) {
		case "absolute", "fixed":
			return true
		}
	}
	return false
}
