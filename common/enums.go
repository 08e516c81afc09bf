// Package common holds enums shared between configuration and processing
// code, so neither has to import the other.
package common

//go:generate go tool go-enum --marshal --names --values

// Specification of requested output type.
// ENUM(fragment, html, xhtml)
type OutputFmt int

// Page reports whether output is standalone document rather than markup
// fragment.
func (o OutputFmt) Page() bool {
	return o == OutputFmtHtml || o == OutputFmtXhtml
}

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtFragment, OutputFmtHtml:
		return ".html"
	case OutputFmtXhtml:
		return ".xhtml"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Page orientation for @page rule.
// ENUM(portrait, landscape)
type Orientation int
