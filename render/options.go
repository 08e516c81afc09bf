package render

import (
	"time"

	"golang.org/x/text/language"
)

// Options control the few presentation choices renderer leaves open. Zero
// values are replaced with defaults.
type Options struct {
	// Locale is BCP 47 tag used to format CURRENT_DATE fields.
	Locale string
	// LinkColor is used for links without explicit color.
	LinkColor string
	// BorderColor is used for table cells when table has no border color.
	BorderColor string
	// HeaderTint is background of header row cells.
	HeaderTint string
	// BandTint is background of even rows in banded tables.
	BandTint string
	// Now returns current time, replaced in tests.
	Now func() time.Time
}

// DefaultOptions returns options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Locale:      "en-US",
		LinkColor:   "blue",
		BorderColor: "#d1d5db",
		HeaderTint:  "#f3f4f6",
		BandTint:    "#f9fafb",
		Now:         time.Now,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Locale == "" {
		o.Locale = def.Locale
	}
	if o.LinkColor == "" {
		o.LinkColor = def.LinkColor
	}
	if o.BorderColor == "" {
		o.BorderColor = def.BorderColor
	}
	if o.HeaderTint == "" {
		o.HeaderTint = def.HeaderTint
	}
	if o.BandTint == "" {
		o.BandTint = def.BandTint
	}
	if o.Now == nil {
		o.Now = def.Now
	}
	return o
}

// dateLayouts are short numeric date forms per language, first entry is the
// fallback.
var dateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Italian, "2/1/2006"},
	{language.Russian, "02.01.2006"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
	{language.Dutch, "2-1-2006"},
	{language.Portuguese, "02/01/2006"},
}

var dateMatcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(dateLayouts))
	for _, dl := range dateLayouts {
		tags = append(tags, dl.tag)
	}
	return language.NewMatcher(tags)
}()

// FormatDate formats t as short date for locale. Unknown or malformed locales
// use American English form.
func FormatDate(locale string, t time.Time) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Und
	}
	_, index, confidence := dateMatcher.Match(tag)
	if confidence == language.No {
		index = 0
	}
	return t.Format(dateLayouts[index].layout)
}
