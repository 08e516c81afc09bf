package convert

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"bdr/common"
	"bdr/config"
	"bdr/content"
	"bdr/render"
	"bdr/state"
)

// renderOptions lays configured presentation defaults over renderer ones.
func renderOptions(cfg *config.RenderConfig) render.Options {
	opts := render.DefaultOptions()
	set := func(dst *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*dst = v
		}
	}
	set(&opts.Locale, cfg.Locale)
	set(&opts.LinkColor, cfg.LinkColor)
	set(&opts.BorderColor, cfg.BorderColor)
	set(&opts.HeaderTint, cfg.HeaderTint)
	set(&opts.BandTint, cfg.BandTint)
	return opts
}

// generate renders prepared content in its output format and writes result
// to w.
func generate(ctx context.Context, c *content.Content, w io.Writer, env *state.LocalEnv, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r := render.New(renderOptions(&env.Cfg.Document.Render), log)
	body := r.Blocks(c.Blocks)

	if !c.OutputFormat.Page() {
		out, err := render.Serialize(body)
		if err != nil {
			return fmt.Errorf("unable to serialize fragment: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	}

	page := &render.Page{
		Title:  pageTitle(c, env),
		Lang:   c.Lang,
		CSS:    joinCSS(c.Page.Rule(), string(env.Stylesheet)),
		Header: r.Content(c.Header),
		Body:   body,
		Footer: r.Content(c.Footer),
	}
	if page.Lang == "" {
		page.Lang = env.Cfg.Document.Render.Locale
	}

	switch c.OutputFormat {
	case common.OutputFmtHtml:
		return page.WriteHTML(w)
	case common.OutputFmtXhtml:
		return page.WriteXHTML(w)
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// pageTitle expands configured title template falling back to document title.
func pageTitle(c *content.Content, env *state.LocalEnv) string {
	if env.Cfg.Document.TitleTemplate == "" {
		return c.Title
	}
	title, err := expandTemplate(c, config.TitleTemplateFieldName, env.Cfg.Document.TitleTemplate, c.OutputFormat)
	if err != nil {
		env.Log.Warn("Unable to prepare page title", zap.Error(err))
		return c.Title
	}
	return strings.TrimSpace(title)
}

func joinCSS(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n")
}
