// Package widget produces the embeddable artifacts: the one-line pointer tag,
// the self-contained legacy script, and the universal loader served at
// /widget.js.
package widget

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"strings"
	"sync"
	"text/template"

	"github.com/ziadkadry99/toldyou-button/internal/button"
	"github.com/ziadkadry99/toldyou-button/internal/i18n"
	"github.com/ziadkadry99/toldyou-button/internal/platform"
)

// LoaderPath is where the universal loader is served.
const LoaderPath = "/widget.js"

var templateFuncs = template.FuncMap{
	// json output escapes <, > and & so embedded values cannot close the
	// surrounding <script> element.
	"json": func(v any) (string, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(b), nil
	},
}

var templates = func() *template.Template {
	t := template.Must(template.New("widget").Funcs(templateFuncs).Parse(runtimeTemplate))
	template.Must(t.New("legacy").Parse(legacyTemplate))
	template.Must(t.New("loader").Parse(loaderTemplate))
	return t
}()

// Options is the fully resolved data a widget is mounted with.
type Options struct {
	Buttons      []platform.Button `json:"buttons"`
	Position     button.Position   `json:"position"`
	Color        string            `json:"color"`
	ToggleLabel  string            `json:"toggleLabel"`
	BacklinkText string            `json:"backlinkText"`
	BacklinkURL  string            `json:"backlinkUrl"`
}

// Generator renders widget scripts. The loader is rendered once and cached.
type Generator struct {
	version string

	once      sync.Once
	loader    []byte
	etag      string
	loaderErr error
}

// NewGenerator creates a generator. version is appended to loader URLs for
// cache busting.
func NewGenerator(version string) *Generator {
	return &Generator{version: version}
}

// Version returns the loader version.
func (g *Generator) Version() string {
	return g.version
}

// PointerCode is the embed tag that loads the shared loader for a stored
// configuration.
func PointerCode(baseURL, id string) string {
	return pointerTag(ScriptURL(baseURL, ""), id)
}

// VersionedPointerCode is PointerCode with the loader URL pinned to the
// generator's version, so the script can be cached as immutable.
func (g *Generator) VersionedPointerCode(baseURL, id string) string {
	return pointerTag(ScriptURL(baseURL, g.version), id)
}

func pointerTag(src, id string) string {
	return `<script src="` + html.EscapeString(src) + `" data-config-id="` + html.EscapeString(id) + `"></script>`
}

// ScriptURL returns the loader URL, with a version query when version is set.
func ScriptURL(baseURL, version string) string {
	u := strings.TrimRight(baseURL, "/") + LoaderPath
	if version != "" {
		u += "?v=" + url.QueryEscape(version)
	}
	return u
}

// ResolveOptions turns a configuration into the data the widget renders.
func ResolveOptions(cfg button.Config, lang i18n.Language) Options {
	lang = i18n.Normalize(string(lang), i18n.WidgetFallback)
	pos := cfg.Position
	if !pos.Valid() {
		pos = button.BottomRight
	}
	return Options{
		Buttons:      cfg.Buttons(lang.PlatformLabel),
		Position:     pos,
		Color:        cfg.MainColor(),
		ToggleLabel:  lang.ToggleLabel(),
		BacklinkText: lang.BacklinkText(),
		BacklinkURL:  i18n.BacklinkURL,
	}
}

// LegacyScript renders the self-contained widget body without the
// surrounding <script> element.
func (g *Generator) LegacyScript(cfg button.Config, lang i18n.Language) (string, error) {
	data := struct {
		ChatIcon string
		Options  Options
	}{platform.ChatIcon, ResolveOptions(cfg, lang)}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "legacy", data); err != nil {
		return "", fmt.Errorf("rendering legacy widget: %w", err)
	}
	return buf.String(), nil
}

// Legacy renders the self-contained <script> embed.
func (g *Generator) Legacy(cfg button.Config, lang i18n.Language) (string, error) {
	body, err := g.LegacyScript(cfg, lang)
	if err != nil {
		return "", err
	}
	return "<script>" + body + "</script>", nil
}

// Loader returns the universal loader script and its strong ETag.
func (g *Generator) Loader() ([]byte, string, error) {
	g.once.Do(func() {
		data := struct {
			ChatIcon     string
			Platforms    []platform.Spec
			Locales      map[i18n.Language]i18n.Strings
			FallbackLang i18n.Language
			DefaultColor string
			BacklinkURL  string
		}{
			ChatIcon:     platform.ChatIcon,
			Platforms:    platform.Specs(),
			Locales:      i18n.Catalog(),
			FallbackLang: i18n.WidgetFallback,
			DefaultColor: button.DefaultColor,
			BacklinkURL:  i18n.BacklinkURL,
		}
		var buf bytes.Buffer
		if err := templates.ExecuteTemplate(&buf, "loader", data); err != nil {
			g.loaderErr = fmt.Errorf("rendering loader: %w", err)
			return
		}
		sum := sha256.Sum256(buf.Bytes())
		g.loader = buf.Bytes()
		g.etag = `"` + hex.EncodeToString(sum[:16]) + `"`
	})
	return g.loader, g.etag, g.loaderErr
}
