// Package legal renders the terms of service and privacy policy pages.
package legal

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/toldyou-button/internal/i18n"
)

//go:embed pages
var pages embed.FS

// Doc names a legal document.
type Doc string

const (
	Terms   Doc = "terms"
	Privacy Doc = "privacy"
)

// Docs lists the documents in navigation order.
var Docs = []Doc{Terms, Privacy}

// ParseDoc reports whether s names a known document.
func ParseDoc(s string) (Doc, bool) {
	for _, d := range Docs {
		if string(d) == s {
			return d, true
		}
	}
	return "", false
}

type navCopy struct {
	Titles map[Doc]string
	Home   string
}

var navCopies = map[i18n.Language]navCopy{
	i18n.TraditionalChinese: {
		Titles: map[Doc]string{Terms: "使用者條款", Privacy: "隱私權政策"},
		Home:   "返回首頁",
	},
	i18n.Japanese: {
		Titles: map[Doc]string{Terms: "利用規約", Privacy: "プライバシーポリシー"},
		Home:   "ホームに戻る",
	},
	i18n.English: {
		Titles: map[Doc]string{Terms: "Terms of Service", Privacy: "Privacy Policy"},
		Home:   "Back to Home",
	},
}

// Title returns the localised title of d.
func Title(d Doc, lang i18n.Language) string {
	c, ok := navCopies[lang]
	if !ok {
		c = navCopies[i18n.DefaultLanguage]
	}
	return c.Titles[d]
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithXHTML()),
)

var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4")
	p.RequireNoFollowOnLinks(true)
	return p
}()

// Renderer turns the embedded markdown into full HTML pages. Pages are
// rendered once per document and language.
type Renderer struct {
	mu    sync.Mutex
	cache map[string][]byte
}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[string][]byte)}
}

// Markdown returns the raw markdown source of d in lang.
func Markdown(d Doc, lang i18n.Language) ([]byte, error) {
	b, err := pages.ReadFile(fmt.Sprintf("pages/%s/%s.md", lang, d))
	if err != nil {
		return nil, fmt.Errorf("reading %s (%s): %w", d, lang, err)
	}
	return b, nil
}

// Body renders d in lang to sanitized HTML without the page layout.
func Body(d Doc, lang i18n.Language) (template.HTML, error) {
	src, err := Markdown(d, lang)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("rendering %s: %w", d, err)
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil
}

type navLink struct {
	Href   string
	Title  string
	Active bool
}

// Page renders the full HTML page for d in lang.
func (r *Renderer) Page(d Doc, lang i18n.Language) ([]byte, error) {
	key := string(lang) + "/" + string(d)
	r.mu.Lock()
	if b, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return b, nil
	}
	r.mu.Unlock()

	body, err := Body(d, lang)
	if err != nil {
		return nil, err
	}

	c, ok := navCopies[lang]
	if !ok {
		c = navCopies[i18n.DefaultLanguage]
	}
	var nav []navLink
	for _, other := range Docs {
		nav = append(nav, navLink{
			Href:   fmt.Sprintf("/legal/%s?lang=%s", other, lang),
			Title:  c.Titles[other],
			Active: other == d,
		})
	}

	var buf bytes.Buffer
	err = layout.Execute(&buf, struct {
		Lang         string
		Title        string
		Home         string
		Nav          []navLink
		Body         template.HTML
		BacklinkURL  string
		BacklinkText string
	}{
		Lang:         lang.HTMLTag(),
		Title:        c.Titles[d],
		Home:         c.Home,
		Nav:          nav,
		Body:         body,
		BacklinkURL:  i18n.BacklinkURL,
		BacklinkText: lang.BacklinkText(),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering layout: %w", err)
	}

	out := buf.Bytes()
	r.mu.Lock()
	r.cache[key] = out
	r.mu.Unlock()
	return out, nil
}

var layout = template.Must(template.New("legal").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} | ToldYou Button</title>
  <style>
    body { font-family: 'Noto Sans TC', 'Noto Sans JP', -apple-system, 'Helvetica Neue', Arial, sans-serif; line-height: 1.7; color: #1f2937; max-width: 760px; margin: 0 auto; padding: 24px; }
    nav { display: flex; gap: 16px; border-bottom: 1px solid #e5e7eb; padding-bottom: 12px; margin-bottom: 24px; font-size: 14px; }
    nav a { color: #2563eb; text-decoration: none; }
    nav a.active { font-weight: 700; color: #1e40af; }
    nav .home { margin-left: auto; color: #6b7280; }
    h1 { font-size: 28px; }
    h2 { font-size: 20px; margin-top: 32px; }
    footer { margin-top: 48px; padding-top: 16px; border-top: 1px solid #e5e7eb; font-size: 13px; color: #9ca3af; text-align: center; }
    footer a { color: #9ca3af; }
  </style>
</head>
<body>
  <nav>
  {{- range .Nav}}
    <a href="{{.Href}}"{{if .Active}} class="active" aria-current="page"{{end}}>{{.Title}}</a>
  {{- end}}
    <a class="home" href="/">{{.Home}}</a>
  </nav>
  <main>
{{.Body}}
  </main>
  <footer>ToldYou Button · <a href="{{.BacklinkURL}}" rel="noopener">{{.BacklinkText}}</a></footer>
</body>
</html>
`))
