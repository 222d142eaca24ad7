package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ziadkadry99/toldyou-button/internal/i18n"
)

// Message is one "your code is ready" email.
type Message struct {
	To         string
	Lang       i18n.Language
	ConfigID   string
	Code       string
	LegacyCode string
}

// copyPolicy keeps the inline markup used in the localised copy.
var copyPolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("code", "strong", "em", "br")
	return p
}()

func markup(s string) template.HTML {
	return template.HTML(copyPolicy.Sanitize(s))
}

func markupAll(items []string) []template.HTML {
	out := make([]template.HTML, len(items))
	for i, s := range items {
		out[i] = markup(s)
	}
	return out
}

var emailTmpl = template.Must(template.New("email").Funcs(template.FuncMap{
	"markup":    markup,
	"markupAll": markupAll,
}).Parse(emailTemplate))

type section struct {
	Title  string
	Steps  []string
	Accent string
}

// Render returns the subject and HTML body for m.
func Render(m Message) (subject, body string, err error) {
	lang := i18n.Normalize(string(m.Lang), i18n.WidgetFallback)
	c := copyFor(lang)

	data := struct {
		Lang         string
		Copy         emailCopy
		ConfigID     string
		Code         string
		LegacyCode   string
		Sections     []section
		BacklinkURL  string
		BacklinkText string
	}{
		Lang:       lang.HTMLTag(),
		Copy:       c,
		ConfigID:   m.ConfigID,
		Code:       m.Code,
		LegacyCode: m.LegacyCode,
		Sections: []section{
			{c.WordPress.Title, c.WordPress.Steps, "#2563eb"},
			{c.Shopify.Title, c.Shopify.Steps, "#22c55e"},
			{c.HTML.Title, c.HTML.Steps, "#f97316"},
		},
		BacklinkURL:  i18n.BacklinkURL,
		BacklinkText: lang.BacklinkText(),
	}

	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("rendering email: %w", err)
	}
	return c.Subject, buf.String(), nil
}

const emailTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: 'Noto Sans TC', 'Noto Sans JP', 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
    h1 { color: #2563eb; font-size: 24px; margin-bottom: 10px; }
    h2 { color: #1e40af; font-size: 18px; margin-top: 30px; margin-bottom: 15px; }
    h3 { font-size: 16px; margin: 0 0 10px 0; }
    .code-block { background: #f3f4f6; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 20px 0; }
    .code-block code { font-family: 'Courier New', Consolas, monospace; font-size: 13px; color: #1f2937; display: block; white-space: pre-wrap; word-break: break-all; }
    .id-block { background: #dbeafe; border: 1px solid #bfdbfe; border-radius: 6px; padding: 15px; margin: 20px 0; }
    .id-block code { font-family: 'Courier New', Consolas, monospace; font-size: 14px; color: #1e3a8a; display: block; }
    .instructions { background: #f9fafb; padding: 15px; margin: 15px 0; border-radius: 6px; border-left: 4px solid transparent; }
    .instructions li { margin: 8px 0; font-size: 14px; }
    .footer { margin-top: 40px; padding-top: 20px; border-top: 1px solid #e5e7eb; font-size: 14px; color: #6b7280; text-align: center; }
    .badge { display: inline-block; background: #dcfce7; color: #166534; padding: 4px 12px; border-radius: 4px; font-size: 13px; font-weight: 600; margin-right: 8px; }
  </style>
</head>
<body>
  <h1>{{.Copy.HeroTitle}}</h1>
  <p>{{.Copy.HeroDescription}}</p>
  <p>{{range .Copy.Badges}}<span class="badge">{{.}}</span>{{end}}</p>

  <h2>{{.Copy.ConfigTitle}}</h2>
  <p>{{.Copy.ConfigText}}</p>
  <div class="id-block">
    <p style="margin:0 0 10px 0; font-size: 14px; color: #1e3a8a;">{{.Copy.ConfigLabel}}</p>
    <code>{{if .ConfigID}}{{.ConfigID}}{{else}}{{.Copy.ConfigEmpty}}{{end}}</code>
  </div>

  <h2>{{.Copy.CodeTitle}}</h2>
  <div class="code-block"><code>{{.Code}}</code></div>
  <p style="background: #dbeafe; padding: 12px; border-radius: 6px; font-size: 14px;">{{.Copy.CodeHint}}</p>

  <h2>{{.Copy.InstallTitle}}</h2>
{{- range .Sections}}
  <div class="instructions" style="border-left-color: {{.Accent}};">
    <h3>{{.Title}}</h3>
    <ol>
    {{- range markupAll .Steps}}
      <li>{{.}}</li>
    {{- end}}
    </ol>
  </div>
{{- end}}

  <h2>{{.Copy.PreviewTitle}}</h2>
  <p>{{.Copy.PreviewText}}</p>
  <ul>
  {{- range .Copy.PreviewItems}}
    <li>{{.}}</li>
  {{- end}}
  </ul>
{{- if .LegacyCode}}

  <h2>{{.Copy.LegacyTitle}}</h2>
  <p>{{.Copy.LegacyHint}}</p>
  <div class="code-block"><code>{{.LegacyCode}}</code></div>
{{- end}}

  <h2>{{.Copy.FAQTitle}}</h2>
{{- range .Copy.FAQ}}
  <p><strong>{{.Question}}</strong></p>
  <p>{{markup .Answer}}</p>
{{- end}}

  <div class="footer">
    <p>{{.Copy.SupportPrefix}} <a href="{{.BacklinkURL}}" style="color: #2563eb; text-decoration: none;">{{.BacklinkText}}</a></p>
    <p style="margin-top: 10px; color: #9ca3af; font-size: 12px;">ToldYou Button · {{.Copy.ProvidedBy}} <a href="{{.BacklinkURL}}" style="color: #9ca3af;">{{.BacklinkText}}</a></p>
  </div>
</body>
</html>
`
