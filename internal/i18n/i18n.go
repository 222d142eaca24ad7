// Package i18n holds the languages the widget and emails are localised into
// and the per-language strings shown to site visitors.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/ziadkadry99/toldyou-button/internal/platform"
)

// Language is a supported UI language tag.
type Language string

const (
	TraditionalChinese Language = "zh-TW"
	Japanese           Language = "ja"
	English            Language = "en"
)

// Supported lists every language in preference order for negotiation.
var Supported = []Language{English, TraditionalChinese, Japanese}

// DefaultLanguage is used when nothing better is known about the visitor.
const DefaultLanguage = English

// WidgetFallback is used by the widget when a stored language is unknown.
const WidgetFallback = TraditionalChinese

// BacklinkURL is the attribution link rendered under the widget.
const BacklinkURL = "https://thinkwithblack.com"

const (
	CookieName   = "toldyou_lang"
	CookieMaxAge = 60 * 60 * 24 * 90
)

// Strings are the visitor-facing texts of the widget in one language.
type Strings struct {
	Backlink string                 `json:"backlink"`
	Toggle   string                 `json:"toggle"`
	Labels   map[platform.ID]string `json:"labels"`
}

var catalog = map[Language]Strings{
	TraditionalChinese: {
		Backlink: "報數據",
		Toggle:   "開啟聊天選單",
		Labels: map[platform.ID]string{
			platform.LINE:      "LINE",
			platform.Messenger: "Messenger",
			platform.WhatsApp:  "WhatsApp",
			platform.Instagram: "Instagram",
			platform.Phone:     "電話",
			platform.Email:     "電子郵件",
		},
	},
	Japanese: {
		Backlink: "レポートデータ",
		Toggle:   "チャットメニューを開く",
		Labels: map[platform.ID]string{
			platform.LINE:      "LINE",
			platform.Messenger: "Messenger",
			platform.WhatsApp:  "WhatsApp",
			platform.Instagram: "Instagram",
			platform.Phone:     "電話",
			platform.Email:     "メール",
		},
	},
	English: {
		Backlink: "Report Data",
		Toggle:   "Open chat menu",
		Labels: map[platform.ID]string{
			platform.LINE:      "LINE",
			platform.Messenger: "Messenger",
			platform.WhatsApp:  "WhatsApp",
			platform.Instagram: "Instagram",
			platform.Phone:     "Phone",
			platform.Email:     "Email",
		},
	},
}

var htmlTags = map[Language]string{
	English:            "en",
	TraditionalChinese: "zh-Hant-TW",
	Japanese:           "ja",
}

// Parse returns the Language for s if it is supported.
func Parse(s string) (Language, bool) {
	l := Language(strings.TrimSpace(s))
	_, ok := catalog[l]
	return l, ok
}

// Normalize returns s as a Language, or fallback when it is not supported.
func Normalize(s string, fallback Language) Language {
	if l, ok := Parse(s); ok {
		return l
	}
	return fallback
}

// Strings returns the widget texts for l, falling back to WidgetFallback.
func (l Language) Strings() Strings {
	if s, ok := catalog[l]; ok {
		return s
	}
	return catalog[WidgetFallback]
}

// BacklinkText is the localised anchor text of the attribution link.
func (l Language) BacklinkText() string { return l.Strings().Backlink }

// ToggleLabel is the aria-label of the main widget button.
func (l Language) ToggleLabel() string { return l.Strings().Toggle }

// PlatformLabel is the tooltip shown on a platform button.
func (l Language) PlatformLabel(id platform.ID) string {
	if label, ok := l.Strings().Labels[id]; ok {
		return label
	}
	if s, ok := platform.Lookup(id); ok {
		return s.Name
	}
	return string(id)
}

// HTMLTag is the value for <html lang>.
func (l Language) HTMLTag() string {
	if t, ok := htmlTags[l]; ok {
		return t
	}
	return string(l)
}

// Catalog returns the strings of every supported language, keyed by tag.
func Catalog() map[Language]Strings {
	out := make(map[Language]Strings, len(catalog))
	for k, v := range catalog {
		out[k] = v
	}
	return out
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.MustParse("zh-TW"),
	language.Japanese,
})

// FromAcceptLanguage picks the best supported language for an
// Accept-Language header value.
func FromAcceptLanguage(header string) (Language, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return "", false
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return "", false
	}
	return Supported[idx], true
}

// Negotiate resolves the language for a request from the language cookie,
// then Accept-Language, then DefaultLanguage.
func Negotiate(r *http.Request) Language {
	if c, err := r.Cookie(CookieName); err == nil {
		if l, ok := Parse(c.Value); ok {
			return l
		}
	}
	if l, ok := FromAcceptLanguage(r.Header.Get("Accept-Language")); ok {
		return l
	}
	return DefaultLanguage
}

// SetCookie stores the visitor's language choice.
func SetCookie(w http.ResponseWriter, l Language, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    string(l),
		Path:     "/",
		MaxAge:   CookieMaxAge,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}
