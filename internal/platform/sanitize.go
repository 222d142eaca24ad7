package platform

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// HostRule maps a profile URL host to the extractors that pull the
// identifier out of its path. The same rules are serialised into the widget
// loader so browsers sanitise exactly like the server does.
type HostRule struct {
	Host    string      `json:"host"`
	Suffix  bool        `json:"suffix,omitempty"`
	Extract []Extractor `json:"extract"`
}

// Extractor selects one path segment.
//
// An extractor with After set applies only when a segment equal to After is
// followed by another segment, and yields that next segment. An extractor with
// Prefix set applies when the path starts with those segments and yields the
// segment at Index, or "" when there is none. A bare extractor always applies
// and yields the segment at Index (-1 is the last segment). Results listed in
// Exclude are discarded.
type Extractor struct {
	Prefix  []string `json:"prefix,omitempty"`
	After   string   `json:"after,omitempty"`
	Index   int      `json:"index"`
	Exclude []string `json:"exclude,omitempty"`
}

// Sanitize turns a raw user value into the identifier used in the platform's
// deep link. It returns "" when nothing usable can be extracted.
func Sanitize(id ID, raw string) string {
	value := TrimSpace(raw)
	if value == "" {
		return ""
	}
	spec, ok := Lookup(id)
	if !ok {
		return ""
	}
	if len(spec.Rules) == 0 {
		return value
	}

	if u, isURL := profileURL(value, spec.Rules); isURL {
		if u == nil {
			return ""
		}
		return fromURL(u, spec.Rules)
	}
	return bareHandle(value)
}

// profileLink is the part of a profile URL the host rules look at.
type profileLink struct {
	host string
	segs []string
}

// profileURL decides whether value should be treated as a URL. The second
// result is true when it should; the link is nil when the URL is malformed.
//
// URLs are split by hand rather than with net/url so the loader, which
// carries a line-for-line copy of this parser, agrees on every input.
func profileURL(value string, rules []HostRule) (*profileLink, bool) {
	if i := strings.Index(value, "://"); i >= 0 {
		if scheme := strings.ToLower(value[:i]); scheme != "http" && scheme != "https" {
			return nil, true
		}
		return splitURL(value[i+3:]), true
	}

	head := value
	if i := strings.IndexAny(head, `/\?#`); i >= 0 {
		head = head[:i]
	}
	if !strings.Contains(head, ".") {
		return nil, false
	}
	for _, r := range rules {
		if r.matches(head) {
			return splitURL(value), true
		}
	}
	return nil, false
}

// splitURL parses the part of a URL after "scheme://". Backslashes count as
// slashes, user info is dropped, and ports must lie in 0-65535.
func splitURL(rest string) *profileLink {
	rest = strings.ReplaceAll(rest, `\`, "/")
	authority, path := rest, ""
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		authority, path = rest[:i], rest[i:]
	}
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if i := strings.LastIndex(authority, "@"); i >= 0 {
		authority = authority[i+1:]
	}
	host := authority
	if i := strings.LastIndex(authority, ":"); i >= 0 {
		host = authority[:i]
		if !validPort(authority[i+1:]) {
			return nil
		}
	}
	if host == "" {
		return nil
	}
	segs, ok := pathSegments(path)
	if !ok {
		return nil
	}
	return &profileLink{host: host, segs: segs}
}

func validPort(s string) bool {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		n = n*10 + int(c-'0')
		if n > 65535 {
			return false
		}
	}
	return true
}

// pathSegments decodes every non-empty segment and resolves "." and "..".
// It fails on a bad percent-escape or on escapes that do not form UTF-8.
func pathSegments(path string) ([]string, bool) {
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s == "" {
			continue
		}
		dec, err := url.PathUnescape(s)
		if err != nil || !utf8.ValidString(dec) {
			return nil, false
		}
		switch dec {
		case ".":
		case "..":
			if len(out) > 0 {
				out = out[:len(out)-1]
			}
		default:
			out = append(out, dec)
		}
	}
	return out, true
}

func fromURL(u *profileLink, rules []HostRule) string {
	for _, r := range rules {
		if !r.matches(u.host) {
			continue
		}
		return TrimSpace(r.extract(u.segs))
	}
	return ""
}

func (r HostRule) matches(host string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if host == r.Host {
		return true
	}
	return r.Suffix && strings.HasSuffix(host, "."+r.Host)
}

func (r HostRule) extract(segs []string) string {
	for _, e := range r.Extract {
		got, applies := e.apply(segs)
		if !applies {
			continue
		}
		for _, x := range e.Exclude {
			if got == x {
				return ""
			}
		}
		return got
	}
	return ""
}

func (e Extractor) apply(segs []string) (string, bool) {
	if e.After != "" {
		for i := 0; i+1 < len(segs); i++ {
			if segs[i] == e.After {
				return segs[i+1], true
			}
		}
		return "", false
	}
	if len(e.Prefix) > 0 {
		if len(segs) < len(e.Prefix) {
			return "", false
		}
		for i, p := range e.Prefix {
			if segs[i] != p {
				return "", false
			}
		}
	}
	return at(segs, e.Index), true
}

func at(segs []string, i int) string {
	if i < 0 {
		i = len(segs) + i
	}
	if i < 0 || i >= len(segs) {
		return ""
	}
	return segs[i]
}

// bareHandle handles values typed as a handle rather than pasted as a URL:
// "@page", "page/", "page?ref=x".
func bareHandle(value string) string {
	value = strings.TrimPrefix(value, "@")
	if i := strings.IndexAny(value, "/?#"); i >= 0 {
		value = value[:i]
	}
	return TrimSpace(value)
}

// TrimSpace trims the characters JavaScript's String.prototype.trim removes.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
	})
}
