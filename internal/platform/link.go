package platform

import "strings"

// Link builds the deep link for an already sanitised handle. It returns ""
// for an empty handle or an unknown platform so callers never emit a link
// without an identifier.
func Link(id ID, handle string) string {
	if handle == "" {
		return ""
	}
	spec, ok := Lookup(id)
	if !ok {
		return ""
	}
	return spec.link(handle)
}

func (s Spec) link(handle string) string {
	if s.Encode {
		return s.URLPrefix + EncodeComponent(handle)
	}
	return s.URLPrefix + handle
}

const upperhex = "0123456789ABCDEF"

// EncodeComponent percent-encodes s the way JavaScript's encodeURIComponent
// does, so links built here match the ones the loader builds in the browser.
func EncodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
