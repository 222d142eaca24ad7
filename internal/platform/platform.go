// Package platform holds the fixed table of contact platforms supported by the
// widget: brand colours, icons, deep-link templates and the rules used to turn
// a raw user value into the identifier a deep link needs.
package platform

// ID identifies one of the supported contact platforms.
type ID string

const (
	LINE      ID = "line"
	Messenger ID = "messenger"
	WhatsApp  ID = "whatsapp"
	Instagram ID = "instagram"
	Phone     ID = "phone"
	Email     ID = "email"
)

// All lists every platform in render order (top of the button column first).
var All = []ID{LINE, Messenger, WhatsApp, Instagram, Phone, Email}

// Spec describes how a platform is rendered and linked.
type Spec struct {
	ID         ID         `json:"id"`
	Name       string     `json:"name"`
	BrandColor string     `json:"color"`
	Icon       string     `json:"icon"`
	URLPrefix  string     `json:"prefix"`
	Encode     bool       `json:"encode"`
	Rules      []HostRule `json:"rules,omitempty"`
}

// ChatIcon is the SVG path drawn on the main toggle button.
const ChatIcon = "M20 2H4c-1.1 0-2 .9-2 2v18l4-4h14c1.1 0 2-.9 2-2V4c0-1.1-.9-2-2-2z"

var specs = []Spec{
	{
		ID:         LINE,
		Name:       "LINE",
		BrandColor: "#06C755",
		Icon:       "M19.365 9.863c.349 0 .63.285.63.631 0 .345-.281.63-.63.63H17.61v1.125h1.755c.349 0 .63.283.63.63 0 .344-.281.629-.63.629h-2.386c-.345 0-.627-.285-.627-.629V8.108c0-.345.282-.63.63-.63h2.386c.346 0 .627.285.627.63 0 .349-.281.63-.63.63H17.61v1.125h1.755zm-3.855 3.016c0 .27-.174.51-.432.596-.064.021-.133.031-.199.031-.211 0-.391-.09-.51-.25l-2.443-3.317v2.94c0 .344-.279.629-.631.629-.346 0-.626-.285-.626-.629V8.108c0-.27.173-.51.43-.595.06-.023.136-.033.194-.033.195 0 .375.104.495.254l2.462 3.33V8.108c0-.345.282-.63.63-.63.345 0 .63.285.63.63v4.771zm-5.741 0c0 .344-.282.629-.631.629-.345 0-.627-.285-.627-.629V8.108c0-.345.282-.63.63-.63.346 0 .628.285.628.63v4.771zm-2.466.629H4.917c-.345 0-.63-.285-.63-.629V8.108c0-.345.285-.63.63-.63.348 0 .63.285.63.63v4.141h1.756c.348 0 .629.283.629.63 0 .344-.282.629-.629.629M24 10.314C24 4.943 18.615.572 12 .572S0 4.943 0 10.314c0 4.811 4.27 8.842 10.035 9.608.391.082.923.258 1.058.59.12.301.079.766.038 1.08l-.164 1.02c-.045.301-.24 1.186 1.049.645 1.291-.539 6.916-4.078 9.436-6.975C23.176 14.393 24 12.458 24 10.314",
		URLPrefix:  "https://line.me/R/ti/p/",
		Encode:     true,
	},
	{
		ID:         Messenger,
		Name:       "Messenger",
		BrandColor: "#0084FF",
		Icon:       "M12 2C6.5 2 2 6.14 2 11.25c0 2.9 1.45 5.48 3.71 7.17V22l3.58-1.96c.95.26 1.96.41 3 .41 5.5 0 9.96-4.14 9.96-9.25S17.5 2 12.29 2H12z",
		URLPrefix:  "https://m.me/",
		Encode:     true,
		Rules: []HostRule{
			{Host: "m.me", Extract: []Extractor{{Index: 0}}},
			{Host: "facebook.com", Suffix: true, Extract: []Extractor{{After: "t"}, {Index: -1}}},
			{Host: "messenger.com", Suffix: true, Extract: []Extractor{{After: "t"}, {Index: -1}}},
		},
	},
	{
		ID:         WhatsApp,
		Name:       "WhatsApp",
		BrandColor: "#25D366",
		Icon:       "M12.04 2c-5.46 0-9.91 4.45-9.91 9.91 0 1.75.46 3.45 1.32 4.95L2.05 22l5.25-1.38c1.45.79 3.08 1.21 4.74 1.21 5.46 0 9.91-4.45 9.91-9.91 0-2.65-1.03-5.14-2.9-7.01A9.816 9.816 0 0 0 12.04 2m.01 1.67c2.2 0 4.26.86 5.82 2.42a8.225 8.225 0 0 1 2.41 5.83c0 4.54-3.7 8.23-8.24 8.23-1.48 0-2.93-.39-4.19-1.15l-.3-.17-3.12.82.83-3.04-.2-.32a8.188 8.188 0 0 1-1.26-4.38c.01-4.54 3.7-8.24 8.25-8.24M8.53 7.33c-.16 0-.43.06-.66.31-.22.25-.87.86-.87 2.07 0 1.22.89 2.39 1 2.56.14.17 1.76 2.67 4.25 3.73.59.27 1.05.42 1.41.53.59.19 1.13.16 1.56.1.48-.07 1.46-.6 1.67-1.18.21-.58.21-1.07.15-1.18-.07-.1-.23-.16-.48-.27-.25-.14-1.47-.74-1.69-.82-.23-.08-.37-.12-.56.12-.16.25-.64.81-.78.97-.15.17-.29.19-.53.07-.26-.13-1.06-.39-2-1.23-.74-.66-1.23-1.47-1.38-1.72-.12-.24-.01-.39.11-.5.11-.11.27-.29.37-.44.13-.14.17-.25.25-.41.08-.17.04-.31-.02-.43-.06-.11-.56-1.35-.77-1.84-.2-.48-.4-.42-.56-.43-.14 0-.3-.01-.47-.01z",
		URLPrefix:  "https://wa.me/",
		Encode:     true,
	},
	{
		ID:         Instagram,
		Name:       "Instagram",
		BrandColor: "#E4405F",
		Icon:       "M7.8 2h8.4C19.4 2 22 4.6 22 7.8v8.4a5.8 5.8 0 0 1-5.8 5.8H7.8C4.6 22 2 19.4 2 16.2V7.8A5.8 5.8 0 0 1 7.8 2m-.2 2A3.6 3.6 0 0 0 4 7.6v8.8C4 18.39 5.61 20 7.6 20h8.8a3.6 3.6 0 0 0 3.6-3.6V7.6C20 5.61 18.39 4 16.4 4H7.6m9.65 1.5a1.25 1.25 0 0 1 1.25 1.25A1.25 1.25 0 0 1 17.25 8 1.25 1.25 0 0 1 16 6.75a1.25 1.25 0 0 1 1.25-1.25M12 7a5 5 0 0 1 5 5 5 5 0 0 1-5 5 5 5 0 0 1-5-5 5 5 0 0 1 5-5m0 2a3 3 0 0 0-3 3 3 3 0 0 0 3 3 3 3 0 0 0 3-3 3 3 0 0 0-3-3z",
		URLPrefix:  "https://ig.me/m/",
		Encode:     true,
		Rules: []HostRule{
			{Host: "ig.me", Extract: []Extractor{{Prefix: []string{"m"}, Index: 1}, {Index: 0}}},
			{Host: "instagram.com", Suffix: true, Extract: []Extractor{
				{Prefix: []string{"direct", "t"}, Index: 2},
				{Index: 0, Exclude: []string{"direct"}},
			}},
		},
	},
	{
		ID:         Phone,
		Name:       "Phone",
		BrandColor: "#10B981",
		Icon:       "M6.62 10.79c1.44 2.83 3.76 5.14 6.59 6.59l2.2-2.2c.27-.27.67-.36 1.02-.24 1.12.37 2.33.57 3.57.57.55 0 1 .45 1 1V20c0 .55-.45 1-1 1-9.39 0-17-7.61-17-17 0-.55.45-1 1-1h3.5c.55 0 1 .45 1 1 0 1.25.2 2.45.57 3.57.11.35.03.74-.25 1.02l-2.2 2.2z",
		URLPrefix:  "tel:",
	},
	{
		ID:         Email,
		Name:       "Email",
		BrandColor: "#6366F1",
		Icon:       "M20 4H4c-1.1 0-1.99.9-1.99 2L2 18c0 1.1.9 2 2 2h16c1.1 0 2-.9 2-2V6c0-1.1-.9-2-2-2zm0 4l-8 5-8-5V6l8 5 8-5v2z",
		URLPrefix:  "mailto:",
	},
}

// Lookup returns the spec for id.
func Lookup(id ID) (Spec, bool) {
	for _, s := range specs {
		if s.ID == id {
			return s, true
		}
	}
	return Spec{}, false
}

// Specs returns a copy of the platform table in render order.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs)
	return out
}

// Parse converts a string into a known platform id.
func Parse(s string) (ID, bool) {
	for _, id := range All {
		if string(id) == s {
			return id, true
		}
	}
	return "", false
}

// Button is a resolved, clickable platform entry. It is derived on demand
// and never stored.
type Button struct {
	Platform ID     `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	Label    string `json:"label"`
}

// Resolve sanitises every raw value, builds its deep link and returns the
// buttons in render order. Platforms without a usable identifier are skipped.
// label may be nil, in which case the platform name is used.
func Resolve(raw map[ID]string, label func(ID) string) []Button {
	var out []Button
	for _, s := range specs {
		handle := Sanitize(s.ID, raw[s.ID])
		if handle == "" {
			continue
		}
		l := s.Name
		if label != nil {
			l = label(s.ID)
		}
		out = append(out, Button{
			Platform: s.ID,
			URL:      s.link(handle),
			Icon:     s.Icon,
			Color:    s.BrandColor,
			Label:    l,
		})
	}
	return out
}
