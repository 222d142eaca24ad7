package platform

import (
	"testing"
)

func TestEveryPlatformHasCompleteSpec(t *testing.T) {
	if len(Specs()) != len(All) {
		t.Fatalf("spec table has %d entries, All has %d", len(Specs()), len(All))
	}
	for i, id := range All {
		s, ok := Lookup(id)
		if !ok {
			t.Fatalf("no spec for %s", id)
		}
		if Specs()[i].ID != id {
			t.Errorf("spec %d is %s, want %s", i, Specs()[i].ID, id)
		}
		if s.Name == "" || s.BrandColor == "" || s.Icon == "" || s.URLPrefix == "" {
			t.Errorf("incomplete spec for %s: %+v", id, s)
		}
	}
}

func TestParse(t *testing.T) {
	if id, ok := Parse("instagram"); !ok || id != Instagram {
		t.Errorf("Parse(instagram) = %q, %v", id, ok)
	}
	if _, ok := Parse("tiktok"); ok {
		t.Error("Parse(tiktok) should fail")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		raw  string
		want string
	}{
		{"messenger m.me", Messenger, "https://m.me/myPage", "myPage"},
		{"messenger at handle", Messenger, "@myPage", "myPage"},
		{"messenger bare handle", Messenger, "myPage", "myPage"},
		{"messenger handle with dot", Messenger, "my.page", "my.page"},
		{"messenger handle with query", Messenger, "myPage?ref=bio", "myPage"},
		{"messenger facebook profile", Messenger, "https://www.facebook.com/myPage", "myPage"},
		{"messenger facebook trailing slash", Messenger, "https://facebook.com/myPage/", "myPage"},
		{"messenger thread", Messenger, "https://www.messenger.com/t/12345", "12345"},
		{"messenger facebook messages thread", Messenger, "https://web.facebook.com/messages/t/98765/", "98765"},
		{"messenger t without id", Messenger, "https://www.messenger.com/t", "t"},
		{"messenger scheme-less", Messenger, "m.me/myPage", "myPage"},
		{"messenger unknown host", Messenger, "https://example.com/myPage", ""},
		{"messenger lookalike host", Messenger, "https://notfacebook.com/myPage", ""},
		{"messenger non http scheme", Messenger, "ftp://m.me/myPage", ""},
		{"messenger empty", Messenger, "   ", ""},
		{"messenger bad escape", Messenger, "https://m.me/%zz", ""},
		{"messenger escape not utf8", Messenger, "https://m.me/%C3", ""},
		{"messenger escaped handle", Messenger, "https://m.me/my%20page", "my page"},
		{"messenger dot segments", Messenger, "https://m.me/a/../b", "b"},
		{"messenger single dot", Messenger, "https://m.me/./shop", "shop"},
		{"messenger escaped dots", Messenger, "https://m.me/a/%2E%2e/b", "b"},
		{"messenger backslash", Messenger, `https://m.me\evil`, "evil"},
		{"messenger scheme-less backslash", Messenger, `m.me\shop`, "shop"},
		{"messenger port", Messenger, "https://m.me:443/shop", "shop"},
		{"messenger empty port", Messenger, "https://m.me:/shop", "shop"},
		{"messenger port out of range", Messenger, "http://m.me:99999/x", ""},
		{"messenger port not numeric", Messenger, "http://m.me:http/x", ""},
		{"messenger user info", Messenger, "https://user@m.me/shop", "shop"},
		{"messenger upper scheme", Messenger, "HTTPS://M.ME/shop", "shop"},
		{"messenger no host", Messenger, "https:///shop", ""},
		{"instagram profile", Instagram, "https://instagram.com/shop", "shop"},
		{"instagram www profile", Instagram, "https://www.instagram.com/shop/?hl=en", "shop"},
		{"instagram direct thread", Instagram, "https://instagram.com/direct/t/12345", "12345"},
		{"instagram direct inbox", Instagram, "https://instagram.com/direct/inbox", ""},
		{"instagram direct thread missing id", Instagram, "https://instagram.com/direct/t", ""},
		{"instagram ig.me m", Instagram, "https://ig.me/m/shop", "shop"},
		{"instagram ig.me m without id", Instagram, "https://ig.me/m", ""},
		{"instagram ig.me bare", Instagram, "https://ig.me/shop", "shop"},
		{"instagram scheme-less", Instagram, "instagram.com/shop", "shop"},
		{"instagram handle", Instagram, "@shop", "shop"},
		{"instagram empty", Instagram, "", ""},
		{"line verbatim", LINE, " @demo ", "@demo"},
		{"whatsapp verbatim", WhatsApp, "886912345678", "886912345678"},
		{"phone verbatim", Phone, " +886 2 1234 5678 ", "+886 2 1234 5678"},
		{"email verbatim", Email, "hi@example.com", "hi@example.com"},
		{"unknown platform", ID("fax"), "123", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.id, tt.raw); got != tt.want {
				t.Errorf("Sanitize(%s, %q) = %q, want %q", tt.id, tt.raw, got, tt.want)
			}
		})
	}
}

func TestLink(t *testing.T) {
	tests := []struct {
		id     ID
		handle string
		want   string
	}{
		{LINE, "@demo", "https://line.me/R/ti/p/%40demo"},
		{Messenger, "myPage", "https://m.me/myPage"},
		{WhatsApp, "886912345678", "https://wa.me/886912345678"},
		{Instagram, "shop", "https://ig.me/m/shop"},
		{Instagram, "a b/c", "https://ig.me/m/a%20b%2Fc"},
		{Phone, "+886 2 1234", "tel:+886 2 1234"},
		{Email, "hi@example.com", "mailto:hi@example.com"},
		{Messenger, "", ""},
	}
	for _, tt := range tests {
		if got := Link(tt.id, tt.handle); got != tt.want {
			t.Errorf("Link(%s, %q) = %q, want %q", tt.id, tt.handle, got, tt.want)
		}
	}
}

func TestEncodeComponent(t *testing.T) {
	tests := map[string]string{
		"abcXYZ019":   "abcXYZ019",
		"-_.!~*'()":   "-_.!~*'()",
		"@":           "%40",
		"a+b":         "a%2Bb",
		"é":           "%C3%A9",
		"</script>":   "%3C%2Fscript%3E",
		"q=1&r=2#top": "q%3D1%26r%3D2%23top",
	}
	for in, want := range tests {
		if got := EncodeComponent(in); got != want {
			t.Errorf("EncodeComponent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveSkipsEmptyIdentifiers(t *testing.T) {
	raw := map[ID]string{
		LINE:      "@demo",
		Instagram: "   ",
		Messenger: "https://example.com/nothing",
		Email:     "hi@example.com",
	}
	got := Resolve(raw, nil)
	if len(got) != 2 {
		t.Fatalf("expected 2 buttons, got %d: %+v", len(got), got)
	}
	if got[0].Platform != LINE || got[1].Platform != Email {
		t.Errorf("unexpected order: %s, %s", got[0].Platform, got[1].Platform)
	}
	if got[0].URL != "https://line.me/R/ti/p/%40demo" {
		t.Errorf("LINE url = %q", got[0].URL)
	}
	if got[0].Label != "LINE" || got[0].Color != "#06C755" {
		t.Errorf("LINE button = %+v", got[0])
	}
}

func TestResolveUsesLabeler(t *testing.T) {
	got := Resolve(map[ID]string{Phone: "0912"}, func(id ID) string { return "call-" + string(id) })
	if len(got) != 1 || got[0].Label != "call-phone" {
		t.Fatalf("unexpected buttons: %+v", got)
	}
}

func TestResolveNonEmptySetMatchesRawSet(t *testing.T) {
	raw := map[ID]string{
		LINE:      "@demo",
		Messenger: "https://m.me/myPage",
		WhatsApp:  "886900000000",
		Instagram: "https://instagram.com/direct/t/12345",
		Phone:     "0912",
		Email:     "hi@example.com",
	}
	got := Resolve(raw, nil)
	if len(got) != len(raw) {
		t.Fatalf("expected %d buttons, got %d", len(raw), len(got))
	}
	for _, b := range got {
		if _, ok := raw[b.Platform]; !ok {
			t.Errorf("unexpected platform %s", b.Platform)
		}
	}
}

func TestTrimSpace(t *testing.T) {
	tests := map[string]string{
		" \t@demo\n":       "@demo",
		"\uFEFFshop":       "shop",
		"\u3000shop\u00a0": "shop",
		"\u0085shop":       "\u0085shop",
	}
	for in, want := range tests {
		if got := TrimSpace(in); got != want {
			t.Errorf("TrimSpace(%q) = %q, want %q", in, got, want)
		}
	}
}
