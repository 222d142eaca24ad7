package button

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ziadkadry99/toldyou-button/internal/color"
	"github.com/ziadkadry99/toldyou-button/internal/platform"
)

func TestValidate(t *testing.T) {
	valid := Config{
		Platforms: Platforms{LINE: "@demo"},
		Position:  BottomRight,
		Color:     "#2563eb",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	empty := Config{Platforms: Platforms{Instagram: "   "}, Position: BottomLeft, Color: "#fff"}
	if err := empty.Validate(); !errors.Is(err, ErrNoPlatforms) {
		t.Errorf("all blank platforms: got %v", err)
	}

	bad := Config{Position: "top", Color: "rgb(300, 0, 0)"}
	err := bad.Validate()
	for _, want := range []error{ErrNoPlatforms, ErrInvalidPosition, color.ErrInvalid} {
		if !errors.Is(err, want) {
			t.Errorf("expected %v in %v", want, err)
		}
	}
}

func TestValidateRejectsUnusableValues(t *testing.T) {
	c := Config{
		Platforms: Platforms{
			LINE:      "@demo",
			Messenger: "https://example.com/x",
			Instagram: "https://instagram.com/direct/inbox",
		},
		Position: BottomRight,
		Color:    "#2563eb",
	}
	err := c.Validate()
	if !errors.Is(err, ErrUnusableValue) {
		t.Fatalf("expected ErrUnusableValue, got %v", err)
	}
	for _, name := range []string{"platforms.messenger", "platforms.instagram"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not name %s", err, name)
		}
	}
	if strings.Contains(err.Error(), "platforms.line") {
		t.Errorf("usable LINE value reported: %v", err)
	}
}

func TestValidatedConfigRendersEveryFilledPlatform(t *testing.T) {
	configs := []Platforms{
		{LINE: "@demo"},
		{Messenger: "m.me/shop", Instagram: "@shop"},
		{Messenger: "https://www.messenger.com/t/123", Instagram: "https://instagram.com/direct/t/9"},
		{WhatsApp: "886900000000", Phone: "0912", Email: "hi@example.com"},
	}
	for _, p := range configs {
		c := Config{Platforms: p, Position: BottomLeft, Color: "#000"}
		if err := c.Validate(); err != nil {
			t.Errorf("Validate(%+v): %v", p, err)
			continue
		}
		if got, want := len(c.Buttons(nil)), p.Filled(); got != want {
			t.Errorf("%+v rendered %d buttons, want %d", p, got, want)
		}
	}
}

func TestValuesSkipsBlank(t *testing.T) {
	p := Platforms{LINE: "@demo", Instagram: "  ", Email: "a@b.com"}
	v := p.Values()
	if len(v) != 2 || v[platform.LINE] != "@demo" || v[platform.Email] != "a@b.com" {
		t.Errorf("Values = %+v", v)
	}
	if p.Get(platform.ID("fax")) != "" {
		t.Error("unknown platform should be blank")
	}
}

func TestBlankInstagramProducesNoButton(t *testing.T) {
	c := Config{Platforms: Platforms{LINE: "@demo", Instagram: ""}, Position: BottomRight, Color: "#2563eb"}
	for _, b := range c.Buttons(nil) {
		if b.Platform == platform.Instagram {
			t.Fatal("instagram button rendered for blank value")
		}
	}
}

func TestMainColor(t *testing.T) {
	if got := (Config{Color: "#F57"}).MainColor(); got != "#ff5577" {
		t.Errorf("MainColor = %q", got)
	}
	if got := (Config{Color: "blue"}).MainColor(); got != DefaultColor {
		t.Errorf("MainColor fallback = %q", got)
	}
}

func TestJSONShape(t *testing.T) {
	var c Config
	body := `{"platforms":{"line":"@demo","whatsapp":"886900"},"position":"bottom-left","color":"rgb(1,2,3)"}`
	if err := json.Unmarshal([]byte(body), &c); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if c.Platforms.WhatsApp != "886900" || c.Position != BottomLeft {
		t.Errorf("decoded %+v", c)
	}
	out, _ := json.Marshal(c.Platforms)
	if string(out) != `{"line":"@demo","whatsapp":"886900"}` {
		t.Errorf("Marshal = %s", out)
	}
}
