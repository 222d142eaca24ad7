package widget

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/dop251/goja"

	"github.com/ziadkadry99/toldyou-button/internal/button"
	"github.com/ziadkadry99/toldyou-button/internal/i18n"
	"github.com/ziadkadry99/toldyou-button/internal/platform"
)

// domStub is the slice of the browser the widget scripts touch: element
// creation, attributes, listeners, console and fetch.
const domStub = `
var __created = [];
var __errors = [];
var __warnings = [];
var __fetches = [];
var __response = null;

function Element(tag) {
  this.tagName = String(tag).toUpperCase();
  this.style = {};
  this.attributes = {};
  this.children = [];
  this.listeners = {};
  this.parentNode = null;
  __created.push(this);
}
Element.prototype.setAttribute = function(k, v) { this.attributes[k] = String(v); };
Element.prototype.getAttribute = function(k) {
  return Object.prototype.hasOwnProperty.call(this.attributes, k) ? this.attributes[k] : null;
};
Element.prototype.appendChild = function(c) { c.parentNode = this; this.children.push(c); return c; };
Element.prototype.addEventListener = function(type, fn) {
  (this.listeners[type] = this.listeners[type] || []).push(fn);
};
Element.prototype.dispatch = function(type, event) {
  var ls = this.listeners[type] || [];
  for (var i = 0; i < ls.length; i++) ls[i](event);
};
Element.prototype.contains = function(node) {
  for (var n = node; n; n = n.parentNode) if (n === this) return true;
  return false;
};

var document = new Element('#document');
document.readyState = 'complete';
document.body = new Element('body');
document.currentScript = null;
document.createElement = function(tag) { return new Element(tag); };
document.createElementNS = function(ns, tag) { return new Element(tag); };
document.querySelectorAll = function() { return []; };

var console = {
  error: function() { __errors.push(Array.prototype.slice.call(arguments).join(' ')); },
  warn: function() { __warnings.push(Array.prototype.slice.call(arguments).join(' ')); }
};

function fetch(url) {
  __fetches.push(url);
  var r = __response;
  return Promise.resolve({
    ok: r.status >= 200 && r.status < 300,
    status: r.status,
    json: function() { return Promise.resolve(r.body); }
  });
}

function __useScript(src, attrs) {
  var s = new Element('script');
  s.src = src;
  for (var k in attrs) s.setAttribute(k, attrs[k]);
  document.currentScript = s;
}

function __first(tag) {
  for (var i = 0; i < __created.length; i++) {
    if (__created[i].tagName === tag) return __created[i];
  }
  return null;
}

function __hrefs() {
  var out = [];
  for (var i = 0; i < __created.length; i++) {
    var e = __created[i];
    if (e.tagName === 'A' && e.getAttribute('aria-label') !== null) out.push(e.href);
  }
  return out;
}

function __state() {
  var toggle = __first('BUTTON');
  var widget = document.body.children[0];
  return {
    expanded: toggle.getAttribute('aria-expanded'),
    opacity: widget.children[0].style.opacity
  };
}
`

type page struct {
	t  *testing.T
	vm *goja.Runtime
}

func newPage(t *testing.T) *page {
	t.Helper()
	p := &page{t: t, vm: goja.New()}
	p.run(domStub)
	return p
}

func (p *page) run(src string) goja.Value {
	p.t.Helper()
	v, err := p.vm.RunString(src)
	if err != nil {
		p.t.Fatalf("script error: %v", err)
	}
	return v
}

// eval runs expr and decodes its JSON form into out.
func (p *page) eval(expr string, out any) {
	p.t.Helper()
	s := p.run("JSON.stringify(" + expr + ")").String()
	if err := json.Unmarshal([]byte(s), out); err != nil {
		p.t.Fatalf("decoding %s = %s: %v", expr, s, err)
	}
}

func (p *page) hrefs() []string {
	p.t.Helper()
	var out []string
	p.eval("__hrefs()", &out)
	return out
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

// loadWidget runs the loader as if embedded with attrs, answering its config
// request with status and body.
func loadWidget(t *testing.T, attrs map[string]string, status int, body any) *page {
	t.Helper()
	js, _, err := NewGenerator("test").Loader()
	if err != nil {
		t.Fatalf("Loader: %v", err)
	}
	p := newPage(t)
	p.run("__useScript('https://toldyou.example/widget.js?v=test', " + mustJSON(t, attrs) + ")")
	p.run("__response = {status: " + mustJSON(t, status) + ", body: " + mustJSON(t, body) + "}")
	p.run(string(js))
	return p
}

type configResponse struct {
	Success bool          `json:"success"`
	Config  button.Config `json:"config"`
	Lang    i18n.Language `json:"lang"`
}

func loadConfig(t *testing.T, cfg button.Config, lang i18n.Language) *page {
	t.Helper()
	return loadWidget(t, map[string]string{"data-config-id": "cfg-1"}, 200,
		configResponse{Success: true, Config: cfg, Lang: lang})
}

func goHrefs(raw map[platform.ID]string) []string {
	var out []string
	for _, b := range platform.Resolve(raw, nil) {
		out = append(out, b.URL)
	}
	return out
}

func TestLoaderMatchesServerSanitizer(t *testing.T) {
	tests := []struct {
		id  platform.ID
		raw string
	}{
		{platform.Messenger, "https://m.me/myPage"},
		{platform.Messenger, "@myPage"},
		{platform.Messenger, "myPage?ref=bio"},
		{platform.Messenger, "my.page"},
		{platform.Messenger, "https://www.facebook.com/myPage/"},
		{platform.Messenger, "https://web.facebook.com/messages/t/98765/"},
		{platform.Messenger, "https://www.messenger.com/t"},
		{platform.Messenger, "m.me/myPage"},
		{platform.Messenger, "https://example.com/myPage"},
		{platform.Messenger, "ftp://m.me/myPage"},
		{platform.Messenger, "https://m.me/%zz"},
		{platform.Messenger, "https://m.me/%C3"},
		{platform.Messenger, "https://m.me/my%20page"},
		{platform.Messenger, "https://m.me/a/../b"},
		{platform.Messenger, "https://m.me/a/%2e%2E/b"},
		{platform.Messenger, `https://m.me\evil`},
		{platform.Messenger, `m.me\shop`},
		{platform.Messenger, "http://m.me:99999/x"},
		{platform.Messenger, "http://m.me:8080/x"},
		{platform.Messenger, "https://user@m.me/shop"},
		{platform.Messenger, "HTTPS://M.ME/shop"},
		{platform.Messenger, "https:///shop"},
		{platform.Instagram, "https://instagram.com/direct/t/12345"},
		{platform.Instagram, "https://instagram.com/direct/inbox"},
		{platform.Instagram, "https://www.instagram.com/shop/?hl=en"},
		{platform.Instagram, "https://ig.me/m"},
		{platform.Instagram, "https://ig.me/m/shop"},
		{platform.Instagram, "instagram.com/shop"},
		{platform.LINE, " @demo "},
		{platform.WhatsApp, "+886 912"},
		{platform.Phone, "+81 3-1234-5678"},
		{platform.Email, "hi+shop@example.com"},
	}
	for _, tt := range tests {
		t.Run(string(tt.id)+" "+tt.raw, func(t *testing.T) {
			raw := map[platform.ID]string{platform.Phone: "0912", tt.id: tt.raw}
			var cfg button.Config
			if err := json.Unmarshal([]byte(`{"platforms":`+mustJSON(t, raw)+`,"position":"bottom-right","color":"#000"}`), &cfg); err != nil {
				t.Fatalf("config: %v", err)
			}

			got := loadConfig(t, cfg, i18n.English).hrefs()
			want := goHrefs(raw)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("loader links %q, server links %q", got, want)
			}
		})
	}
}

func TestLoaderRendersNoButtonForBlankInstagram(t *testing.T) {
	p := loadConfig(t, button.Config{
		Platforms: button.Platforms{LINE: "@demo", Instagram: "   "},
		Position:  button.BottomLeft,
		Color:     "#f57",
	}, i18n.Japanese)

	hrefs := p.hrefs()
	if len(hrefs) != 1 || hrefs[0] != "https://line.me/R/ti/p/%40demo" {
		t.Errorf("rendered links %q", hrefs)
	}

	var mounted struct {
		ID       string            `json:"id"`
		Style    map[string]string `json:"style"`
		Backlink string            `json:"backlink"`
	}
	p.eval(`{id: document.body.children[0].id, style: __first('BUTTON').style, backlink: document.body.children[0].children[2].textContent}`, &mounted)
	if mounted.ID != "toldyou-button-widget" {
		t.Errorf("container id = %q", mounted.ID)
	}
	if mounted.Style["backgroundColor"] != "#ff5577" {
		t.Errorf("toggle colour = %q", mounted.Style["backgroundColor"])
	}
	if mounted.Backlink != "レポートデータ" {
		t.Errorf("backlink text = %q", mounted.Backlink)
	}
}

func TestLoaderFetchesFromScriptOrigin(t *testing.T) {
	tests := []struct {
		name  string
		attrs map[string]string
		want  string
	}{
		{"derived from src", map[string]string{"data-config-id": "a b"}, "https://toldyou.example/api/configs/a%20b"},
		{"explicit api base", map[string]string{"data-config-id": "id-1", "data-api-base": "https://api.example/"}, "https://api.example/api/configs/id-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := loadWidget(t, tt.attrs, 404, map[string]any{"success": false})
			var fetches []string
			p.eval("__fetches", &fetches)
			if len(fetches) != 1 || fetches[0] != tt.want {
				t.Errorf("fetches = %q, want %q", fetches, tt.want)
			}
		})
	}
}

func TestLoaderHalts(t *testing.T) {
	tests := []struct {
		name      string
		attrs     map[string]string
		status    int
		body      any
		wantFetch bool
	}{
		{"missing config id", map[string]string{}, 200, nil, false},
		{"not found", map[string]string{"data-config-id": "x"}, 404, map[string]any{"success": false, "error": "configuration not found"}, true},
		{"unsuccessful body", map[string]string{"data-config-id": "x"}, 200, map[string]any{"success": false}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := loadWidget(t, tt.attrs, tt.status, tt.body)
			var state struct {
				Fetches  int      `json:"fetches"`
				Errors   []string `json:"errors"`
				Children int      `json:"children"`
			}
			p.eval("{fetches: __fetches.length, errors: __errors, children: document.body.children.length}", &state)
			if (state.Fetches > 0) != tt.wantFetch {
				t.Errorf("fetches = %d", state.Fetches)
			}
			if len(state.Errors) != 1 {
				t.Errorf("console errors = %q", state.Errors)
			}
			if state.Children != 0 {
				t.Errorf("widget mounted %d elements", state.Children)
			}
		})
	}
}

func TestLoaderWarnsWhenNothingToRender(t *testing.T) {
	p := loadConfig(t, button.Config{
		Platforms: button.Platforms{Messenger: "https://example.com/x"},
		Position:  button.BottomRight,
	}, i18n.English)

	var state struct {
		Warnings []string `json:"warnings"`
		Children int      `json:"children"`
	}
	p.eval("{warnings: __warnings, children: document.body.children.length}", &state)
	if len(state.Warnings) != 1 || state.Children != 0 {
		t.Errorf("state = %+v", state)
	}
}

type widgetState struct {
	Expanded string `json:"expanded"`
	Opacity  string `json:"opacity"`
}

func TestWidgetExpandCollapse(t *testing.T) {
	p := loadConfig(t, button.Config{
		Platforms: button.Platforms{LINE: "@demo", Phone: "0912"},
		Position:  button.BottomRight,
		Color:     "#000",
	}, i18n.English)

	clickToggle := `__first('BUTTON').dispatch('click', {target: __first('BUTTON'), stopPropagation: function() {}})`
	clickInside := `document.dispatch('click', {target: __first('A')})`
	clickOutside := `document.dispatch('click', {target: document.body})`
	press := func(key string) string {
		return `document.dispatch('keydown', {key: ` + mustJSON(t, key) + `})`
	}

	steps := []struct {
		name   string
		action string
		want   widgetState
	}{
		{"open", clickToggle, widgetState{"true", "1"}},
		{"click inside keeps open", clickInside, widgetState{"true", "1"}},
		{"other key keeps open", press("Enter"), widgetState{"true", "1"}},
		{"escape closes", press("Escape"), widgetState{"false", "0"}},
		{"escape while closed", press("Escape"), widgetState{"false", "0"}},
		{"reopen", clickToggle, widgetState{"true", "1"}},
		{"outside click closes", clickOutside, widgetState{"false", "0"}},
		{"toggle twice", clickToggle + ";" + clickToggle, widgetState{"false", "0"}},
	}
	for _, step := range steps {
		p.run(step.action)
		var got widgetState
		p.eval("__state()", &got)
		if got != step.want {
			t.Fatalf("%s: state = %+v, want %+v", step.name, got, step.want)
		}
	}
}

func TestLegacyScriptRuns(t *testing.T) {
	body, err := NewGenerator("test").LegacyScript(sampleConfig(), i18n.English)
	if err != nil {
		t.Fatalf("LegacyScript: %v", err)
	}
	p := newPage(t)
	p.run(body)

	got := p.hrefs()
	want := goHrefs(sampleConfig().Platforms.Values())
	if !reflect.DeepEqual(got, want) {
		t.Errorf("legacy links %q, want %q", got, want)
	}
	var fetches int
	p.eval("__fetches.length", &fetches)
	if fetches != 0 {
		t.Errorf("legacy script fetched %d times", fetches)
	}
}
