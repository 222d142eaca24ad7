package widget

// runtimeTemplate is the DOM and state machine code shared by the legacy
// script and the loader. It expects CHAT_ICON to be defined by the caller.
const runtimeTemplate = `{{define "runtime"}}
  var SVG_NS = 'http://www.w3.org/2000/svg';
  var HIDDEN_TRANSFORM = 'translateY(8px) scale(0.95)';
  var SHOWN_TRANSFORM = 'translateY(0) scale(1)';

  function icon(d, size) {
    var svg = document.createElementNS(SVG_NS, 'svg');
    svg.setAttribute('width', String(size));
    svg.setAttribute('height', String(size));
    svg.setAttribute('viewBox', '0 0 24 24');
    svg.setAttribute('fill', 'currentColor');
    svg.setAttribute('aria-hidden', 'true');
    var path = document.createElementNS(SVG_NS, 'path');
    path.setAttribute('d', d);
    svg.appendChild(path);
    return svg;
  }

  function hover(el, over, out) {
    el.addEventListener('mouseenter', function() {
      for (var k in over) el.style[k] = over[k];
    });
    el.addEventListener('mouseleave', function() {
      for (var k in out) el.style[k] = out[k];
    });
  }

  function platformButton(btn, index) {
    var a = document.createElement('a');
    a.href = btn.url;
    a.target = '_blank';
    a.rel = 'noopener noreferrer';
    a.title = btn.label;
    a.setAttribute('aria-label', btn.label);
    a.style.cssText = 'display:flex;align-items:center;justify-content:center;width:48px;height:48px;border-radius:50%;color:#fff;text-decoration:none;box-shadow:0 4px 12px rgba(0,0,0,0.15);transition:transform 0.2s,box-shadow 0.2s;';
    a.style.backgroundColor = btn.color;
    a.style.transitionDelay = (index * 0.03) + 's';
    a.appendChild(icon(btn.icon, 24));
    hover(a,
      { transform: 'scale(1.1)', boxShadow: '0 6px 16px rgba(0,0,0,0.2)' },
      { transform: 'scale(1)', boxShadow: '0 4px 12px rgba(0,0,0,0.15)' });
    return a;
  }

  function Widget(options) {
    this.buttons = options.buttons || [];
    this.position = options.position;
    this.color = options.color;
    this.toggleLabel = options.toggleLabel;
    this.backlinkText = options.backlinkText;
    this.backlinkUrl = options.backlinkUrl;
    this.expanded = false;
    this.container = null;
    this.panel = null;
    this.toggle = null;
  }

  Widget.prototype.build = function() {
    var self = this;

    var container = document.createElement('div');
    container.id = 'toldyou-button-widget';
    container.style.cssText = 'position:fixed;' + (this.position === 'bottom-left' ? 'left:24px;' : 'right:24px;') + 'bottom:24px;z-index:9999;display:flex;flex-direction:column;gap:12px;align-items:center;';

    var panel = document.createElement('div');
    panel.style.cssText = 'display:flex;flex-direction:column;gap:12px;align-items:center;opacity:0;transform:' + HIDDEN_TRANSFORM + ';transition:opacity 0.18s ease,transform 0.18s ease;pointer-events:none;';
    for (var i = 0; i < this.buttons.length; i++) {
      panel.appendChild(platformButton(this.buttons[i], i));
    }
    container.appendChild(panel);

    var toggle = document.createElement('button');
    toggle.type = 'button';
    toggle.style.cssText = 'width:56px;height:56px;border-radius:50%;color:#fff;border:none;cursor:pointer;display:flex;align-items:center;justify-content:center;box-shadow:0 4px 16px rgba(0,0,0,0.2);transition:transform 0.2s,box-shadow 0.2s;';
    toggle.style.backgroundColor = this.color;
    toggle.setAttribute('aria-label', this.toggleLabel);
    toggle.setAttribute('aria-expanded', 'false');
    toggle.appendChild(icon(CHAT_ICON, 28));
    toggle.addEventListener('click', function(e) {
      e.stopPropagation();
      self.setExpanded(!self.expanded);
    });
    hover(toggle,
      { transform: 'scale(1.05)', boxShadow: '0 6px 20px rgba(0,0,0,0.25)' },
      { transform: 'scale(1)', boxShadow: '0 4px 16px rgba(0,0,0,0.2)' });
    container.appendChild(toggle);

    var backlink = document.createElement('a');
    backlink.href = this.backlinkUrl;
    backlink.target = '_blank';
    backlink.rel = 'noopener';
    backlink.textContent = this.backlinkText;
    backlink.style.cssText = 'font-size:11px;color:#9ca3af;text-decoration:none;transition:color 0.2s;';
    hover(backlink, { color: '#6b7280' }, { color: '#9ca3af' });
    container.appendChild(backlink);

    this.container = container;
    this.panel = panel;
    this.toggle = toggle;
    return container;
  };

  Widget.prototype.setExpanded = function(expanded) {
    this.expanded = expanded;
    var s = this.panel.style;
    s.opacity = expanded ? '1' : '0';
    s.transform = expanded ? SHOWN_TRANSFORM : HIDDEN_TRANSFORM;
    s.pointerEvents = expanded ? 'auto' : 'none';
    this.toggle.setAttribute('aria-expanded', expanded ? 'true' : 'false');
  };

  // Installed once per widget; both listeners only ever collapse.
  Widget.prototype.bind = function(doc) {
    var self = this;
    doc.addEventListener('click', function(e) {
      if (self.expanded && !self.container.contains(e.target)) {
        self.setExpanded(false);
      }
    });
    doc.addEventListener('keydown', function(e) {
      if (self.expanded && (e.key === 'Escape' || e.key === 'Esc')) {
        self.setExpanded(false);
      }
    });
  };

  Widget.prototype.attach = function(doc) {
    var container = this.container;
    if (doc.readyState === 'loading') {
      doc.addEventListener('DOMContentLoaded', function() {
        doc.body.appendChild(container);
      });
    } else {
      doc.body.appendChild(container);
    }
  };

  function mount(options) {
    if (!options.buttons || !options.buttons.length) {
      console.warn('ToldYou Button: no contact platforms configured');
      return null;
    }
    var widget = new Widget(options);
    widget.build();
    widget.bind(document);
    widget.attach(document);
    return widget;
  }
{{end}}`

// legacyTemplate renders a self-contained widget with every value resolved
// on the server.
const legacyTemplate = `(function() {
  'use strict';

  var CHAT_ICON = {{json .ChatIcon}};
  var OPTIONS = {{json .Options}};
{{template "runtime"}}
  mount(OPTIONS);
})();`

// loaderTemplate renders the universal loader served at /widget.js. The
// platform table and sanitiser rules are the same ones the server uses.
const loaderTemplate = `(function() {
  'use strict';

  var CHAT_ICON = {{json .ChatIcon}};
  var PLATFORMS = {{json .Platforms}};
  var LOCALES = {{json .Locales}};
  var FALLBACK_LANG = {{json .FallbackLang}};
  var DEFAULT_COLOR = {{json .DefaultColor}};
  var BACKLINK_URL = {{json .BacklinkURL}};

  var script = document.currentScript || (function() {
    var tags = document.querySelectorAll('script[data-config-id]');
    return tags[tags.length - 1];
  })();
  var configId = script && script.getAttribute('data-config-id');
  if (!configId) {
    console.error('ToldYou Button: data-config-id attribute is required');
    return;
  }
  var apiBase = script.getAttribute('data-api-base') || (script.src || '').replace(/\/widget\.js(?:[?#].*)?$/, '');
  apiBase = apiBase.replace(/\/+$/, '');

  function endsWith(s, suffix) {
    return s.length >= suffix.length && s.slice(s.length - suffix.length) === suffix;
  }

  function hostMatches(rule, host) {
    host = host.toLowerCase();
    if (host.indexOf('www.') === 0) host = host.slice(4);
    if (host === rule.host) return true;
    return !!rule.suffix && endsWith(host, '.' + rule.host);
  }

  function applyExtractor(e, segs) {
    var i;
    if (e.after) {
      for (i = 0; i + 1 < segs.length; i++) {
        if (segs[i] === e.after) return { value: segs[i + 1] };
      }
      return null;
    }
    if (e.prefix && e.prefix.length) {
      if (segs.length < e.prefix.length) return null;
      for (i = 0; i < e.prefix.length; i++) {
        if (segs[i] !== e.prefix[i]) return null;
      }
    }
    var idx = e.index < 0 ? segs.length + e.index : e.index;
    return { value: idx >= 0 && idx < segs.length ? segs[idx] : '' };
  }

  function extract(rule, segs) {
    for (var i = 0; i < rule.extract.length; i++) {
      var e = rule.extract[i];
      var got = applyExtractor(e, segs);
      if (!got) continue;
      if (e.exclude && e.exclude.indexOf(got.value) !== -1) return '';
      return got.value;
    }
    return '';
  }

  function validPort(s) {
    var n = 0;
    for (var i = 0; i < s.length; i++) {
      var c = s.charCodeAt(i);
      if (c < 48 || c > 57) return false;
      n = n * 10 + (c - 48);
      if (n > 65535) return false;
    }
    return true;
  }

  function pathSegments(path) {
    var out = [];
    var parts = path.split('/');
    for (var i = 0; i < parts.length; i++) {
      if (!parts[i]) continue;
      var seg;
      try {
        seg = decodeURIComponent(parts[i]);
      } catch (e) {
        return null;
      }
      if (seg === '.') continue;
      if (seg === '..') {
        if (out.length) out.pop();
        continue;
      }
      out.push(seg);
    }
    return out;
  }

  function splitURL(rest) {
    rest = rest.split('\\').join('/');
    var authority = rest, path = '';
    var i = rest.search(/[\/?#]/);
    if (i !== -1) {
      authority = rest.slice(0, i);
      path = rest.slice(i);
    }
    i = path.search(/[?#]/);
    if (i !== -1) path = path.slice(0, i);
    i = authority.lastIndexOf('@');
    if (i !== -1) authority = authority.slice(i + 1);
    var host = authority;
    i = authority.lastIndexOf(':');
    if (i !== -1) {
      host = authority.slice(0, i);
      if (!validPort(authority.slice(i + 1))) return null;
    }
    if (!host) return null;
    var segs = pathSegments(path);
    if (!segs) return null;
    return { host: host, segs: segs };
  }

  function profileURL(value, rules) {
    var i = value.indexOf('://');
    if (i !== -1) {
      var scheme = value.slice(0, i).toLowerCase();
      if (scheme !== 'http' && scheme !== 'https') return { url: null };
      return { url: splitURL(value.slice(i + 3)) };
    }
    var head = value.split(/[\/\\?#]/)[0];
    if (head.indexOf('.') === -1) return null;
    for (var j = 0; j < rules.length; j++) {
      if (hostMatches(rules[j], head)) return { url: splitURL(value) };
    }
    return null;
  }

  function fromURL(u, rules) {
    for (var i = 0; i < rules.length; i++) {
      if (hostMatches(rules[i], u.host)) {
        return extract(rules[i], u.segs).trim();
      }
    }
    return '';
  }

  function bareHandle(value) {
    if (value.charAt(0) === '@') value = value.slice(1);
    return value.split(/[\/?#]/)[0].trim();
  }

  function sanitize(spec, raw) {
    var value = typeof raw === 'string' ? raw.trim() : '';
    if (!value) return '';
    if (!spec.rules || !spec.rules.length) return value;
    var parsed = profileURL(value, spec.rules);
    if (parsed) {
      return parsed.url ? fromURL(parsed.url, spec.rules) : '';
    }
    return bareHandle(value);
  }

  function buildLink(spec, id) {
    return spec.prefix + (spec.encode ? encodeURIComponent(id) : id);
  }

  function resolveButtons(platforms, labels) {
    var buttons = [];
    platforms = platforms || {};
    for (var i = 0; i < PLATFORMS.length; i++) {
      var spec = PLATFORMS[i];
      var id = sanitize(spec, platforms[spec.id]);
      if (!id) continue;
      buttons.push({
        platform: spec.id,
        url: buildLink(spec, id),
        icon: spec.icon,
        color: spec.color,
        label: labels[spec.id] || spec.name
      });
    }
    return buttons;
  }

  function normalizeColor(value) {
    var s = typeof value === 'string' ? value : '';
    var m = /^#([0-9a-f]{3}|[0-9a-f]{6})$/i.exec(s);
    if (m) {
      var d = m[1].toLowerCase();
      if (d.length === 3) {
        d = d.charAt(0) + d.charAt(0) + d.charAt(1) + d.charAt(1) + d.charAt(2) + d.charAt(2);
      }
      return '#' + d;
    }
    m = /^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$/i.exec(s);
    if (!m) return DEFAULT_COLOR;
    var out = '#';
    for (var i = 1; i <= 3; i++) {
      var n = parseInt(m[i], 10);
      if (n > 255) return DEFAULT_COLOR;
      out += (n < 16 ? '0' : '') + n.toString(16);
    }
    return out;
  }
{{template "runtime"}}
  fetch(apiBase + '/api/configs/' + encodeURIComponent(configId), { credentials: 'omit' })
    .then(function(response) {
      if (!response.ok) throw new Error('failed to load configuration (' + response.status + ')');
      return response.json();
    })
    .then(function(data) {
      if (!data || !data.success || !data.config) throw new Error('configuration not found');
      var config = data.config;
      var locale = LOCALES[data.lang] || LOCALES[FALLBACK_LANG];
      mount({
        buttons: resolveButtons(config.platforms, locale.labels),
        position: config.position,
        color: normalizeColor(config.color),
        toggleLabel: locale.toggle,
        backlinkText: locale.backlink,
        backlinkUrl: BACKLINK_URL
      });
    })
    .catch(function(error) {
      console.error('ToldYou Button:', error);
    });
})();`
