package plugin

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/host"
	"github.com/dshills/addonkit/internal/i18n"
	"github.com/dshills/addonkit/internal/input/keymap"
	plua "github.com/dshills/addonkit/internal/plugin/lua"
	"github.com/dshills/addonkit/internal/props"
)

// options holds the settings shared by Loader and Manager. Options that
// only concern registration are ignored by NewLoader.
type options struct {
	caps      []addon.Capability
	debug     bool
	markers   *addon.Markers
	manifests ManifestReader
	logger    *log.Logger
	path      *plua.SearchPath
	timeout   time.Duration
	keymaps   *keymap.Manager
	props     *props.Manager

	name         string
	translations i18n.Table
	category     string
	host         host.Host
	onReload     func(error)
}

// Option configures a Loader or a Manager.
type Option func(*options)

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.caps == nil {
		o.caps = addon.DefaultCapabilities()
	}
	if o.markers == nil {
		o.markers = addon.DefaultMarkers()
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.path == nil {
		o.path = plua.DefaultSearchPath()
	}
	return o
}

// WithCapabilities sets the capabilities a class must implement to be
// registered. The default is addon.DefaultCapabilities().
func WithCapabilities(caps ...addon.Capability) Option {
	return func(o *options) {
		o.caps = caps
	}
}

// WithDebug turns debug mode on: debug modules are loaded and Reload and
// Watch are enabled.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithMarkers sets the marker registry consulted for disable and priority
// markers. The default is addon.DefaultMarkers().
func WithMarkers(m *addon.Markers) Option {
	return func(o *options) {
		o.markers = m
	}
}

// WithManifestReader sets how package manifests are read.
func WithManifestReader(r ManifestReader) Option {
	return func(o *options) {
		o.manifests = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSearchPath sets the module search path. The default is
// plua.DefaultSearchPath().
func WithSearchPath(p *plua.SearchPath) Option {
	return func(o *options) {
		o.path = p
	}
}

// WithExecutionTimeout bounds each top-level module execution.
func WithExecutionTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithKeymaps sets the keymap manager exposed to add-on code as
// addon.keymap and torn down on unregister.
func WithKeymaps(m *keymap.Manager) Option {
	return func(o *options) {
		o.keymaps = m
	}
}

// WithProperties sets the properties manager exposed to add-on code as
// addon.props and torn down on unregister.
func WithProperties(m *props.Manager) Option {
	return func(o *options) {
		o.props = m
	}
}

// WithAddonName sets the add-on name. It namespaces properties and
// translations.
func WithAddonName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithTranslations sets the translation table registered with the host.
func WithTranslations(t i18n.Table) Option {
	return func(o *options) {
		o.translations = t
	}
}

// WithCategory sets the category given to panels that declare none.
func WithCategory(category string) Option {
	return func(o *options) {
		o.category = category
	}
}

// WithHost sets the host collaborators classes, keymaps, properties and
// translations are registered with.
func WithHost(h host.Host) Option {
	return func(o *options) {
		o.host = h
	}
}

// WithReloadHandler sets a function called after every reload Watch
// triggers, with the reload's error.
func WithReloadHandler(fn func(error)) Option {
	return func(o *options) {
		o.onReload = fn
	}
}
