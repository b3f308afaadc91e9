package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/addonkit/internal/addon"
)

// FileName is the configuration file looked up at an add-on root.
const FileName = "addon.toml"

// Addon holds an add-on's loader and registration defaults.
type Addon struct {
	Name         string   `toml:"name"`
	Namespace    string   `toml:"namespace"`
	Category     string   `toml:"category"`
	Debug        bool     `toml:"debug"`
	TargetDirs   []string `toml:"target_dirs"`
	Translations string   `toml:"translations"`
	Capabilities []string `toml:"capabilities"`
}

// Default returns the configuration used when root has no addon.toml. The
// name is the directory name; no namespace is set.
func Default(root string) *Addon {
	return &Addon{Name: filepath.Base(filepath.Clean(root))}
}

// Load reads root/addon.toml. A missing file yields Default(root).
func Load(root string) (*Addon, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(root), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(root, path, data)
}

// Parse decodes addon.toml content. An unset name falls back to the root
// directory name and an unset namespace to the declared name.
func Parse(root, source string, data []byte) (*Addon, error) {
	cfg := Default(root)
	if err := toml.Unmarshal(data, cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	// A declared name doubles as the namespace; the directory fallback does not.
	if cfg.Namespace == "" {
		cfg.Namespace = cfg.Name
	}
	if cfg.Name == "" {
		cfg.Name = Default(root).Name
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

// Validate checks target directories and capability names.
func (a *Addon) Validate() error {
	var errs []error
	for _, dir := range a.TargetDirs {
		if dir == "" || filepath.IsAbs(dir) || strings.Contains(filepath.ToSlash(dir), "/") {
			errs = append(errs, fmt.Errorf("%w: target_dirs entry %q must be a directory name", ErrValidationFailed, dir))
		}
	}
	for _, c := range a.Capabilities {
		if _, err := addon.ParseCapability(c); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", ErrValidationFailed, err))
		}
	}
	return errors.Join(errs...)
}

// CapabilitySet returns the configured capabilities, or the default set.
func (a *Addon) CapabilitySet() []addon.Capability {
	if len(a.Capabilities) == 0 {
		return addon.DefaultCapabilities()
	}
	caps := make([]addon.Capability, 0, len(a.Capabilities))
	for _, c := range a.Capabilities {
		if cap, err := addon.ParseCapability(c); err == nil {
			caps = append(caps, cap)
		}
	}
	return caps
}

// TranslationsPath returns the translations file resolved against root, or
// "" when none is configured.
func (a *Addon) TranslationsPath(root string) string {
	if a.Translations == "" {
		return ""
	}
	if filepath.IsAbs(a.Translations) {
		return a.Translations
	}
	return filepath.Join(root, a.Translations)
}
