package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/config"
	"github.com/dshills/addonkit/internal/i18n"
	"github.com/dshills/addonkit/internal/plugin"
)

// project is an add-on on disk with its addon.toml applied.
type project struct {
	root         plugin.Root
	cfg          *config.Addon
	dirs         []string
	translations i18n.Table
	markers      *addon.Markers
}

func (c *cli) openProject(path string) (*project, error) {
	root, err := plugin.NewRoot(path)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(root.Dir)
	if err != nil {
		return nil, err
	}

	p := &project{root: root, cfg: cfg, markers: addon.NewMarkers()}

	switch {
	case len(c.settings.Dirs) > 0:
		p.dirs = c.settings.Dirs
	case len(cfg.TargetDirs) > 0:
		p.dirs = cfg.TargetDirs
	default:
		if p.dirs, err = subdirectories(root.Dir); err != nil {
			return nil, err
		}
	}

	if tp := cfg.TranslationsPath(root.Dir); tp != "" {
		if p.translations, err = i18n.LoadYAML(tp); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *project) debug(c *cli) bool {
	return c.settings.Debug || p.cfg.Debug
}

// options returns the loader and manager options for the project.
func (p *project) options(c *cli, extra ...plugin.Option) []plugin.Option {
	opts := []plugin.Option{
		plugin.WithDebug(p.debug(c)),
		plugin.WithCapabilities(p.cfg.CapabilitySet()...),
		plugin.WithMarkers(p.markers),
		plugin.WithLogger(c.logger),
		plugin.WithAddonName(p.cfg.Namespace),
		plugin.WithCategory(p.cfg.Category),
	}
	if p.translations != nil {
		opts = append(opts, plugin.WithTranslations(p.translations))
	}
	return append(opts, extra...)
}

// subdirectories lists the directories a package's modules may live in.
func subdirectories(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__") || strings.Contains(name, ".") {
			continue
		}
		out = append(out, name)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: no target directories", dir)
	}
	sort.Strings(out)
	return out, nil
}
