package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/addonkit/internal/host/memhost"
	"github.com/dshills/addonkit/internal/input/keymap"
	"github.com/dshills/addonkit/internal/plugin"
	"github.com/dshills/addonkit/internal/props"
)

// newManager creates a manager for p registering into an in-memory host.
func (c *cli) newManager(p *project, h *memhost.Host, extra ...plugin.Option) (*plugin.Manager, error) {
	opts := p.options(c, append([]plugin.Option{
		plugin.WithHost(h.Bundle()),
		plugin.WithKeymaps(keymap.New(h, p.markers)),
		plugin.WithProperties(props.New(h, p.markers)),
	}, extra...)...)
	return plugin.NewManager(p.root.Dir, p.dirs, opts...)
}

// title names the add-on by its namespace, or by its name when it has none.
func (p *project) title(m *plugin.Manager) string {
	if ns := m.Name(); ns != "" {
		return ns
	}
	return p.cfg.Name
}

func newRegisterCmd(c *cli) *cobra.Command {
	var keep bool

	cmd := &cobra.Command{
		Use:   "register <path>",
		Short: "Register an add-on with an in-memory host, then unregister it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.openProject(args[0])
			if err != nil {
				return err
			}

			h := memhost.New()
			m, err := c.newManager(p, h)
			if err != nil {
				return err
			}
			defer m.Close()

			out := cmd.OutOrStdout()
			printDiagnostics(out, m.Diagnostics())

			if err := m.Register(); err != nil {
				fmt.Fprintln(out, errorStyle.Render("registration failed"))
				return err
			}
			printTitle(out, "%s: %s", p.title(m), okStyle.Render(m.State().String()))
			fmt.Fprintf(out, "  classes:    %d\n", len(h.Registered()))
			fmt.Fprintf(out, "  keymaps:    %d\n", h.KeyConfig().ItemCount())
			fmt.Fprintf(out, "  properties: %d\n", h.PointerCount())

			if keep {
				return nil
			}
			if err := m.Unregister(); err != nil {
				return err
			}
			printTitle(out, "%s: %s", p.title(m), m.State().String())
			for _, entry := range h.Log() {
				fmt.Fprintf(out, "  %s\n", dimStyle.Render(entry))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keep, "keep", false, "skip the unregister pass")
	return cmd
}
