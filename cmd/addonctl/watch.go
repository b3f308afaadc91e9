package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/addonkit/internal/host/memhost"
	"github.com/dshills/addonkit/internal/plugin"
)

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <path>",
		Short: "Register an add-on and reload it whenever its sources change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.settings.Debug = true

			p, err := c.openProject(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			h := memhost.New()
			var m *plugin.Manager
			m, err = c.newManager(p, h, plugin.WithReloadHandler(func(err error) {
				if err != nil {
					fmt.Fprintf(out, "%s %v\n", errorStyle.Render("reload failed:"), err)
					return
				}
				fmt.Fprintf(out, "%s %d classes\n", okStyle.Render("reloaded:"), len(m.Classes()))
			}))
			if err != nil {
				return err
			}
			defer m.Close()

			printDiagnostics(out, m.Diagnostics())
			if err := m.Register(); err != nil {
				return err
			}
			printTitle(out, "watching %s (%d classes), press Ctrl+C to stop", p.title(m), len(m.Classes()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return m.Watch(ctx)
		},
	}
}
