package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/addonkit/internal/plugin"
)

func newDiscoverCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "discover <path>",
		Short: "List the module identifiers of an add-on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.openProject(args[0])
			if err != nil {
				return err
			}

			d := plugin.NewDiscoverer(p.root, nil, p.debug(c), c.logger)
			ids, diags, err := d.Discover(p.dirs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, "%s: %d modules", p.root.Package, len(ids))
			for _, id := range ids {
				fmt.Fprintf(out, "  %s\n", id)
			}
			printDiagnostics(out, diags)
			return nil
		},
	}
}
