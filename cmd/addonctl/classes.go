package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/addonkit/internal/addon"
	"github.com/dshills/addonkit/internal/plugin"
)

func newClassesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "classes <path>",
		Short: "List the registrable classes of an add-on in registration order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.openProject(args[0])
			if err != nil {
				return err
			}

			l, err := plugin.NewLoader(p.root.Dir, p.options(c)...)
			if err != nil {
				return err
			}
			defer l.Close()

			res, err := l.Load(p.dirs, p.cfg.Category)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printTitle(out, "%s: %d classes", p.root.Package, len(res.Classes))
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, dimStyle.Render("  #\tIDNAME\tROLES\tPRIORITY\tMODULE"))
			for i, cls := range res.Classes {
				fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\n", i+1, cls.IDName(), roles(cls),
					priority(p.markers, cls), cls.Module())
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			printDiagnostics(out, res.Diagnostics)
			return nil
		},
	}
}

func roles(c *addon.Class) string {
	rs := c.Roles()
	names := make([]string, len(rs))
	for i, r := range rs {
		names[i] = string(r)
	}
	return strings.Join(names, ",")
}

func priority(m *addon.Markers, c *addon.Class) string {
	if p, ok := m.Priority(c); ok {
		return fmt.Sprint(p)
	}
	return "-"
}
