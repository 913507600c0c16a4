package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kittclouds/memofilter/pkg/route"
)

var routesCmd = &cobra.Command{
	Use:   "routes [path]",
	Short: "List page routes, or resolve one path",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 1 {
			leaf, params, ok := route.Resolve(args[0])
			if !ok {
				return fmt.Errorf("no route matches %s", args[0])
			}
			fmt.Fprintf(out, "%s %s params=%v integrate=%t\n",
				leaf.Name, leaf.Pattern, params, profile.IsIntegrate(args[0]))
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PATTERN\tPAGE\tLAZY")
		for _, leaf := range route.Flatten() {
			fmt.Fprintf(tw, "%s\t%s\t%t\n", leaf.Pattern, leaf.Name, leaf.Lazy)
		}
		return tw.Flush()
	},
}
