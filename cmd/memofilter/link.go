package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kittclouds/memofilter/pkg/filter"
	"github.com/kittclouds/memofilter/pkg/filterstore"
	"github.com/kittclouds/memofilter/pkg/filtersync"
)

var (
	linkKeep  bool
	linkChips bool
)

var linkCmd = &cobra.Command{
	Use:   "link <url> [filter]...",
	Short: "Rewrite a page URL so it carries the given filters",
	Long: `link syncs the filters into the URL exactly as the page does. With no
filters the filter parameter is removed. --keep appends to the filters the
URL already carries.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := parseFilterArgs(args[1:])
		if err != nil {
			return err
		}

		nav, err := filtersync.NewMemoryNavigator(args[0])
		if err != nil {
			return err
		}
		store := filterstore.New()
		defer store.Close()

		ctrl := filtersync.New(store, nav, filtersync.Options{
			Param:       profile.Param,
			IsIntegrate: profile.IsIntegrate,
			Restore:     linkKeep,
			Logger:      logger,
			TagList: func(tags []string) {
				logger.Debug("tag filters", "tags", tags)
			},
		})
		defer ctrl.Close()

		err = store.Update(func(cur []filter.Filter) []filter.Filter {
			if !linkKeep {
				cur = cur[:0]
			}
			return append(cur, fs...)
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if linkChips {
			return writeJSON(out, ctrl.Chips())
		}
		fmt.Fprintln(out, nav.Location().String())
		return nil
	},
}

func init() {
	linkCmd.Flags().BoolVar(&linkKeep, "keep", false, "keep filters already in the URL")
	linkCmd.Flags().BoolVar(&linkChips, "chips", false, "print the filter chips instead of the URL")
}
