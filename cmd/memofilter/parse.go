package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kittclouds/memofilter/internal/store"
	"github.com/kittclouds/memofilter/pkg/filter"
	"github.com/kittclouds/memofilter/pkg/search"
)

var parseTags []string

var parseCmd = &cobra.Command{
	Use:   "parse <text>",
	Short: "Turn search-bar text into filters",
	Long: `parse maps #tag, tag:, has:, is:pinned, visibility: and date: tokens to
filters and the remaining words to content searches. Known tags (from the
tag catalog plus --tag) mentioned in plain words are suggested as tag
filters.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tags, err := store.NewSQLiteStoreWithDSN(profile.TagDSN)
		if err != nil {
			return err
		}
		defer tags.Close()

		if len(parseTags) > 0 {
			if err := tags.SetMemoTags(&store.MemoTags{MemoID: "cli", Tags: parseTags}); err != nil {
				return err
			}
		}
		names, err := tags.TagNames()
		if err != nil {
			return err
		}
		dict, err := search.Compile(names)
		if err != nil {
			return fmt.Errorf("compile tag dictionary: %w", err)
		}
		logger.Debug("tag dictionary ready", "tags", dict.Len())

		fs := search.Parse(args[0])
		for _, s := range dict.Suggest(args[0]) {
			if !containsFilter(fs, s) {
				fs = append(fs, s)
			}
		}

		out := cmd.OutOrStdout()
		if err := writeJSON(out, fs); err != nil {
			return err
		}
		fmt.Fprintln(out, filter.Encode(fs))
		return nil
	},
}

func containsFilter(fs []filter.Filter, f filter.Filter) bool {
	for _, g := range fs {
		if filter.Equal(g, f) {
			return true
		}
	}
	return false
}

func init() {
	parseCmd.Flags().StringSliceVar(&parseTags, "tag", nil, "known tag (repeatable)")
}
