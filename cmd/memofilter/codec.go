package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kittclouds/memofilter/pkg/filter"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <filter>...",
	Short: "Print the filter query value for a list of filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := parseFilterArgs(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), filter.Encode(fs))
		return nil
	},
}

var decodeStrict bool

var decodeCmd = &cobra.Command{
	Use:   "decode <value>",
	Short: "Print the filters carried by a filter query value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var fs []filter.Filter
		if decodeStrict {
			var err error
			if fs, err = filter.Parse(args[0]); err != nil {
				return err
			}
		} else {
			fs = filter.Decode(args[0])
		}
		return writeJSON(cmd.OutOrStdout(), fs)
	},
}

func init() {
	decodeCmd.Flags().BoolVar(&decodeStrict, "strict", false, "fail on malformed input instead of printing []")
}
