package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kittclouds/memofilter/internal/config"
	"github.com/kittclouds/memofilter/pkg/filter"
)

var (
	cfgFile string
	profile *config.Profile
	logger  = log.NewWithOptions(os.Stderr, log.Options{Prefix: "memofilter"})

	rootCmd = &cobra.Command{
		Use:           "memofilter",
		Short:         "Build and inspect shareable memo filter links",
		Long:          longRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			p, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			profile = p
			logger.SetLevel(p.Level())
			logger.Debug("loaded profile", "mode", p.Mode, "param", p.Param, "tag-dsn", p.TagDSN)
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("mode", "", "profile mode (prod/dev/demo)")
	rootCmd.PersistentFlags().String("param", "", "URL query parameter carrying filters")
	rootCmd.PersistentFlags().String("integrate-path", "", "page that shows chips untruncated")
	rootCmd.PersistentFlags().String("tag-dsn", "", "tag catalog database")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug/info/warn/error)")

	rootCmd.AddCommand(encodeCmd, decodeCmd, linkCmd, parseCmd, routesCmd)
}

// parseFilterArgs reads "factor" or "factor=value" arguments.
func parseFilterArgs(args []string) ([]filter.Filter, error) {
	fs := make([]filter.Filter, 0, len(args))
	for _, arg := range args {
		factor, value, _ := strings.Cut(arg, "=")
		if factor == "" {
			return nil, fmt.Errorf("filter %q has no factor", arg)
		}
		fs = append(fs, filter.New(filter.ParseFactor(factor), value))
	}
	return fs, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var longRoot = `
memofilter works with the filter links of a memos instance. Filters are
written as factor or factor=value, for example tagSearch=work,
visibility=PUBLIC, pinned or property.hasLink.
`
