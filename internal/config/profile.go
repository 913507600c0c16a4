// Package config loads the memofilter profile from flags, environment and
// an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/kittclouds/memofilter/pkg/filtersync"
	"github.com/kittclouds/memofilter/pkg/route"
)

// EnvPrefix namespaces environment overrides, e.g. MEMOFILTER_PARAM.
const EnvPrefix = "MEMOFILTER"

// Profile is the runtime configuration.
type Profile struct {
	// Mode can be "prod", "dev" or "demo".
	Mode string `mapstructure:"mode"`
	// Param is the URL query parameter carrying filters.
	Param string `mapstructure:"param"`
	// IntegratePath is the page that shows filter chips untruncated.
	IntegratePath string `mapstructure:"integrate-path"`
	// TagDSN points at the tag catalog database.
	TagDSN string `mapstructure:"tag-dsn"`
	// LogLevel is a charmbracelet/log level name.
	LogLevel string `mapstructure:"log-level"`
}

// IsDev reports whether the profile runs outside production.
func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// Validate fills defaults and rejects values that cannot work.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Param == "" {
		p.Param = filtersync.DefaultParam
	}
	if strings.ContainsAny(p.Param, "&=#? ") {
		return fmt.Errorf("invalid query parameter name %q", p.Param)
	}
	if p.IntegratePath == "" {
		p.IntegratePath = route.Integrate
	}
	if !strings.HasPrefix(p.IntegratePath, "/") {
		p.IntegratePath = "/" + p.IntegratePath
	}
	if p.TagDSN == "" {
		p.TagDSN = ":memory:"
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
		if p.IsDev() {
			p.LogLevel = "debug"
		}
	}
	if _, err := log.ParseLevel(p.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", p.LogLevel, err)
	}
	return nil
}

// Level returns the parsed log level. Call after Validate.
func (p *Profile) Level() log.Level {
	level, err := log.ParseLevel(p.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// IsIntegrate matches pathname against the configured integrate page.
func (p *Profile) IsIntegrate(pathname string) bool {
	_, ok := route.Match(p.IntegratePath, pathname)
	return ok
}

// SetDefaults registers profile defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mode", "prod")
	v.SetDefault("param", filtersync.DefaultParam)
	v.SetDefault("integrate-path", route.Integrate)
	v.SetDefault("tag-dsn", ":memory:")
	v.SetDefault("log-level", "")
}

// Load reads an optional config file plus MEMOFILTER_* environment
// variables into a validated Profile. cfgFile may be empty.
func Load(v *viper.Viper, cfgFile string) (*Profile, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var p Profile
	if err := v.Unmarshal(&p); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
