package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/kolah/plugforge/internal/loader"
	"github.com/kolah/plugforge/internal/platform"
	"github.com/kolah/plugforge/internal/session"
)

const (
	DefaultFile = "plugforge.yaml"
	EnvPrefix   = "PLUGFORGE_"
)

type Config struct {
	Spec        string         `koanf:"spec"`
	Platform    string         `koanf:"platform"`
	OutputDir   string         `koanf:"output-dir"`
	Strict      bool           `koanf:"strict"`
	Initialisms []string       `koanf:"initialisms"`
	Templates   TemplateConfig `koanf:"templates"`
	Log         LogConfig      `koanf:"log"`
	Fetch       FetchConfig    `koanf:"fetch"`
	Session     SessionConfig  `koanf:"session"`
	Server      ServerConfig   `koanf:"server"`
}

type TemplateConfig struct {
	Dir string `koanf:"dir"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type FetchConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// SessionConfig pre-answers the confirmation flow for non-interactive
// generation. Empty values keep what the analysis suggested.
type SessionConfig struct {
	Purpose       string   `koanf:"purpose"`
	Features      []string `koanf:"features"`
	UIStyle       string   `koanf:"ui-style"`
	AuthStrategy  string   `koanf:"auth-strategy"`
	ErrorHandling string   `koanf:"error-handling"`
	Debug         bool     `koanf:"debug"`

	// WordPressFeatures selects WordPress integration features by id and
	// switches the WordPress transformer to them.
	WordPressFeatures []string `koanf:"wordpress-features"`
}

// Answered reports whether any confirmation answer was given.
func (s SessionConfig) Answered() bool {
	return s.Purpose != "" || len(s.Features) > 0 || s.UIStyle != "" ||
		s.AuthStrategy != "" || s.ErrorHandling != "" || s.Debug
}

type ServerConfig struct {
	Addr string `koanf:"addr"`
}

func defaults() map[string]any {
	return map[string]any{
		"spec":                       "",
		"platform":                   "",
		"output-dir":                 "plugforge-out",
		"strict":                     false,
		"templates.dir":              "",
		"initialisms":                []string{},
		"log.level":                  "info",
		"fetch.timeout":              "30s",
		"session.purpose":            "",
		"session.features":           []string{},
		"session.ui-style":           "",
		"session.auth-strategy":      "",
		"session.error-handling":     "",
		"session.debug":              false,
		"session.wordpress-features": []string{},
		"server.addr":                ":8080",
	}
}

// BindCommonFlags binds the flags shared by every command that loads
// configuration.
func BindCommonFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringP("config", "c", "", "Config file path (default: plugforge.yaml)")
	flags.StringP("spec", "s", "", "OpenAPI document path or URL")
	flags.String("templates", "", "Directory with template overrides")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.Duration("fetch-timeout", 0, "Timeout for fetching documents over HTTP")
	flags.Bool("strict", false, "Validate the document and report findings as warnings")
	flags.Bool("dry-run", false, "Print output without writing files")
}

// BindSessionFlags binds the flags that pre-answer the confirmation flow.
func BindSessionFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.StringP("output-dir", "o", "", "Output directory for the plugin bundle")
	flags.String("purpose", "", "Confirmed plugin purpose")
	flags.StringSlice("features", nil, "Feature ids to select (required features are always kept)")
	flags.String("ui-style", "", "UI style: minimal, full-featured, workflow-based")
	flags.String("auth-strategy", "", "Authentication strategy: plugin-managed, user-input, env-variable")
	flags.String("error-handling", "", "Error handling: strict, graceful, silent")
	flags.Bool("debug", false, "Enable debug mode in the generated plugin")
	flags.StringSlice("wordpress-features", nil, "WordPress integration feature ids to build (wordpress only)")
}

// Load merges defaults, the config file, PLUGFORGE_* environment variables
// and explicitly set flags, in increasing order of precedence. A non-empty
// platformID overrides the configured platform.
func Load(cmd *cobra.Command, platformID string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		configFile, _ = cmd.PersistentFlags().GetString("config")
	}
	if configFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			configFile = DefaultFile
		}
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue(k.Keys())), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	flagsMap := buildFlagsMap(cmd)
	if len(flagsMap) > 0 {
		if err := k.Load(confmap.Provider(flagsMap, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// CLI platform overrides config file platform
	if platformID != "" {
		cfg.Platform = platformID
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// envValue maps PLUGFORGE_SESSION_UI_STYLE style names onto known keys.
// Unknown variables are ignored.
func envValue(keys []string) func(string, string) (string, any) {
	names := make(map[string]string, len(keys))
	for _, key := range keys {
		names[EnvPrefix+strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))] = key
	}

	return func(name, value string) (string, any) {
		key, ok := names[name]
		if !ok {
			return "", nil
		}
		if key == "session.features" || key == "session.wordpress-features" || key == "initialisms" {
			return key, splitList(value)
		}
		return key, value
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func buildFlagsMap(cmd *cobra.Command) map[string]any {
	m := make(map[string]any)

	getString := func(name string) string {
		if v, err := cmd.Flags().GetString(name); err == nil && v != "" {
			return v
		}
		if v, err := cmd.PersistentFlags().GetString(name); err == nil && v != "" {
			return v
		}
		return ""
	}

	getStringSlice := func(name string) []string {
		if v, err := cmd.Flags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		if v, err := cmd.PersistentFlags().GetStringSlice(name); err == nil && len(v) > 0 {
			return v
		}
		return nil
	}

	flagChanged := func(name string) bool {
		return cmd.Flags().Changed(name) || cmd.PersistentFlags().Changed(name)
	}

	getBool := func(name string) bool {
		if v, err := cmd.Flags().GetBool(name); err == nil {
			return v
		}
		if v, err := cmd.PersistentFlags().GetBool(name); err == nil {
			return v
		}
		return false
	}

	getDuration := func(name string) time.Duration {
		if v, err := cmd.Flags().GetDuration(name); err == nil && v > 0 {
			return v
		}
		if v, err := cmd.PersistentFlags().GetDuration(name); err == nil && v > 0 {
			return v
		}
		return 0
	}

	if v := getString("spec"); v != "" {
		m["spec"] = v
	}
	if v := getString("output-dir"); v != "" {
		m["output-dir"] = v
	}
	if v := getString("templates"); v != "" {
		m["templates.dir"] = v
	}
	if v := getString("log-level"); v != "" {
		m["log.level"] = v
	}
	if v := getDuration("fetch-timeout"); v > 0 {
		m["fetch.timeout"] = v.String()
	}
	if flagChanged("strict") {
		m["strict"] = getBool("strict")
	}
	if v := getString("addr"); v != "" {
		m["server.addr"] = v
	}

	// Session answers (under session. namespace)
	if v := getString("purpose"); v != "" {
		m["session.purpose"] = v
	}
	if v := getStringSlice("features"); len(v) > 0 {
		m["session.features"] = v
	}
	if v := getString("ui-style"); v != "" {
		m["session.ui-style"] = v
	}
	if v := getString("auth-strategy"); v != "" {
		m["session.auth-strategy"] = v
	}
	if v := getString("error-handling"); v != "" {
		m["session.error-handling"] = v
	}
	if flagChanged("debug") {
		m["session.debug"] = getBool("debug")
	}
	if v := getStringSlice("wordpress-features"); len(v) > 0 {
		m["session.wordpress-features"] = v
	}

	return m
}

func (c *Config) Validate() error {
	if c.Spec != "" && !loader.IsURL(c.Spec) {
		if err := loader.ValidateSourceName(c.Spec); err != nil {
			return fmt.Errorf("invalid spec: %w", err)
		}
	}

	if c.Platform != "" {
		if _, err := platform.ParseKind(c.Platform); err != nil {
			return err
		}
	}

	validLevels := map[string]bool{"": true, "trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Log.Level)
	}

	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("invalid fetch timeout: %s", c.Fetch.Timeout)
	}

	if s := c.Session.UIStyle; s != "" && !slices.Contains(session.UIStyles(), session.UIStyle(s)) {
		return fmt.Errorf("invalid ui style: %s (valid: minimal, full-featured, workflow-based)", s)
	}
	if s := c.Session.AuthStrategy; s != "" && !slices.Contains(session.AuthStrategies(), session.AuthStrategy(s)) {
		return fmt.Errorf("invalid auth strategy: %s (valid: plugin-managed, user-input, env-variable)", s)
	}
	if s := c.Session.ErrorHandling; s != "" && !slices.Contains(session.ErrorHandlingModes(), session.ErrorHandling(s)) {
		return fmt.Errorf("invalid error handling: %s (valid: strict, graceful, silent)", s)
	}

	return nil
}

// RequireSpec is checked by commands that parse a document.
func (c *Config) RequireSpec() error {
	if c.Spec == "" {
		return fmt.Errorf("spec file is required")
	}
	return nil
}

// RequirePlatform is checked by commands that transform.
func (c *Config) RequirePlatform() error {
	if c.Platform == "" {
		return fmt.Errorf("platform is required (valid: %s)", strings.Join(platformIDs(), ", "))
	}
	return nil
}

func platformIDs() []string {
	var ids []string
	for _, k := range platform.Kinds() {
		ids = append(ids, string(k))
	}
	return ids
}
