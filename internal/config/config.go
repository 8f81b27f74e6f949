package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the facetview configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	ResultFields ResultFieldsConfig `yaml:"result_fields"`
	Facets       []FacetConfig      `yaml:"facets"`
	DateFilter   DateFilterConfig   `yaml:"date_filter"`
	Features     FeatureConfig      `yaml:"features"`
	UI           UIConfig           `yaml:"ui"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings for the frontend itself.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ServerConfig holds the external search backend settings.
type ServerConfig struct {
	URL        string `yaml:"url"`
	Index      string `yaml:"index"`
	PageSize   int    `yaml:"page_size"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// DatabaseConfig holds the preferences store connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	KeyPrefix        string   `yaml:"key_prefix"`
}

// FieldMapping resolves a logical result field to one or more physical field
// names. Field names a single physical field; Fields is an ordered candidate
// list where the first non-empty value wins. Fallback is returned when no
// candidate resolves.
type FieldMapping struct {
	Field    string   `yaml:"field"`
	Fields   []string `yaml:"fields"`
	Fallback string   `yaml:"fallback"`
}

// Candidates returns the ordered physical field names to try.
func (m FieldMapping) Candidates() []string {
	if len(m.Fields) > 0 {
		return m.Fields
	}
	if m.Field != "" {
		return []string{m.Field}
	}
	return nil
}

// IsSet reports whether the mapping names at least one physical field.
func (m FieldMapping) IsSet() bool { return len(m.Candidates()) > 0 }

// ResultFieldsConfig maps logical result fields to physical backend fields.
type ResultFieldsConfig struct {
	Title       FieldMapping `yaml:"title"`
	Link        FieldMapping `yaml:"link"`
	Description FieldMapping `yaml:"description"`
	Date        FieldMapping `yaml:"date"`
	Language    FieldMapping `yaml:"language"`
}

// FacetConfig declares a facet field and its optional display name.
type FacetConfig struct {
	Field       string `yaml:"field"`
	DisplayName string `yaml:"display_name"`
}

// DateFilterConfig holds the date-range filter settings.
type DateFilterConfig struct {
	Field string `yaml:"field"` // backend field the range applies to
	Param string `yaml:"param"` // custom query parameter name (default: dates)
}

// FeatureConfig holds feature flags.
type FeatureConfig struct {
	DateFilter     bool `yaml:"date_filter"`
	FieldInspector bool `yaml:"field_inspector"`
	Autocomplete   bool `yaml:"autocomplete"`
	DidYouMean     bool `yaml:"did_you_mean"`
}

// UIConfig holds rendering settings.
type UIConfig struct {
	Theme                string `yaml:"theme"`
	MaxPaginationButtons int    `yaml:"max_pagination_buttons"`
	Locale               string `yaml:"locale"`
	DateLayout           string `yaml:"date_layout"`
	DateFallback         string `yaml:"date_fallback"`
}

// Load reads configuration from a YAML file by environment name (local, dev,
// prod), merges it over the library defaults, and validates the result.
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse merges raw user YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var user map[string]any
	if err := yaml.Unmarshal(data, &user); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg, err := fromMap(Merge(Defaults(), user))
	if err != nil {
		return Config{}, err
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty operational fields with default values.
// Required leaves (see Validate) are deliberately not defaulted.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Server.PageSize <= 0 {
		c.Server.PageSize = 10
	}
	if c.Server.TimeoutSec <= 0 {
		c.Server.TimeoutSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "valkey"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.KeyPrefix == "" {
		c.Database.KeyPrefix = "facetview:"
	}
	if c.DateFilter.Param == "" {
		c.DateFilter.Param = "dates"
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "plain"
	}
	if c.UI.MaxPaginationButtons <= 0 {
		c.UI.MaxPaginationButtons = 5
	}
	if c.UI.DateLayout == "" {
		c.UI.DateLayout = "Jan 2, 2006"
	}
}

// Validate checks the fixed checklist of required leaf paths and reports
// every missing one at once, never just the first.
func (c *Config) Validate() error {
	var missing []string
	if c.Server.URL == "" {
		missing = append(missing, "server.url")
	}
	if c.Server.Index == "" {
		missing = append(missing, "server.index")
	}
	if !c.ResultFields.Title.IsSet() {
		missing = append(missing, "result_fields.title")
	}
	if !c.ResultFields.Description.IsSet() {
		missing = append(missing, "result_fields.description.fields")
	}
	if !c.ResultFields.Link.IsSet() {
		missing = append(missing, "result_fields.link.fields")
	}
	if c.Features.DateFilter && c.DateFilter.Field == "" {
		missing = append(missing, "date_filter.field")
	}
	if len(missing) > 0 {
		return &Error{Missing: missing}
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 0 and 65535, got %d", c.HTTP.Port)
	}
	return nil
}

// fromMap converts a merged config map into the typed Config.
func fromMap(m map[string]any) (Config, error) {
	out, err := yaml.Marshal(m)
	if err != nil {
		return Config{}, fmt.Errorf("re-encode merged config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(out, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
