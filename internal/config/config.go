// Package config loads the extractor settings: built-in defaults, overlaid by
// an optional YAML file, overlaid by EXTRACTOR_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/b3-extractor/internal/catalog"
	"github.com/rxtech-lab/b3-extractor/internal/version"
	"github.com/rxtech-lab/b3-extractor/pkg/errors"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata/provider"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EXTRACTOR"

// Config holds all application configuration.
type Config struct {
	Version   string         `yaml:"version,omitempty" json:"version,omitempty" ignored:"true" jsonschema:"title=Config Version,description=Extractor release the file was written for"`
	OutputDir string         `yaml:"output_dir" json:"output_dir" split_words:"true" validate:"required" jsonschema:"title=Output Directory,description=Folder the exported files are written to"`
	Catalog   CatalogConfig  `yaml:"catalog" json:"catalog"`
	Provider  ProviderConfig `yaml:"provider" json:"provider"`
	Defaults  DefaultsConfig `yaml:"defaults" json:"defaults"`
	Logging   LoggingConfig  `yaml:"logging" json:"logging"`
}

// CatalogConfig locates the ticker map.
type CatalogConfig struct {
	ResourceDir string `yaml:"resource_dir" json:"resource_dir" split_words:"true" jsonschema:"title=Resource Directory,description=Folder searched first for the ticker map"`
	SubDir      string `yaml:"sub_dir" json:"sub_dir" split_words:"true" validate:"required" jsonschema:"title=Sub Directory,default=Mapa"`
	FileName    string `yaml:"file_name" json:"file_name" split_words:"true" validate:"required" jsonschema:"title=File Name,default=Mapa Tickers B3.csv"`
}

// ProviderConfig selects and configures the market data provider.
type ProviderConfig struct {
	Name          string        `yaml:"name" json:"name" validate:"required,oneof=yahoo polygon" jsonschema:"title=Provider,enum=yahoo,enum=polygon,default=yahoo"`
	YahooBaseURL  string        `yaml:"yahoo_base_url" json:"yahoo_base_url" split_words:"true" validate:"omitempty,url" jsonschema:"title=Yahoo Base URL"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" validate:"gte=0" jsonschema:"title=Timeout,description=HTTP timeout of a single fetch"`
	PolygonApiKey string        `yaml:"polygon_api_key" json:"polygon_api_key" split_words:"true" validate:"required_if=Name polygon" jsonschema:"title=Polygon API Key"`
}

// DefaultsConfig pre-fills the form.
type DefaultsConfig struct {
	Interval string `yaml:"interval" json:"interval" validate:"required,oneof=1d 5d 1wk 1mo 3mo" jsonschema:"title=Interval,enum=1d,enum=5d,enum=1wk,enum=1mo,enum=3mo,default=1wk"`
	Format   string `yaml:"format" json:"format" validate:"required,oneof=CSV XLSX" jsonschema:"title=Format,enum=CSV,enum=XLSX,default=CSV"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" validate:"required,oneof=debug info warn error" jsonschema:"title=Level,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	File  string `yaml:"file" json:"file" jsonschema:"title=Log File,description=Log destination of the interactive mode"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir: DefaultOutputDir(),
		Catalog: CatalogConfig{
			ResourceDir: ".",
			SubDir:      catalog.DefaultSubDir,
			FileName:    catalog.DefaultFileName,
		},
		Provider: ProviderConfig{
			Name:          string(provider.ProviderYahoo),
			YahooBaseURL:  provider.DefaultYahooBaseURL,
			Timeout:       30 * time.Second,
			PolygonApiKey: "",
		},
		Defaults: DefaultsConfig{
			Interval: string(marketdata.IntervalOneWeek),
			Format:   string(marketdata.FormatCSV),
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  DefaultLogFile(),
		},
	}
}

// Load builds the configuration. An empty path reads the default config file
// when it exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)

		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config %s", path)
			}
		case os.IsNotExist(err) && !explicit:
		default:
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config %s", path)
		}
	}

	if err := version.CheckConfigCompatibility(version.GetVersion(), cfg.Version); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "config %s", path)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to read environment", err)
	}

	if cfg.Provider.PolygonApiKey == "" {
		cfg.Provider.PolygonApiKey = os.Getenv("POLYGON_API_KEY")
	}

	cfg.OutputDir = expandHome(cfg.OutputDir)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	cfg.Defaults.Format = strings.ToUpper(cfg.Defaults.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

// ProviderSettings returns the settings passed to the provider constructor.
func (c *Config) ProviderSettings() (provider.ProviderType, provider.Config) {
	return provider.ProviderType(c.Provider.Name), provider.Config{
		YahooBaseURL:  c.Provider.YahooBaseURL,
		Timeout:       c.Provider.Timeout,
		PolygonApiKey: c.Provider.PolygonApiKey,
	}
}

// CatalogCandidates returns the ticker map lookup order for this config.
func (c *Config) CatalogCandidates(exeDir string) []string {
	return catalog.CandidatePaths(c.Catalog.ResourceDir, exeDir, c.Catalog.SubDir, c.Catalog.FileName)
}

// DefaultInterval returns the configured form interval.
func (c *Config) DefaultInterval() marketdata.Interval {
	return marketdata.Interval(c.Defaults.Interval)
}

// DefaultFormat returns the configured form format.
func (c *Config) DefaultFormat() marketdata.Format {
	return marketdata.Format(c.Defaults.Format)
}

// EnsureOutputDir creates the output directory if needed.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", c.OutputDir, err)
	}

	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
