package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/b3-extractor/internal/version"
	"github.com/rxtech-lab/b3-extractor/pkg/errors"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata"
	"github.com/rxtech-lab/b3-extractor/pkg/marketdata/provider"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()

	// keep the developer's own config and environment out of the tests
	suite.T().Setenv("XDG_CONFIG_HOME", suite.dir)
	suite.T().Setenv("POLYGON_API_KEY", "")
	for _, key := range []string{
		"EXTRACTOR_OUTPUT_DIR",
		"EXTRACTOR_PROVIDER_NAME",
		"EXTRACTOR_PROVIDER_TIMEOUT",
		"EXTRACTOR_PROVIDER_POLYGON_API_KEY",
		"EXTRACTOR_DEFAULTS_INTERVAL",
		"EXTRACTOR_DEFAULTS_FORMAT",
		"EXTRACTOR_LOGGING_LEVEL",
	} {
		suite.T().Setenv(key, "")
		os.Unsetenv(key)
	}
}

func (suite *ConfigTestSuite) writeConfig(content string) string {
	path := filepath.Join(suite.dir, "config.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	return path
}

func (suite *ConfigTestSuite) TestDefaults() {
	cfg := Default()

	suite.Equal("yahoo", cfg.Provider.Name)
	suite.Equal(30*time.Second, cfg.Provider.Timeout)
	suite.Equal(marketdata.IntervalOneWeek, cfg.DefaultInterval())
	suite.Equal(marketdata.FormatCSV, cfg.DefaultFormat())
	suite.Equal("Mapa", cfg.Catalog.SubDir)
	suite.Equal("Mapa Tickers B3.csv", cfg.Catalog.FileName)
	suite.Equal("Dados financeiros Extraídos", filepath.Base(cfg.OutputDir))
	suite.NoError(cfg.Validate())
}

func (suite *ConfigTestSuite) TestLoadWithoutFileUsesDefaults() {
	cfg, err := Load("")
	suite.Require().NoError(err)
	suite.Equal(Default().Provider, cfg.Provider)
}

func (suite *ConfigTestSuite) TestLoadExplicitMissingFile() {
	_, err := Load(filepath.Join(suite.dir, "missing.yaml"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}

func (suite *ConfigTestSuite) TestLoadFileOverlaysDefaults() {
	path := suite.writeConfig(`
output_dir: /tmp/precos
provider:
  timeout: 5s
defaults:
  interval: 1d
  format: xlsx
`)

	cfg, err := Load(path)
	suite.Require().NoError(err)

	suite.Equal("/tmp/precos", cfg.OutputDir)
	suite.Equal(5*time.Second, cfg.Provider.Timeout)
	suite.Equal("yahoo", cfg.Provider.Name)
	suite.Equal(marketdata.IntervalOneDay, cfg.DefaultInterval())
	suite.Equal(marketdata.FormatXLSX, cfg.DefaultFormat())
	suite.Equal("Mapa", cfg.Catalog.SubDir)
}

func (suite *ConfigTestSuite) TestEnvOverridesFile() {
	path := suite.writeConfig("output_dir: /tmp/from-file\n")

	suite.T().Setenv("EXTRACTOR_OUTPUT_DIR", "/tmp/from-env")
	suite.T().Setenv("EXTRACTOR_DEFAULTS_INTERVAL", "3mo")
	suite.T().Setenv("EXTRACTOR_PROVIDER_TIMEOUT", "12s")

	cfg, err := Load(path)
	suite.Require().NoError(err)

	suite.Equal("/tmp/from-env", cfg.OutputDir)
	suite.Equal(marketdata.IntervalThreeMonths, cfg.DefaultInterval())
	suite.Equal(12*time.Second, cfg.Provider.Timeout)
}

func (suite *ConfigTestSuite) TestPolygonRequiresKey() {
	path := suite.writeConfig("provider:\n  name: polygon\n")

	_, err := Load(path)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))

	suite.T().Setenv("POLYGON_API_KEY", "pk_test")

	cfg, err := Load(path)
	suite.Require().NoError(err)

	providerType, settings := cfg.ProviderSettings()
	suite.Equal(provider.ProviderPolygon, providerType)
	suite.Equal("pk_test", settings.PolygonApiKey)
}

func (suite *ConfigTestSuite) TestInvalidValues() {
	testCases := []struct {
		name    string
		content string
	}{
		{"interval", "defaults:\n  interval: 7m\n"},
		{"format", "defaults:\n  format: parquet\n"},
		{"provider", "provider:\n  name: binance\n"},
		{"level", "logging:\n  level: loud\n"},
		{"yaml", "output_dir: [unterminated\n"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			_, err := Load(suite.writeConfig(tc.content))
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
		})
	}
}

func (suite *ConfigTestSuite) TestExpandHome() {
	home, err := os.UserHomeDir()
	suite.Require().NoError(err)

	suite.Equal(filepath.Join(home, "precos"), expandHome("~/precos"))
	suite.Equal("/abs/precos", expandHome("/abs/precos"))
}

func (suite *ConfigTestSuite) TestCatalogCandidates() {
	cfg := Default()
	cfg.Catalog.ResourceDir = "/res"

	candidates := cfg.CatalogCandidates("/bin")
	suite.Equal(filepath.Join("/res", "Mapa", "Mapa Tickers B3.csv"), candidates[0])
	suite.Equal(filepath.Join("/bin", "Mapa", "Mapa Tickers B3.csv"), candidates[2])
}

func (suite *ConfigTestSuite) TestEnsureOutputDir() {
	cfg := Default()
	cfg.OutputDir = filepath.Join(suite.dir, "a", "b")

	suite.Require().NoError(cfg.EnsureOutputDir())
	suite.DirExists(cfg.OutputDir)
}

func (suite *ConfigTestSuite) TestGenerateSchema() {
	schemaJSON, err := GenerateSchemaJSON()
	suite.Require().NoError(err)

	suite.Contains(schemaJSON, `"output_dir"`)
	suite.Contains(schemaJSON, `"polygon_api_key"`)
	suite.Contains(schemaJSON, `"1wk"`)
}

func (suite *ConfigTestSuite) TestConfigVersionCheck() {
	original := version.Version
	defer func() { version.Version = original }()

	version.Version = "v1.2.0"

	_, err := Load(suite.writeConfig("version: 1.2.0\n"))
	suite.NoError(err)

	_, err = Load(suite.writeConfig("version: 1.5.0\n"))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
