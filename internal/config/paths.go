package config

import (
	"os"
	"path/filepath"
)

const (
	appDir        = "b3-extractor"
	outputDirName = "Dados financeiros Extraídos"
)

// DefaultConfigPath returns <user config dir>/b3-extractor/config.yaml, or ""
// when the config dir is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, appDir, "config.yaml")
}

// DefaultOutputDir returns ~/Documents/Dados financeiros Extraídos.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return outputDirName
	}

	return filepath.Join(home, "Documents", outputDirName)
}

// DefaultLogFile returns <user cache dir>/b3-extractor/extractor.log.
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDir+".log")
	}

	return filepath.Join(dir, appDir, "extractor.log")
}
