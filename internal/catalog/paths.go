package catalog

import (
	"os"
	"path/filepath"
)

const (
	// DefaultSubDir is the folder the ticker map ships in.
	DefaultSubDir = "Mapa"
	// DefaultFileName is the ticker map file name.
	DefaultFileName = "Mapa Tickers B3.csv"
)

// CandidatePaths lists where the ticker map is looked up, in priority order:
// the resource folder's subfolder, the resource folder itself, then the
// executable folder's subfolder.
func CandidatePaths(resourceDir, exeDir, subDir, fileName string) []string {
	if subDir == "" {
		subDir = DefaultSubDir
	}

	if fileName == "" {
		fileName = DefaultFileName
	}

	return []string{
		filepath.Join(resourceDir, subDir, fileName),
		filepath.Join(resourceDir, fileName),
		filepath.Join(exeDir, subDir, fileName),
	}
}

// ExecutableDir returns the directory of the running binary, or "." when it
// cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe)
}
