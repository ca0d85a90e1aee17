// Package opener reveals a folder in the desktop file manager.
package opener

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Command returns the program and arguments that open dir on goos.
func Command(goos string, dir string) (string, []string) {
	switch goos {
	case "windows":
		return "explorer", []string{dir}
	case "darwin":
		return "open", []string{dir}
	default:
		return "xdg-open", []string{dir}
	}
}

// Open starts the platform file manager on dir without waiting for it.
func Open(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot open folder: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("cannot open folder: %s is not a directory", dir)
	}

	name, args := Command(runtime.GOOS, dir)

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to run %s: %w", name, err)
	}

	go func() { _ = cmd.Wait() }()

	return nil
}
