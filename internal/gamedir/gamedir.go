// Package gamedir resolves where the launcher keeps version jars.
package gamedir

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppDataRoot returns the launcher data directory for goos under home.
// This is the only place that branches on the host operating system.
func AppDataRoot(goos, home string) string {
	switch goos {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", ".minecraft")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "minecraft")
	default:
		return filepath.Join(home, ".minecraft")
	}
}

// Default resolves AppDataRoot for the running process.
func Default() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return AppDataRoot(runtime.GOOS, home), nil
}

// JarPath is <root>/versions/<version>/<version>.jar. Existence is not checked.
func JarPath(root, version string) string {
	return filepath.Join(root, "versions", version, version+".jar")
}

// ExtractDir is the version-scoped extraction target under workRoot.
func ExtractDir(workRoot, version string) string {
	return filepath.Join(workRoot, "versions", version)
}
