// Package paths resolves where the fleet CLI keeps its configuration and
// its JSONL data files.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories under the platform config and data
// roots.
const AppName = "freighter"

// Working-directory defaults used when nothing else is configured.
const (
	DefaultConfigDirName = ".fleet"
	DefaultDataDirName   = ".fleet-db"
)

// Environment variable overrides.
const (
	EnvConfigDir = "FLEET_CONFIG_DIR"
	EnvDataDir   = "FLEET_DATA_DIR"
)

// platformDir holds platform lookups so tests can replace them.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the per-user configuration directory:
// $XDG_CONFIG_HOME/freighter or ~/.config/freighter on Linux, and
// os.UserConfigDir()/freighter elsewhere.
func DefaultConfigDir() (string, error) {
	return userDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDataDir returns the per-user data directory:
// $XDG_DATA_HOME/freighter or ~/.local/share/freighter on Linux, and
// os.UserConfigDir()/freighter elsewhere.
func DefaultDataDir() (string, error) {
	return userDir("XDG_DATA_HOME", ".local", "share")
}

func userDir(xdgVar string, homeRel ...string) (string, error) {
	if platformDir.goos != "linux" {
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, AppName), nil
	}
	if xdg := os.Getenv(xdgVar); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, homeRel...), AppName)...), nil
}

// ResolveConfigDir picks the configuration directory: flag, then
// FLEET_CONFIG_DIR, then DefaultConfigDir. Relative paths are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if dir := firstNonEmpty(flag, os.Getenv(EnvConfigDir)); dir != "" {
		return filepath.Abs(dir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir picks the data directory: flag, then the data_dir value from
// config.yaml, then FLEET_DATA_DIR, then .fleet-db in the working directory.
func ResolveDataDir(flag, configValue string) (string, error) {
	if dir := firstNonEmpty(flag, configValue, os.Getenv(EnvDataDir)); dir != "" {
		return filepath.Abs(dir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
