package types

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFilename is picked up from the project directory when no --config flag is given
const DefaultConfigFilename = "xtask.yaml"

// SkipWebviewDownloadEnv is read by the Tauri bundler, not by xtask
const SkipWebviewDownloadEnv = "TAURI_SKIP_WEBVIEW_DOWNLOAD"

type ProjectConfig struct {
	Binary  string            `yaml:"binary,omitempty"`
	Manpage string            `yaml:"manpage,omitempty"`
	Prefix  string            `yaml:"prefix,omitempty"`
	Cargo   string            `yaml:"cargo,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
	Tool    ToolConfig        `yaml:"tool,omitempty"`
}

// ToolConfig describes the packaging helper installed by `setup` on Linux.
// {arch} in URL is replaced with the AppImage architecture name (x86_64, aarch64).
type ToolConfig struct {
	Name   string `yaml:"name,omitempty"`
	URL    string `yaml:"url,omitempty"`
	BinDir string `yaml:"bin_dir,omitempty"`
}

func DefaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Binary:  "eim",
		Manpage: filepath.Join("docs", "eim.1"),
		Prefix:  "/usr/local",
		Cargo:   "cargo",
		Env: map[string]string{
			SkipWebviewDownloadEnv: "false",
		},
		Tool: ToolConfig{
			Name:   "appimagetool",
			URL:    "https://github.com/AppImage/appimagetool/releases/download/continuous/appimagetool-{arch}.AppImage",
			BinDir: "~/.local/bin",
		},
	}
}

// LoadConfig merges the YAML file over config. Fields left empty in the file keep their current value.
func LoadConfig(config *ProjectConfig, filename string) error {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var fromFile ProjectConfig
	err = yaml.Unmarshal(bs, &fromFile)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	config.merge(fromFile)
	return nil
}

// LoadProjectConfig returns the defaults overlaid with filename. An empty filename
// looks for xtask.yaml in dir and silently falls back to defaults if it is absent.
func LoadProjectConfig(dir, filename string) (ProjectConfig, error) {
	config := DefaultProjectConfig()

	explicit := filename != ""
	if !explicit {
		filename = filepath.Join(dir, DefaultConfigFilename)
	}

	err := LoadConfig(&config, filename)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, err
	}

	return config, nil
}

func (c *ProjectConfig) merge(other ProjectConfig) {
	if other.Binary != "" {
		c.Binary = other.Binary
	}
	if other.Manpage != "" {
		c.Manpage = other.Manpage
	}
	if other.Prefix != "" {
		c.Prefix = other.Prefix
	}
	if other.Cargo != "" {
		c.Cargo = other.Cargo
	}
	if len(other.Env) > 0 {
		env := make(map[string]string, len(c.Env)+len(other.Env))
		for k, v := range c.Env {
			env[k] = v
		}
		for k, v := range other.Env {
			env[k] = v
		}
		c.Env = env
	}
	if other.Tool.Name != "" {
		c.Tool.Name = other.Tool.Name
	}
	if other.Tool.URL != "" {
		c.Tool.URL = other.Tool.URL
	}
	if other.Tool.BinDir != "" {
		c.Tool.BinDir = other.Tool.BinDir
	}
}

// ExpandHome replaces a leading ~ with the current user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
