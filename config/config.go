package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	switchererrors "sdkswitcher/errors"
	"sdkswitcher/logging"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml"
)

const (
	// AppName names the per-user configuration directory
	AppName = "sdkswitcher"

	// FileName is the preferences file inside the configuration directory
	FileName = "sdkswitcher.toml"

	// SDKRootName is the top-level directory inside every SDK archive. It is
	// also the name of the activation symlink.
	SDKRootName = "google_appengine"

	// EnvPrefix prefixes environment overrides, e.g. SDKSWITCHER_DEFAULTS__CACHE_DIR
	EnvPrefix = "SDKSWITCHER_"

	// PathEnvVar overrides the location of the preferences file
	PathEnvVar = "SDKSWITCHER_CONFIG_PATH"
)

// DefaultsConfig holds the persisted defaults
type DefaultsConfig struct {
	Link     string `toml:"link" comment:"Directory in which the google_appengine symlink is created"`
	CacheDir string `toml:"cache_dir" comment:"Directory holding installed SDK versions (empty: configuration directory)"`
}

// GeneralConfig holds general configuration parameters
type GeneralConfig struct {
	LogLevel      string `toml:"log_level" comment:"DEBUG, INFO, WARN or ERROR"`
	LogPath       string `toml:"log_path" comment:"Log directory (empty: XDG state directory)"`
	KeepDownloads bool   `toml:"keep_downloads" comment:"Keep downloaded archives after install"`
}

// Config represents the preferences file
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	General  GeneralConfig  `toml:"general"`

	path string
}

// defaultValues are the built-in defaults, lowest priority when loading
func defaultValues() map[string]interface{} {
	return map[string]interface{}{
		"defaults.link":          "~/",
		"defaults.cache_dir":     "",
		"general.log_level":      "INFO",
		"general.log_path":       "",
		"general.keep_downloads": false,
	}
}

// Default returns a Config holding only the built-in defaults
func Default() *Config {
	return &Config{
		Defaults: DefaultsConfig{Link: "~/"},
		General:  GeneralConfig{LogLevel: "INFO"},
	}
}

// DirFor returns the unexpanded configuration directory for the given GOOS
func DirFor(goos string) string {
	switch goos {
	case "darwin":
		return "~/Library/Application Support/" + AppName
	case "windows":
		return `~\Application Settings\` + AppName
	default:
		return "~/." + AppName
	}
}

// Dir returns the unexpanded configuration directory for this platform.
// Installed SDKs are stored here unless cache_dir is set.
func Dir() string {
	return DirFor(runtime.GOOS)
}

// Filename returns the absolute default path of the preferences file
func Filename() string {
	return absPath(filepath.Join(Dir(), FileName))
}

// ResolvePath returns the preferences file path.
// Priority: cliPath > SDKSWITCHER_CONFIG_PATH > default location
func ResolvePath(cliPath string) string {
	if cliPath != "" {
		return absPath(cliPath)
	}
	if envPath := os.Getenv(PathEnvVar); envPath != "" {
		return absPath(envPath)
	}
	return Filename()
}

// ExpandTilde expands a leading ~ to the user's home directory
func ExpandTilde(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func absPath(path string) string {
	expanded, err := ExpandTilde(path)
	if err != nil {
		logging.PreLog("DEBUG", "could not expand %s: %v", path, err)
		expanded = path
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return filepath.Clean(expanded)
	}
	return abs
}

// Load reads the preferences file. A missing file is not an error: built-in
// defaults are used. Environment variables override file values.
func Load(cliPath string) (*Config, error) {
	configPath := ResolvePath(cliPath)
	logging.PreLog("DEBUG", "📂 Loading configuration from: %s", configPath)

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultValues(), "."), nil); err != nil {
		return nil, switchererrors.Wrap(err, switchererrors.ErrConfigLoad, "failed to load defaults")
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			logging.PreLog("ERROR", "❌ Failed to parse config file: %v", err)
			return nil, switchererrors.Wrapf(err, switchererrors.ErrConfigParse, "failed to parse config file %s", configPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, switchererrors.Wrapf(err, switchererrors.ErrConfigLoad, "failed to read config file %s", configPath)
	} else {
		logging.PreLog("DEBUG", "No config file at %s, using defaults", configPath)
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, switchererrors.Wrap(err, switchererrors.ErrConfigLoad, "failed to load environment overrides")
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "toml"}); err != nil {
		return nil, switchererrors.Wrap(err, switchererrors.ErrConfigParse, "failed to decode configuration")
	}
	cfg.path = configPath

	logging.SetPreLogLevel(cfg.General.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.PreLog("DEBUG", "🔍 Decoded Config: %+v", *cfg)
	return cfg, nil
}

// Validate checks the configuration validity
func (c *Config) Validate() error {
	switch strings.ToUpper(c.General.LogLevel) {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return switchererrors.Newf(switchererrors.ErrConfigParse, "invalid log_level %q", c.General.LogLevel)
	}
	if strings.ContainsRune(c.Defaults.Link, 0) || strings.ContainsRune(c.Defaults.CacheDir, 0) {
		return switchererrors.New(switchererrors.ErrConfigParse, "paths must not contain NUL bytes")
	}
	return nil
}

// Path returns the file the configuration was loaded from and is saved to
func (c *Config) Path() string {
	if c.path == "" {
		return Filename()
	}
	return c.path
}

// SetPath changes where Save writes the configuration
func (c *Config) SetPath(path string) {
	c.path = path
}

// CacheDir returns the absolute directory holding installed SDK versions
func (c *Config) CacheDir() string {
	cacheDir := c.Defaults.CacheDir
	if cacheDir == "" {
		cacheDir = Dir()
	}
	return absPath(cacheDir)
}

// SDKLink returns the absolute path of the activation symlink, or "" when
// no link directory is configured. The link is always named google_appengine.
func (c *Config) SDKLink() string {
	if c.Defaults.Link == "" {
		return ""
	}
	return absPath(filepath.Join(c.Defaults.Link, SDKRootName))
}

// SetLink changes the directory in which the activation symlink is created
func (c *Config) SetLink(dest string) {
	c.Defaults.Link = dest
}

// Save rewrites the whole preferences file and returns its path
func (c *Config) Save() (string, error) {
	filename := c.Path()

	var buf bytes.Buffer
	if err := gotoml.NewEncoder(&buf).Order(gotoml.OrderPreserve).Encode(*c); err != nil {
		return "", switchererrors.Wrap(err, switchererrors.ErrConfigSave, "failed to encode configuration")
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return "", switchererrors.Wrapf(err, switchererrors.ErrConfigSave, "failed to create directory %s", filepath.Dir(filename))
	}
	if err := os.WriteFile(filename, buf.Bytes(), 0644); err != nil {
		return "", switchererrors.Wrapf(err, switchererrors.ErrConfigSave, "failed to write %s", filename)
	}

	logging.LogDebug("💾 Saved preferences to %s", filename)
	return filename, nil
}

// EnsureDirectoriesExist creates the cache directory and the log directory
func EnsureDirectoriesExist(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil, cannot ensure directories")
	}

	paths := []string{cfg.CacheDir()}
	if cfg.General.LogPath != "" {
		paths = append(paths, absPath(cfg.General.LogPath))
	}

	for _, path := range paths {
		logging.LogDebug("📂 Ensuring directory exists: %s", path)
		if err := os.MkdirAll(path, 0755); err != nil {
			return switchererrors.Wrapf(err, switchererrors.ErrFilesystem, "failed to create directory %s", path)
		}
	}
	return nil
}
