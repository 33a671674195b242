/*
Package config manages TOML config for the mozcgo conversion engine.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/sorairo/mozcgo/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	NBest  NBestConfig  `toml:"nbest"`
	AES    AESConfig    `toml:"aes"`
}

// ServerConfig has msgpack-server related options.
type ServerConfig struct {
	MaxCandidates int  `toml:"max_candidates"`
	EnableFilter  bool `toml:"enable_filter"`
}

// DictConfig holds suppression/suggestion dictionary loading options.
type DictConfig struct {
	DataDir   string `toml:"data_dir"`
	ChunkSize int    `toml:"chunk_size"`
	MaxWords  int    `toml:"max_words"`
}

// NBestConfig holds the N-best enumerator's tunable parameters, exposed
// rather than hard-coded per the open question over their exact
// magnitude.
type NBestConfig struct {
	ExpandSize            int   `toml:"expand_size"`
	WeakConnectionPenalty int32 `toml:"weak_connection_penalty"`
	CostGapBound          int32 `toml:"cost_gap_bound"`
	MinAcceptedForStop    int   `toml:"min_accepted_for_stop"`
}

// AESConfig holds the key/IV file paths used to encrypt/decrypt
// persisted conversion history.
type AESConfig struct {
	KeyFile string `toml:"key_file"`
	IVFile  string `toml:"iv_file"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/mozcgo
// 2. ~/Library/Application Support/mozcgo (macOS)
// 3. current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "mozcgo")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "mozcgo")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. custom path from --config flag
// 2. default path: [UserConfigDir]/mozcgo/config.toml
// 3. builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values, including the
// NBestConfig defaults for weak-connection penalty magnitude and the
// structural cost-gap bound consulted by the candidate filter's
// cost-gap-stop rule.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			MaxCandidates: 10,
			EnableFilter:  true,
		},
		Dict: DictConfig{
			DataDir:   "",
			ChunkSize: 10000,
			MaxWords:  0,
		},
		NBest: NBestConfig{
			ExpandSize:            10,
			WeakConnectionPenalty: 3000,
			CostGapBound:          8000,
			MinAcceptedForStop:    1,
		},
		AES: AESConfig{
			KeyFile: "",
			IVFile:  "",
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file, falling back to partial recovery
// of individual sections if the file fails to decode wholesale.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if nbestSection, ok := utils.ExtractSection(tempConfig, "nbest"); ok {
		extractNBestConfig(nbestSection, &config.NBest)
	}
	if aesSection, ok := utils.ExtractSection(tempConfig, "aes"); ok {
		extractAESConfig(aesSection, &config.AES)
	}
	return config, nil
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_candidates"); ok {
		server.MaxCandidates = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := data["data_dir"].(string); ok {
		dict.DataDir = val
	}
	if val, ok := utils.ExtractInt64(data, "chunk_size"); ok {
		dict.ChunkSize = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		dict.MaxWords = val
	}
}

func extractNBestConfig(data map[string]any, nbest *NBestConfig) {
	if val, ok := utils.ExtractInt64(data, "expand_size"); ok {
		nbest.ExpandSize = val
	}
	if val, ok := utils.ExtractInt64(data, "weak_connection_penalty"); ok {
		nbest.WeakConnectionPenalty = int32(val)
	}
	if val, ok := utils.ExtractInt64(data, "cost_gap_bound"); ok {
		nbest.CostGapBound = int32(val)
	}
	if val, ok := utils.ExtractInt64(data, "min_accepted_for_stop"); ok {
		nbest.MinAcceptedForStop = val
	}
}

func extractAESConfig(data map[string]any, aes *AESConfig) {
	if val, ok := data["key_file"].(string); ok {
		aes.KeyFile = val
	}
	if val, ok := data["iv_file"].(string); ok {
		aes.IVFile = val
	}
}

// RebuildConfigFile force creates a new config.toml at the default path.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves config into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the nbest-relevant config values and saves to file.
func (c *Config) Update(configPath string, expandSize *int, weakConnectionPenalty, costGapBound *int32) error {
	if expandSize != nil {
		c.NBest.ExpandSize = *expandSize
	}
	if weakConnectionPenalty != nil {
		c.NBest.WeakConnectionPenalty = *weakConnectionPenalty
	}
	if costGapBound != nil {
		c.NBest.CostGapBound = *costGapBound
	}
	return SaveConfig(c, configPath)
}
