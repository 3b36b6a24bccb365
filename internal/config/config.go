package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hamidzr/tmplstore/constant"
	"github.com/hamidzr/tmplstore/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const configFileName = "config.yaml"

// getConfigPaths returns the config directory paths in priority order
// prefers ~/.config over the OS specific config dir
func getConfigPaths() []string {
	var paths []string

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constant.ProjectName))
		paths = append(paths, filepath.Join(homeDir, "."+constant.ProjectName))
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constant.ProjectName))
	}
	paths = append(paths, ".")

	return paths
}

// getPreferredConfigDir returns the preferred config directory for writing
func getPreferredConfigDir() (string, error) {
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", constant.ProjectName), nil
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(userConfigDir, constant.ProjectName), nil
	}

	return "", fmt.Errorf("unable to determine config directory")
}

// InitConfig initializes Viper configuration with proper priority:
// 1. CLI flags (highest priority)
// 2. Environment variables
// 3. Config file
// 4. Defaults
func InitConfig(cmd *cobra.Command) (*model.Config, error) {
	v := viper.New()

	if explicit, _ := cmd.Flags().GetString("config"); explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, path := range getConfigPaths() {
			v.AddConfigPath(path)
		}
	}

	SetViperEnvSettings(v)
	SetViperDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// config file not found is ok, we'll use defaults + env vars + flags
	}

	if err := validateConfigFileKeys(v.ConfigFileUsed()); err != nil {
		return nil, err
	}
	registerConfigKeyAliases(v)

	if err := bindViperFlags(v, cmd); err != nil {
		return nil, err
	}

	var config model.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// InitConfigFile generates and saves a default config file to the preferred
// location. It refuses to overwrite an existing file.
func InitConfigFile() (string, error) {
	configDir, err := getPreferredConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory %s: %w", configDir, err)
	}

	configPath := filepath.Join(configDir, configFileName)

	if _, err := os.Stat(configPath); err == nil {
		return "", fmt.Errorf("config file already exists at %s", configPath)
	}

	yamlData, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	header := `# tmplstore configuration file
# Generated automatically - customize as needed
#
# work_dir / executable: pin the paths used to find the src/data directory,
#   leave empty to use the process's own working directory and binary
# log_level: trace, debug, info, warn, error
#

`

	finalContent := header + string(yamlData)

	if err := os.WriteFile(configPath, []byte(finalContent), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file %s: %w", configPath, err)
	}

	return configPath, nil
}
