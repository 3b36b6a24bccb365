package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	yamlv3 "gopkg.in/yaml.v3"
)

// camelKeys maps the camelCase spelling of a config key to its canonical
// snake_case key.
var camelKeys = map[string]string{
	"workDir":  "work_dir",
	"logLevel": "log_level",
}

// canonicalKey resolves a config file key to the key viper stores it under.
func canonicalKey(key string) (string, bool) {
	if canonical, ok := camelKeys[key]; ok {
		return canonical, true
	}
	for _, canonical := range flagKeys {
		if key == canonical {
			return key, true
		}
	}
	return "", false
}

func keyStyle(key string) string {
	if _, ok := camelKeys[key]; ok {
		return "camelCase"
	}
	return "snake_case"
}

// registerConfigKeyAliases must run after the config file is read, since
// viper only moves values that are already present.
func registerConfigKeyAliases(v *viper.Viper) {
	for camel, canonical := range camelKeys {
		v.RegisterAlias(camel, canonical)
	}
}

// validateConfigFileKeys rejects unknown keys and files that spell the same
// key in both styles.
func validateConfigFileKeys(configPath string) error {
	if configPath == "" {
		return nil
	}
	if abs, err := filepath.Abs(configPath); err == nil {
		configPath = abs
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrapf(err, "error reading config file %s", configPath)
	}

	var raw map[string]interface{}
	if err := yamlv3.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(err, "error parsing config file %s", configPath)
	}

	spelled := make(map[string]string, len(raw))
	for key := range raw {
		canonical, ok := canonicalKey(key)
		if !ok {
			return errors.Errorf("config file %s contains invalid key %q", configPath, key)
		}
		if other, dup := spelled[canonical]; dup {
			return errors.Errorf("config file %s sets %q twice, as %q (%s) and %q (%s)",
				configPath, canonical, other, keyStyle(other), key, keyStyle(key))
		}
		spelled[canonical] = key
	}
	return nil
}
