package config

import (
	"strings"

	"github.com/hamidzr/tmplstore/constant"
	"github.com/hamidzr/tmplstore/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flagKeys maps CLI flag names to their config keys.
var flagKeys = map[string]string{
	"work-dir":   "work_dir",
	"executable": "executable",
	"log-level":  "log_level",
}

// BindFlags registers the persistent flags shared by every command.
func BindFlags(cmd *cobra.Command) {
	defaults := model.DefaultConfig()

	cmd.PersistentFlags().StringP("work-dir", "C", defaults.WorkDir, "Working directory used to resolve the data directory (default: current directory)")
	cmd.PersistentFlags().String("executable", defaults.Executable, "Executable path used to resolve the data directory (default: this binary)")
	cmd.PersistentFlags().StringP("log-level", "l", defaults.LogLevel, "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().String("config", "", "Path to a config file (default: search the standard locations)")
}

// bindViperFlags binds the persistent flags to their config keys. Viper only
// prefers a flag over env and file values when it was set explicitly.
func bindViperFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "error binding flag %s", name)
		}
	}
	return nil
}

// SetViperDefaults sets default values in viper configuration
func SetViperDefaults(v *viper.Viper) {
	defaults := model.DefaultConfig()
	v.SetDefault("work_dir", defaults.WorkDir)
	v.SetDefault("executable", defaults.Executable)
	v.SetDefault("log_level", defaults.LogLevel)
}

// SetViperEnvSettings configures viper environment variable settings
func SetViperEnvSettings(v *viper.Viper) {
	v.SetEnvPrefix(constant.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}
