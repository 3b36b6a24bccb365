package model

// Config holds the CLI's runtime settings.
type Config struct {
	// WorkDir pins the working directory used for candidate resolution.
	WorkDir string `mapstructure:"work_dir" yaml:"work_dir"`
	// Executable pins the executable path used for candidate resolution.
	Executable string `mapstructure:"executable" yaml:"executable"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`
}

// DefaultConfig returns a config with default values. Empty paths mean the
// process's own working directory and executable.
func DefaultConfig() *Config {
	return &Config{
		WorkDir:    "",
		Executable: "",
		LogLevel:   "warn",
	}
}
