package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

type Config struct {
	AdapterIndex        int    `mapstructure:"adapter_index"`
	DisplayIndex        int    `mapstructure:"display_index"`
	VSync               bool   `mapstructure:"vsync"`
	AcquireTimeoutMs    int    `mapstructure:"acquire_timeout_ms"`
	MaxRecoveryAttempts int    `mapstructure:"max_recovery_attempts"`
	RecoveryDelayMs     int    `mapstructure:"recovery_delay_ms"`
	SkipCursor          bool   `mapstructure:"skip_cursor"`
	LogLevel            string `mapstructure:"log_level"`
	LogFormat           string `mapstructure:"log_format"`
}

func Default() *Config {
	return &Config{
		VSync:               true,
		MaxRecoveryAttempts: 10,
		RecoveryDelayMs:     200,
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

func Load(cfgFile string) (*Config, error) {
	cfg := Default()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("desktopdup")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(configDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("DESKTOPDUP")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Save(cfg *Config) error {
	return SaveTo(cfg, "")
}

func SaveTo(cfg *Config, cfgFile string) error {
	viper.Set("adapter_index", cfg.AdapterIndex)
	viper.Set("display_index", cfg.DisplayIndex)
	viper.Set("vsync", cfg.VSync)
	viper.Set("acquire_timeout_ms", cfg.AcquireTimeoutMs)
	viper.Set("max_recovery_attempts", cfg.MaxRecoveryAttempts)
	viper.Set("recovery_delay_ms", cfg.RecoveryDelayMs)
	viper.Set("skip_cursor", cfg.SkipCursor)
	viper.Set("log_level", cfg.LogLevel)
	viper.Set("log_format", cfg.LogFormat)

	var cfgPath string
	if cfgFile != "" {
		cfgPath = cfgFile
		dir := filepath.Dir(cfgPath)
		if dir != "." {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return err
			}
		}
	} else {
		cfgPath = filepath.Join(configDir(), "desktopdup.yaml")
		if err := os.MkdirAll(configDir(), 0700); err != nil {
			return err
		}
	}

	return viper.WriteConfigAs(cfgPath)
}

func configDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("ProgramData"), "DesktopDup")
	case "darwin":
		return "/Library/Application Support/DesktopDup"
	default:
		return "/etc/desktopdup"
	}
}
