package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/wecurate/wecurate/curate"
	"github.com/wecurate/wecurate/internal/logger"
	"gopkg.in/yaml.v3"
)

const configFilename = "config.yaml"

// SetupConfig loads file-based configuration needed for bootstrap. The
// session cookie secret is loaded from the database after the connection is
// established.
func SetupConfig() *curate.Config {
	viper.SetDefault("dbfile", "wecurate.db")
	viper.SetDefault("host", "0.0.0.0:8080")
	viper.SetDefault("base_url", "http://localhost:8080")
	viper.SetDefault("log_format", "pretty") // pretty, json, or text
	viper.SetDefault("log_level", "info")    // debug, info, warn, error
	viper.SetDefault("admin_secret", "admin888") // demo gate, change it
	viper.SetDefault("gemini_model", "gemini-3-flash-preview")
	viper.SetDefault("oracle_timeout_seconds", 60)
	viper.SetDefault("cookie_expiry", 604800) // 7 days

	// The API key only ever comes from the environment.
	_ = viper.BindEnv("gemini_api_key", "GEMINI_API_KEY")

	viper.SetConfigFile(configFilename)
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()

	createDefaultConfigFile := false

	if err != nil {
		if strings.Contains(err.Error(), "no such file or directory") {
			createDefaultConfigFile = true
		} else {
			slog.Error("failed to read config", "error", err)
			os.Exit(1)
		}
	}

	// Initialize logger with configured format and level
	logger.InitLogger(
		logger.ParseLogFormat(viper.GetString("log_format")),
		logger.ParseLogLevel(viper.GetString("log_level")),
	)

	config := &curate.Config{
		DatabaseFile:  viper.GetString("dbfile"),
		Host:          viper.GetString("host"),
		BaseURL:       viper.GetString("base_url"),
		LogFormat:     viper.GetString("log_format"),
		LogLevel:      viper.GetString("log_level"),
		AdminSecret:   viper.GetString("admin_secret"),
		GeminiModel:   viper.GetString("gemini_model"),
		GeminiAPIKey:  viper.GetString("gemini_api_key"),
		OracleTimeout: viper.GetInt("oracle_timeout_seconds"),
		CookieExpiry:  viper.GetInt("cookie_expiry"),
	}

	if createDefaultConfigFile {
		slog.Info("config not found, writing defaults", "file", configFilename)
		conf, err := os.Create(configFilename)
		if err != nil {
			slog.Error("failed to create config file", "error", err)
			os.Exit(1)
		}

		if err := yaml.NewEncoder(conf).Encode(config); err != nil {
			slog.Error("failed to write config file", "error", err)
			os.Exit(1)
		}
	}

	return config
}
