package curate

// Config holds file-based configuration loaded at startup.
type Config struct {
	DatabaseFile  string `yaml:"dbfile"`
	Host          string `yaml:"host"`
	BaseURL       string `yaml:"base_url"`
	LogFormat     string `yaml:"log_format"`
	LogLevel      string `yaml:"log_level"`
	AdminSecret   string `yaml:"admin_secret"`
	GeminiModel   string `yaml:"gemini_model"`
	OracleTimeout int    `yaml:"oracle_timeout_seconds"`
	CookieExpiry  int    `yaml:"cookie_expiry"`

	// GeminiAPIKey comes from the environment, never the config file.
	GeminiAPIKey string `yaml:"-"`

	// CookieSecret is generated once and kept in the database.
	CookieSecret []byte `yaml:"-"`
}
