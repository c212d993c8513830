package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Lookup struct {
		BaseURL     string `mapstructure:"base_url"`
		TTSEndpoint string `mapstructure:"tts_endpoint"`
	} `mapstructure:"lookup"`
	Import struct {
		ShortDelayMinMs  int `mapstructure:"short_delay_min_ms"`
		ShortDelayMaxMs  int `mapstructure:"short_delay_max_ms"`
		LongDelayMinMs   int `mapstructure:"long_delay_min_ms"`
		LongDelayMaxMs   int `mapstructure:"long_delay_max_ms"`
		EscalateEverySec int `mapstructure:"escalate_every_sec"`
	} `mapstructure:"import"`
	App struct {
		DefaultMode       string `mapstructure:"default_mode"`
		SessionTTLMinutes int    `mapstructure:"session_ttl_minutes"`
	} `mapstructure:"app"`
	CORS struct {
		AllowedOrigins   []string `mapstructure:"allowed_origins"`
		AllowedMethods   []string `mapstructure:"allowed_methods"`
		AllowedHeaders   []string `mapstructure:"allowed_headers"`
		ExposedHeaders   []string `mapstructure:"exposed_headers"`
		AllowCredentials bool     `mapstructure:"allow_credentials"`
		MaxAge           int      `mapstructure:"max_age"`
	} `mapstructure:"cors"`
}

var Cfg Config

// Load reads config.yaml from path (falling back to the working directory)
// and fills defaults for anything not set. Environment variables with the
// WORDVAULT_ prefix override file values.
func Load(path string) error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("WORDVAULT")
	viper.AutomaticEnv()
	viper.BindEnv("database.url", "WORDVAULT_DATABASE_URL")
	viper.BindEnv("lookup.base_url", "WORDVAULT_LOOKUP_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Warning: config file not found, using defaults and environment")
		} else {
			log.Printf("Error reading config file: %s\n", err)
			return err
		}
	}

	if err := viper.Unmarshal(&Cfg); err != nil {
		log.Printf("Error unmarshalling config: %s\n", err)
		return err
	}

	applyDefaults(&Cfg)
	return nil
}

func applyDefaults(c *Config) {
	if c.Server.Port == "" {
		c.Server.Port = DefaultServerPort
	}
	if c.Database.URL == "" {
		c.Database.URL = DefaultDatabaseURL
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Lookup.TTSEndpoint == "" {
		c.Lookup.TTSEndpoint = DefaultTTSEndpoint
	}
	if c.Import.ShortDelayMinMs <= 0 {
		c.Import.ShortDelayMinMs = DefaultShortDelayMinMs
	}
	if c.Import.ShortDelayMaxMs <= 0 {
		c.Import.ShortDelayMaxMs = DefaultShortDelayMaxMs
	}
	if c.Import.LongDelayMinMs <= 0 {
		c.Import.LongDelayMinMs = DefaultLongDelayMinMs
	}
	if c.Import.LongDelayMaxMs <= 0 {
		c.Import.LongDelayMaxMs = DefaultLongDelayMaxMs
	}
	if c.Import.EscalateEverySec <= 0 {
		c.Import.EscalateEverySec = DefaultEscalateEverySec
	}
	if c.App.DefaultMode == "" {
		c.App.DefaultMode = DefaultStudyMode
	}
	if c.App.SessionTTLMinutes <= 0 {
		c.App.SessionTTLMinutes = DefaultSessionTTLMinutes
	}
}
