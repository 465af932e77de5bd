package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/shopfloor-io/shopfloor/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
	Shift    sharedConfig.ShiftConfig    `mapstructure:"shift"`
	OEE      sharedConfig.OEEConfig      `mapstructure:"oee"`
	Alert    sharedConfig.AlertConfig    `mapstructure:"alert"`
	Mail     sharedConfig.MailConfig     `mapstructure:"mail"`
	Auth     sharedConfig.AuthConfig     `mapstructure:"auth"`
	Worker   sharedConfig.WorkerConfig   `mapstructure:"worker"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load loads configuration from file and environment variables.
func Load(env string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")

	viper.SetEnvPrefix("SHOPFLOOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if env != "" && env != "default" {
		viper.Set("server.mode", env)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func validate(c *Config) error {
	if c.Shift.DayStartHour < 0 || c.Shift.DayStartHour > 23 ||
		c.Shift.DayEndHour < 0 || c.Shift.DayEndHour > 23 {
		return fmt.Errorf("shift boundary hours must be within 0-23")
	}
	if c.Shift.DayStartHour >= c.Shift.DayEndHour {
		return fmt.Errorf("shift.day_start_hour must be before shift.day_end_hour")
	}
	if c.Shift.TransitionGraceMinutes <= 0 || c.Shift.TransitionGraceMinutes > 60 {
		return fmt.Errorf("shift.transition_grace_minutes must be within 1-60")
	}
	return nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 3306)
	viper.SetDefault("database.username", "root")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "shopfloor_dev")
	viper.SetDefault("database.max_idle_conns", 10)
	viper.SetDefault("database.max_open_conns", 100)
	viper.SetDefault("database.conn_max_lifetime", 3600)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Shift defaults: 07:00-19:00 day shift, 5 minute transition window
	viper.SetDefault("shift.day_start_hour", 7)
	viper.SetDefault("shift.day_end_hour", 19)
	viper.SetDefault("shift.transition_grace_minutes", 5)
	viper.SetDefault("shift.timezone", "Europe/Warsaw")
	viper.SetDefault("shift.rotation_file", "./configs/rotation.yaml")

	// OEE fan-out defaults
	viper.SetDefault("oee.fanout_workers", 8)
	viper.SetDefault("oee.machine_timeout_sec", 10)

	// Alert defaults
	viper.SetDefault("alert.dispatch_lock_ttl_minutes", 5)
	viper.SetDefault("alert.target_roles", []string{"quality_manager", "line_lead"})

	// Mail defaults (disabled unless configured)
	viper.SetDefault("mail.enabled", false)
	viper.SetDefault("mail.port", 587)

	// Worker defaults
	viper.SetDefault("worker.archive_interval_minutes", 10)
	viper.SetDefault("worker.gate_sweep_interval_minutes", 5)
}
