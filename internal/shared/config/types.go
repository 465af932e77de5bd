// Package config defines the typed configuration structures shared across
// the application. Loading is handled by internal/infrastructure/config.
package config

import "fmt"

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GetAddr returns the server address in host:port format.
func (c *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GetAddr returns the Redis address in host:port format.
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ShiftConfig holds the plant shift pattern parameters.
// Day shift runs [DayStartHour, DayEndHour) in plant timezone; everything
// else is the night shift. TransitionGraceMinutes bounds the window after a
// boundary during which a rollover is allowed to happen.
type ShiftConfig struct {
	DayStartHour           int    `mapstructure:"day_start_hour"`
	DayEndHour             int    `mapstructure:"day_end_hour"`
	TransitionGraceMinutes int    `mapstructure:"transition_grace_minutes"`
	Timezone               string `mapstructure:"timezone"`
	RotationFile           string `mapstructure:"rotation_file"`
}

// OEEConfig bounds the multi-machine OEE fan-out.
type OEEConfig struct {
	FanoutWorkers     int `mapstructure:"fanout_workers"`
	MachineTimeoutSec int `mapstructure:"machine_timeout_sec"`
}

// AlertConfig holds alert dispatch parameters.
type AlertConfig struct {
	DispatchLockTTLMinutes int      `mapstructure:"dispatch_lock_ttl_minutes"`
	TargetRoles            []string `mapstructure:"target_roles"`
}

// MailConfig holds SMTP settings for best-effort alert delivery.
type MailConfig struct {
	Host     string   `mapstructure:"host"`
	Port     int      `mapstructure:"port"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	From     string   `mapstructure:"from"`
	To       []string `mapstructure:"to"`
	Enabled  bool     `mapstructure:"enabled"`
}

// AuthConfig holds the shared secret used to verify externally issued
// identity tokens. Token issuance itself lives in the auth service.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// WorkerConfig holds the batch worker schedule parameters.
type WorkerConfig struct {
	ArchiveIntervalMinutes   int `mapstructure:"archive_interval_minutes"`
	GateSweepIntervalMinutes int `mapstructure:"gate_sweep_interval_minutes"`
}
