// Package config provides environment-backed configuration management.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
)

// ServerConfig represents server configuration
type ServerConfig struct {
	Host                    string
	Port                    int
	ReadTimeout             int
	WriteTimeout            int
	IdleTimeout             int
	GracefulShutdownTimeout int
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// DatabaseConfig represents the device-local identity database configuration
type DatabaseConfig struct {
	DSN string
}

// Manager reads configuration from the environment once at startup.
type Manager struct {
	server            ServerConfig
	log               LogConfig
	database          DatabaseConfig
	redisDSN          string
	autoLogoutDefault int
}

// NewManager creates a configuration manager from the current environment.
func NewManager() (*Manager, error) {
	m := &Manager{
		server: ServerConfig{
			Host:                    envString("HOST", "0.0.0.0"),
			Port:                    envInt("PORT", 3000),
			ReadTimeout:             envInt("SERVER_READ_TIMEOUT", 60),
			WriteTimeout:            envInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:             envInt("SERVER_IDLE_TIMEOUT", 120),
			GracefulShutdownTimeout: envInt("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT", 10),
		},
		log: LogConfig{
			Level:  envString("LOG_LEVEL", "info"),
			Format: envString("LOG_FORMAT", "text"),
		},
		database: DatabaseConfig{
			DSN: envString("DATABASE_DSN", "./data/wallet-settings.db"),
		},
		redisDSN:          envString("REDIS_DSN", ""),
		autoLogoutDefault: envInt("AUTO_LOGOUT_DEFAULT_SECONDS", 3600),
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks configuration invariants.
func (m *Manager) Validate() error {
	if m.server.Port < 1 || m.server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", m.server.Port)
	}
	if m.autoLogoutDefault < 0 {
		return fmt.Errorf("invalid auto logout default: %d", m.autoLogoutDefault)
	}
	return nil
}

// GetEffectiveServerConfig returns server configuration.
func (m *Manager) GetEffectiveServerConfig() ServerConfig {
	return m.server
}

// GetLogConfig returns logging configuration.
func (m *Manager) GetLogConfig() LogConfig {
	return m.log
}

// GetDatabaseConfig returns the identity database configuration.
func (m *Manager) GetDatabaseConfig() DatabaseConfig {
	return m.database
}

// GetRedisDSN returns the Redis DSN, empty when the memory store is used.
func (m *Manager) GetRedisDSN() string {
	return m.redisDSN
}

// GetAutoLogoutDefaultSeconds returns the default auto-logout timer applied
// to accounts with no persisted value.
func (m *Manager) GetAutoLogoutDefaultSeconds() int {
	return m.autoLogoutDefault
}

// DisplayServerConfig logs the effective configuration at startup.
func (m *Manager) DisplayServerConfig() {
	logrus.WithFields(logrus.Fields{
		"host":  m.server.Host,
		"port":  m.server.Port,
		"db":    m.database.DSN,
		"redis": m.redisDSN != "",
	}).Info("server configuration loaded")
}

// SetupLogger applies the configured log level and format to logrus.
func (m *Manager) SetupLogger() {
	level, err := logrus.ParseLevel(m.log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if m.log.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("invalid integer for %s: %q, using default %d", key, v, def)
		return def
	}
	return n
}
