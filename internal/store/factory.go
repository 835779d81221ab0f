package store

import (
	"fmt"

	"wallet-settings/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewStore creates a Store based on the configured Redis DSN. An empty DSN
// selects the in-memory backend.
func NewStore(configManager *config.Manager) (Store, error) {
	dsn := configManager.GetRedisDSN()
	if dsn == "" {
		logrus.Info("settings store: using in-memory backend")
		return NewMemoryStore(), nil
	}

	opt, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis dsn: %w", err)
	}

	logrus.Info("settings store: using redis backend")
	return NewRedisStore(redis.NewClient(opt)), nil
}
