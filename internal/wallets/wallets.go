// Package wallets manages wallet key records and their archived/deleted
// state flags.
package wallets

import (
	"context"
	"errors"
	"fmt"

	"wallet-settings/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrUnknownWallet is returned when no wallet key matches the given ID.
var ErrUnknownWallet = errors.New("wallets: unknown wallet")

// Keeper reads and mutates wallet key records for the account.
type Keeper struct {
	db *gorm.DB
}

// NewKeeper creates a wallet keeper.
func NewKeeper(db *gorm.DB) *Keeper {
	return &Keeper{db: db}
}

// Create adds a wallet key record for the account and returns it.
func (k *Keeper) Create(ctx context.Context, accountID, pluginID, name string) (*models.WalletKey, error) {
	key := models.WalletKey{
		WalletID:  uuid.NewString(),
		AccountID: accountID,
		PluginID:  pluginID,
		Name:      name,
	}
	if err := k.db.WithContext(ctx).Create(&key).Error; err != nil {
		return nil, fmt.Errorf("failed to create wallet key: %w", err)
	}
	return &key, nil
}

// ListRestorable returns every wallet key of the account flagged archived or
// deleted.
func (k *Keeper) ListRestorable(ctx context.Context, accountID string) ([]models.WalletKey, error) {
	var keys []models.WalletKey
	err := k.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Where("archived = ? OR deleted = ?", true, true).
		Find(&keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list restorable wallets: %w", err)
	}
	return keys, nil
}

// ChangeWalletState sets both state flags of one wallet. Each call is an
// independent request; bulk callers issue them concurrently.
func (k *Keeper) ChangeWalletState(ctx context.Context, walletID string, archived, deleted bool) error {
	result := k.db.WithContext(ctx).
		Model(&models.WalletKey{}).
		Where("wallet_id = ?", walletID).
		Updates(map[string]any{"archived": archived, "deleted": deleted})
	if result.Error != nil {
		return fmt.Errorf("failed to change wallet state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUnknownWallet
	}
	logrus.WithFields(logrus.Fields{
		"wallet_id": walletID,
		"archived":  archived,
		"deleted":   deleted,
	}).Debug("wallet state changed")
	return nil
}
