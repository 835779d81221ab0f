package models

import (
	"time"

	"gorm.io/datatypes"
)

// LocalUser corresponds to the local_users table: the device's identity list.
// One row per account that has logged in on this device. PinLoginEnabled here
// is the ground truth the settings cache must never contradict.
type LocalUser struct {
	ID              uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	LoginID         string            `gorm:"type:varchar(64);not null;unique" json:"login_id"`
	AccountID       string            `gorm:"type:varchar(64);not null;index" json:"account_id"`
	Username        string            `gorm:"type:varchar(255)" json:"username"`
	PasswordHash    string            `gorm:"type:varchar(255);not null" json:"-"`
	PinLoginEnabled bool              `gorm:"not null;default:false" json:"pin_login_enabled"`
	TouchIDEnabled  bool              `gorm:"not null;default:false" json:"touch_id_enabled"`
	OTPResetDate    *time.Time        `json:"otp_reset_date,omitempty"`
	OTPEnabled      bool              `gorm:"not null;default:false" json:"otp_enabled"`
	Metadata        datatypes.JSONMap `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Wallet key states
const (
	WalletStateActive   = "active"
	WalletStateArchived = "archived"
	WalletStateDeleted  = "deleted"
)

// WalletKey corresponds to the wallet_keys table: one row per wallet key
// known to the account. Archived and Deleted are independent flags; restore
// clears both.
type WalletKey struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	WalletID  string    `gorm:"type:varchar(36);not null;unique" json:"wallet_id"`
	AccountID string    `gorm:"type:varchar(64);not null;index" json:"account_id"`
	PluginID  string    `gorm:"type:varchar(64);not null" json:"plugin_id"`
	Name      string    `gorm:"type:varchar(255)" json:"name"`
	Archived  bool      `gorm:"not null;default:false" json:"archived"`
	Deleted   bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
