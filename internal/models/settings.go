package models

import (
	"github.com/shopspring/decimal"
)

// SwapPluginType selects a class of swap providers rather than a single plugin.
type SwapPluginType string

// Swap plugin types
const (
	SwapPluginTypeFixed    SwapPluginType = "fixed"
	SwapPluginTypeVariable SwapPluginType = "variable"
)

// DenominationKey identifies one asset's display denomination entry.
type DenominationKey struct {
	PluginID     string `json:"plugin_id"`
	CurrencyCode string `json:"currency_code"`
}

// Denomination describes how an asset amount is displayed.
type Denomination struct {
	Name       string `json:"name"`
	Multiplier string `json:"multiplier"`
	Symbol     string `json:"symbol,omitempty"`
}

// TransactionLimit is a per-transaction spending cap denominated in the
// account's default fiat currency.
type TransactionLimit struct {
	Amount    decimal.Decimal `json:"amount"`
	IsEnabled bool            `json:"is_enabled"`
}

// SpendingLimits groups the spending caps for one account.
type SpendingLimits struct {
	Transaction TransactionLimit `json:"transaction"`
}

// SettingsSnapshot is the full in-memory settings state for one logged-in
// account. It is created on login, mutated only through orchestrator
// operations, and discarded on logout.
type SettingsSnapshot struct {
	AccountID               string                           `json:"account_id"`
	AutoLogoutSeconds       int                              `json:"auto_logout_seconds"`
	DefaultFiatCode         string                           `json:"default_fiat_code"`
	SpendingLimits          SpendingLimits                   `json:"spending_limits"`
	PreferredSwapPluginID   string                           `json:"preferred_swap_plugin_id,omitempty"`
	PreferredSwapPluginType SwapPluginType                   `json:"preferred_swap_plugin_type,omitempty"`
	DeveloperModeOn         bool                             `json:"developer_mode_on"`
	SpamFilterOn            bool                             `json:"spam_filter_on"`
	ContactsPermissionOn    bool                             `json:"contacts_permission_on"`
	DenominationByAsset     map[DenominationKey]Denomination `json:"-"`
	PinLoginEnabled         bool                             `json:"pin_login_enabled"`
	TouchIDEnabled          bool                             `json:"touch_id_enabled"`
	SettingsLocked          bool                             `json:"settings_locked"`
}

// DefaultSnapshot returns the settings state applied to an account that has
// never persisted anything.
func DefaultSnapshot(accountID string) SettingsSnapshot {
	return SettingsSnapshot{
		AccountID:         accountID,
		AutoLogoutSeconds: 3600,
		DefaultFiatCode:   "USD",
		SpendingLimits: SpendingLimits{
			Transaction: TransactionLimit{Amount: decimal.Zero, IsEnabled: false},
		},
		SpamFilterOn:        true,
		DenominationByAsset: map[DenominationKey]Denomination{},
		SettingsLocked:      true,
	}
}

// Clone returns a deep copy of the snapshot. The denomination map is copied
// so callers cannot mutate cached state through a read.
func (s SettingsSnapshot) Clone() SettingsSnapshot {
	out := s
	out.DenominationByAsset = make(map[DenominationKey]Denomination, len(s.DenominationByAsset))
	for k, v := range s.DenominationByAsset {
		out.DenominationByAsset[k] = v
	}
	return out
}

// intrinsicPluginIDs are the assets that ship with the app. Their
// denominations are fixed and not editable through the settings layer.
var intrinsicPluginIDs = map[string]bool{
	"bitcoin":  true,
	"ethereum": true,
}

// IsIntrinsicAsset reports whether the plugin belongs to the app's fixed
// default asset set.
func IsIntrinsicAsset(pluginID string) bool {
	return intrinsicPluginIDs[pluginID]
}
