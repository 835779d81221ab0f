// Package settings holds the account settings store and the per-session
// settings cache.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	apperrors "wallet-settings/internal/errors"
	"wallet-settings/internal/models"
	"wallet-settings/internal/store"
)

// Store keys per field group. Each field group is persisted and fetched
// independently; there is no multi-key transaction.
const (
	keyAutoLogout         = "auto_logout_seconds"
	keyDefaultFiat        = "default_fiat"
	keySpendingLimits     = "spending_limits"
	keySwapPluginID       = "swap_plugin_id"
	keySwapPluginType     = "swap_plugin_type"
	keyDeveloperMode      = "developer_mode"
	keySpamFilter         = "spam_filter"
	keyContactsPermission = "contacts_permission"
	keyDenominations      = "denominations"
)

// AccountStore persists settings field groups for authenticated accounts,
// namespaced per account in the underlying key-value store.
type AccountStore struct {
	store store.Store
}

// NewAccountStore creates an account settings store over the given backend.
func NewAccountStore(st store.Store) *AccountStore {
	return &AccountStore{store: st}
}

func accountKey(accountID, field string) string {
	return fmt.Sprintf("account:%s:settings:%s", accountID, field)
}

func denominationField(key models.DenominationKey) string {
	return key.PluginID + "/" + key.CurrencyCode
}

func (a *AccountStore) setJSON(accountID, field string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return apperrors.Persistence(field, err)
	}
	if err := a.store.Set(accountKey(accountID, field), data, 0); err != nil {
		return apperrors.Persistence(field, err)
	}
	return nil
}

// getJSON unmarshals the stored value into out. Returns store.ErrNotFound
// untouched so Load can apply defaults.
func (a *AccountStore) getJSON(accountID, field string, out any) error {
	data, err := a.store.Get(accountKey(accountID, field))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

// SetAutoLogoutSeconds persists the auto-logout timer.
func (a *AccountStore) SetAutoLogoutSeconds(accountID string, seconds int) error {
	return a.setJSON(accountID, keyAutoLogout, seconds)
}

// SetDefaultFiat persists the default fiat currency code.
func (a *AccountStore) SetDefaultFiat(accountID, code string) error {
	return a.setJSON(accountID, keyDefaultFiat, code)
}

// SetSpendingLimits persists the spending limits. The transaction amount is
// denominated in the account's default fiat code at the time of the write.
func (a *AccountStore) SetSpendingLimits(accountID string, limits models.SpendingLimits) error {
	return a.setJSON(accountID, keySpendingLimits, limits)
}

// SetPreferredSwapPluginID persists the preferred swap plugin. An empty ID
// clears the preference.
func (a *AccountStore) SetPreferredSwapPluginID(accountID, pluginID string) error {
	return a.setJSON(accountID, keySwapPluginID, pluginID)
}

// SetPreferredSwapPluginType persists the preferred swap plugin type. An
// empty type clears the preference.
func (a *AccountStore) SetPreferredSwapPluginType(accountID string, pluginType models.SwapPluginType) error {
	return a.setJSON(accountID, keySwapPluginType, pluginType)
}

// SetDeveloperMode persists the developer mode flag.
func (a *AccountStore) SetDeveloperMode(accountID string, on bool) error {
	return a.setJSON(accountID, keyDeveloperMode, on)
}

// SetSpamFilter persists the spam filter flag.
func (a *AccountStore) SetSpamFilter(accountID string, on bool) error {
	return a.setJSON(accountID, keySpamFilter, on)
}

// SetContactsPermission persists the app-level contacts toggle. This is
// distinct from the OS-level permission state.
func (a *AccountStore) SetContactsPermission(accountID string, on bool) error {
	return a.setJSON(accountID, keyContactsPermission, on)
}

// SetDenomination persists one asset's chosen display denomination.
func (a *AccountStore) SetDenomination(accountID string, key models.DenominationKey, denom models.Denomination) error {
	data, err := json.Marshal(denom)
	if err != nil {
		return apperrors.Persistence(keyDenominations, err)
	}
	err = a.store.HSet(accountKey(accountID, keyDenominations), map[string]any{
		denominationField(key): string(data),
	})
	if err != nil {
		return apperrors.Persistence(keyDenominations, err)
	}
	return nil
}

// Load hydrates a full settings snapshot for the account, applying the given
// defaults for any field group that has never been persisted.
func (a *AccountStore) Load(accountID string, defaults models.SettingsSnapshot) (models.SettingsSnapshot, error) {
	snap := defaults.Clone()
	snap.AccountID = accountID

	if err := a.loadField(accountID, keyAutoLogout, &snap.AutoLogoutSeconds); err != nil {
		return snap, err
	}
	if err := a.loadField(accountID, keyDefaultFiat, &snap.DefaultFiatCode); err != nil {
		return snap, err
	}
	if err := a.loadField(accountID, keySpendingLimits, &snap.SpendingLimits); err != nil {
		return snap, err
	}
	if err := a.loadField(accountID, keySwapPluginID, &snap.PreferredSwapPluginID); err != nil {
		return snap, err
	}
	if err := a.loadField(accountID, keySwapPluginType, &snap.PreferredSwapPluginType); err != nil {
		return snap, err
	}
	if err := a.loadField(accountID, keyDeveloperMode, &snap.DeveloperModeOn); err != nil {
		return snap, err
	}
	if err := a.loadField(accountID, keySpamFilter, &snap.SpamFilterOn); err != nil {
		return snap, err
	}
	if err := a.loadField(accountID, keyContactsPermission, &snap.ContactsPermissionOn); err != nil {
		return snap, err
	}

	denoms, err := a.store.HGetAll(accountKey(accountID, keyDenominations))
	if err != nil {
		return snap, apperrors.Persistence(keyDenominations, err)
	}
	for field, raw := range denoms {
		pluginID, currencyCode, ok := strings.Cut(field, "/")
		if !ok {
			continue
		}
		var denom models.Denomination
		if err := json.Unmarshal([]byte(raw), &denom); err != nil {
			return snap, apperrors.Persistence(keyDenominations, err)
		}
		snap.DenominationByAsset[models.DenominationKey{PluginID: pluginID, CurrencyCode: currencyCode}] = denom
	}

	return snap, nil
}

func (a *AccountStore) loadField(accountID, field string, out any) error {
	err := a.getJSON(accountID, field, out)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return apperrors.Persistence(field, err)
	}
	return nil
}
