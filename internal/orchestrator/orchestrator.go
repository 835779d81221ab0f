// Package orchestrator coordinates multi-step settings updates: store
// writes, cache commits, derived recomputation, and failure reconciliation.
package orchestrator

import (
	"context"
	"time"

	apperrors "wallet-settings/internal/errors"
	"wallet-settings/internal/models"
	"wallet-settings/internal/notify"
	"wallet-settings/internal/permissions"
	"wallet-settings/internal/rates"
	"wallet-settings/internal/settings"

	"github.com/sirupsen/logrus"
)

// AccountAuthority performs authorization changes and answers ground-truth
// queries against the device's local identity records.
type AccountAuthority interface {
	ChangePin(ctx context.Context, accountID string, enableLogin bool) error
	PinLoginGroundTruth(ctx context.Context, accountID string) (bool, error)
	ValidatePassword(ctx context.Context, accountID, password string) (bool, error)
	EnableTouchID(ctx context.Context, accountID string) error
	DisableTouchID(ctx context.Context, accountID string) error
	OTPResetDate(ctx context.Context, accountID string) (*time.Time, error)
	CancelOTPReset(ctx context.Context, accountID string) error
	DisableOTP(ctx context.Context, accountID string) error
}

// WalletKeeper lists and mutates the account's wallet key states.
type WalletKeeper interface {
	ListRestorable(ctx context.Context, accountID string) ([]models.WalletKey, error)
	ChangeWalletState(ctx context.Context, walletID string, archived, deleted bool) error
}

// RateProvider supplies the current rate snapshot and refreshes it after a
// default-fiat change.
type RateProvider interface {
	Current() rates.Snapshot
	RefreshAsync(ctx context.Context)
}

// Navigator moves the UI to a screen. Only the wallet-restore completion
// path uses it.
type Navigator interface {
	NavigateTo(screen string, params map[string]string)
}

// ScreenWalletList is the navigation target after a wallet restore.
const ScreenWalletList = "walletList"

// NopNavigator discards navigation requests. Used when no UI shell is
// attached.
type NopNavigator struct{}

// NavigateTo implements Navigator.
func (NopNavigator) NavigateTo(screen string, params map[string]string) {}

// Deps are the collaborators of one orchestrator instance.
type Deps struct {
	Cache     *settings.Cache
	Store     *settings.AccountStore
	Authority AccountAuthority
	Wallets   WalletKeeper
	Gateway   permissions.Gateway
	Registrar notify.Registrar
	Rates     RateProvider
	Navigator Navigator
}

// Orchestrator exposes one operation per logical setting for a single
// account session. Each operation sequences its steps strictly; operations
// are not mutually exclusive with one another.
type Orchestrator struct {
	cache     *settings.Cache
	store     *settings.AccountStore
	authority AccountAuthority
	wallets   WalletKeeper
	gateway   permissions.Gateway
	registrar notify.Registrar
	rates     RateProvider
	navigator Navigator
}

// New creates an orchestrator bound to one account's cache.
func New(deps Deps) *Orchestrator {
	nav := deps.Navigator
	if nav == nil {
		nav = NopNavigator{}
	}
	return &Orchestrator{
		cache:     deps.Cache,
		store:     deps.Store,
		authority: deps.Authority,
		wallets:   deps.Wallets,
		gateway:   deps.Gateway,
		registrar: deps.Registrar,
		rates:     deps.Rates,
		navigator: nav,
	}
}

func (o *Orchestrator) accountID() string {
	return o.cache.AccountID()
}

// Snapshot returns a copy of the current settings state.
func (o *Orchestrator) Snapshot() models.SettingsSnapshot {
	return o.cache.Snapshot()
}

// UpdateOneSetting merges a partial settings object into the cache and
// commits it. No store write occurs; the change is immediately visible to
// subsequent reads.
func (o *Orchestrator) UpdateOneSetting(patch settings.Patch) {
	o.cache.Commit(settings.MergeDelta{Patch: patch})
}

// SetAutoLogoutTimeSeconds persists the auto-logout timer, then commits it.
// The store is the source of truth for this field: on a failed write the
// cache is left untouched and the error is returned.
func (o *Orchestrator) SetAutoLogoutTimeSeconds(ctx context.Context, seconds int) error {
	if err := o.store.SetAutoLogoutSeconds(o.accountID(), seconds); err != nil {
		return err
	}
	o.cache.Commit(settings.AutoLogoutDelta{Seconds: seconds})
	return nil
}

// SetPreferredSwapPluginID persists the preferred swap plugin, then commits
// it and clears any preferred plugin type in the cache. On failure the cache
// is unchanged.
func (o *Orchestrator) SetPreferredSwapPluginID(ctx context.Context, pluginID string) error {
	if err := o.store.SetPreferredSwapPluginID(o.accountID(), pluginID); err != nil {
		return err
	}
	o.cache.Commit(settings.SwapPluginIDDelta{PluginID: pluginID})
	return nil
}

// SetPreferredSwapPluginType persists the preferred swap plugin type, then
// commits it and clears any preferred plugin ID in the cache. On failure the
// cache is unchanged.
func (o *Orchestrator) SetPreferredSwapPluginType(ctx context.Context, pluginType models.SwapPluginType) error {
	if err := o.store.SetPreferredSwapPluginType(o.accountID(), pluginType); err != nil {
		return err
	}
	o.cache.Commit(settings.SwapPluginTypeDelta{PluginType: pluginType})
	return nil
}

// SetDenomination persists one asset's chosen display denomination, then
// commits it. Denominations of intrinsic assets are fixed and rejected.
func (o *Orchestrator) SetDenomination(ctx context.Context, key models.DenominationKey, denom models.Denomination) error {
	if models.IsIntrinsicAsset(key.PluginID) {
		return apperrors.ErrIntrinsicAsset
	}
	if err := o.store.SetDenomination(o.accountID(), key, denom); err != nil {
		return err
	}
	o.cache.Commit(settings.DenominationDelta{Key: key, Denomination: denom})
	return nil
}

// SetDeveloperMode persists the developer-mode flag, then commits it.
func (o *Orchestrator) SetDeveloperMode(ctx context.Context, on bool) error {
	if err := o.store.SetDeveloperMode(o.accountID(), on); err != nil {
		return err
	}
	o.cache.Commit(settings.DeveloperModeDelta{On: on})
	return nil
}

// SetSpamFilter persists the spam-filter flag, then commits it.
func (o *Orchestrator) SetSpamFilter(ctx context.Context, on bool) error {
	if err := o.store.SetSpamFilter(o.accountID(), on); err != nil {
		return err
	}
	o.cache.Commit(settings.SpamFilterDelta{On: on})
	return nil
}

// SetContactsPermission toggles the app-level contacts setting. The toggle
// persists and commits regardless of the OS permission outcome; the two are
// intentionally decoupled. Turning the toggle on additionally requests the
// OS permission, redirecting to system settings when the permission is
// blocked or the request itself fails. Turning it off never touches OS
// permission state.
func (o *Orchestrator) SetContactsPermission(ctx context.Context, on bool, prompt permissions.PromptConfig) error {
	if err := o.store.SetContactsPermission(o.accountID(), on); err != nil {
		return err
	}

	if on {
		status, err := o.gateway.Request(ctx, permissions.Contacts, prompt)
		if err != nil {
			logrus.WithError(err).Warn("contacts permission request failed, opening system settings")
			if err := o.gateway.OpenSystemSettings(ctx); err != nil {
				logrus.WithError(err).Warn("failed to open system settings")
			}
		} else if status == permissions.StatusBlocked {
			if err := o.gateway.OpenSystemSettings(ctx); err != nil {
				logrus.WithError(err).Warn("failed to open system settings")
			}
		}
	}

	o.cache.Commit(settings.ContactsPermissionDelta{On: on})
	return nil
}
