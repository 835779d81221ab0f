package settings

import (
	"wallet-settings/internal/models"
)

// EventKind tags one committed field group. The UI layer consumes these as
// commit notifications.
type EventKind string

// Commit event kinds
const (
	EventSettingsUpdated           EventKind = "settings_updated"
	EventAutoLogoutUpdated         EventKind = "auto_logout_updated"
	EventDefaultFiatUpdated        EventKind = "default_fiat_updated"
	EventSpendingLimitsUpdated     EventKind = "spending_limits_updated"
	EventSwapPluginUpdated         EventKind = "swap_plugin_updated"
	EventDeveloperModeOn           EventKind = "developer_mode_on"
	EventDeveloperModeOff          EventKind = "developer_mode_off"
	EventSpamFilterOn              EventKind = "spam_filter_on"
	EventSpamFilterOff             EventKind = "spam_filter_off"
	EventDenominationUpdated       EventKind = "denomination_updated"
	EventPinLoginToggled           EventKind = "pin_login_toggled"
	EventContactsPermissionUpdated EventKind = "contacts_permission_updated"
	EventTouchIDToggled            EventKind = "touch_id_toggled"
	EventSettingsLockUpdated       EventKind = "settings_lock_updated"
)

// Delta is one tagged state transition applied to the settings snapshot.
// The set of implementations is closed: the reducer in Cache.Commit is the
// only consumer and every variant lives in this file.
type Delta interface {
	Kind() EventKind
	apply(s *models.SettingsSnapshot)
}

// Patch carries optional field overrides for the generic merge operation.
// Nil fields are left untouched.
type Patch struct {
	AutoLogoutSeconds *int                   `json:"auto_logout_seconds,omitempty"`
	DefaultFiatCode   *string                `json:"default_fiat_code,omitempty"`
	DeveloperModeOn   *bool                  `json:"developer_mode_on,omitempty"`
	SpamFilterOn      *bool                  `json:"spam_filter_on,omitempty"`
	SettingsLocked    *bool                  `json:"settings_locked,omitempty"`
	SpendingLimits    *models.SpendingLimits `json:"spending_limits,omitempty"`
}

// MergeDelta merges a partial settings object into the snapshot. No store
// write accompanies it.
type MergeDelta struct {
	Patch Patch
}

// Kind implements Delta.
func (d MergeDelta) Kind() EventKind { return EventSettingsUpdated }

func (d MergeDelta) apply(s *models.SettingsSnapshot) {
	p := d.Patch
	if p.AutoLogoutSeconds != nil {
		s.AutoLogoutSeconds = *p.AutoLogoutSeconds
	}
	if p.DefaultFiatCode != nil {
		s.DefaultFiatCode = *p.DefaultFiatCode
	}
	if p.DeveloperModeOn != nil {
		s.DeveloperModeOn = *p.DeveloperModeOn
	}
	if p.SpamFilterOn != nil {
		s.SpamFilterOn = *p.SpamFilterOn
	}
	if p.SettingsLocked != nil {
		s.SettingsLocked = *p.SettingsLocked
	}
	if p.SpendingLimits != nil {
		s.SpendingLimits = *p.SpendingLimits
	}
}

// AutoLogoutDelta commits a new auto-logout timer.
type AutoLogoutDelta struct {
	Seconds int `json:"seconds"`
}

// Kind implements Delta.
func (d AutoLogoutDelta) Kind() EventKind { return EventAutoLogoutUpdated }

func (d AutoLogoutDelta) apply(s *models.SettingsSnapshot) {
	s.AutoLogoutSeconds = d.Seconds
}

// DefaultFiatDelta commits a new default fiat currency code. It does not
// touch the spending limits; the fiat cascade commits those separately.
type DefaultFiatDelta struct {
	Code string `json:"code"`
}

// Kind implements Delta.
func (d DefaultFiatDelta) Kind() EventKind { return EventDefaultFiatUpdated }

func (d DefaultFiatDelta) apply(s *models.SettingsSnapshot) {
	s.DefaultFiatCode = d.Code
}

// SpendingLimitsDelta commits recomputed spending limits.
type SpendingLimitsDelta struct {
	Limits models.SpendingLimits `json:"limits"`
}

// Kind implements Delta.
func (d SpendingLimitsDelta) Kind() EventKind { return EventSpendingLimitsUpdated }

func (d SpendingLimitsDelta) apply(s *models.SettingsSnapshot) {
	s.SpendingLimits = d.Limits
}

// SwapPluginIDDelta commits a preferred swap plugin and clears any preferred
// plugin type, keeping the two mutually exclusive.
type SwapPluginIDDelta struct {
	PluginID string `json:"plugin_id"`
}

// Kind implements Delta.
func (d SwapPluginIDDelta) Kind() EventKind { return EventSwapPluginUpdated }

func (d SwapPluginIDDelta) apply(s *models.SettingsSnapshot) {
	s.PreferredSwapPluginID = d.PluginID
	s.PreferredSwapPluginType = ""
}

// SwapPluginTypeDelta commits a preferred swap plugin type and clears any
// preferred plugin ID, keeping the two mutually exclusive.
type SwapPluginTypeDelta struct {
	PluginType models.SwapPluginType `json:"plugin_type"`
}

// Kind implements Delta.
func (d SwapPluginTypeDelta) Kind() EventKind { return EventSwapPluginUpdated }

func (d SwapPluginTypeDelta) apply(s *models.SettingsSnapshot) {
	s.PreferredSwapPluginType = d.PluginType
	s.PreferredSwapPluginID = ""
}

// DeveloperModeDelta commits the developer mode flag.
type DeveloperModeDelta struct {
	On bool `json:"on"`
}

// Kind implements Delta.
func (d DeveloperModeDelta) Kind() EventKind {
	if d.On {
		return EventDeveloperModeOn
	}
	return EventDeveloperModeOff
}

func (d DeveloperModeDelta) apply(s *models.SettingsSnapshot) {
	s.DeveloperModeOn = d.On
}

// SpamFilterDelta commits the spam filter flag.
type SpamFilterDelta struct {
	On bool `json:"on"`
}

// Kind implements Delta.
func (d SpamFilterDelta) Kind() EventKind {
	if d.On {
		return EventSpamFilterOn
	}
	return EventSpamFilterOff
}

func (d SpamFilterDelta) apply(s *models.SettingsSnapshot) {
	s.SpamFilterOn = d.On
}

// ContactsPermissionDelta commits the app-level contacts toggle.
type ContactsPermissionDelta struct {
	On bool `json:"on"`
}

// Kind implements Delta.
func (d ContactsPermissionDelta) Kind() EventKind { return EventContactsPermissionUpdated }

func (d ContactsPermissionDelta) apply(s *models.SettingsSnapshot) {
	s.ContactsPermissionOn = d.On
}

// DenominationDelta commits one asset's chosen display denomination.
type DenominationDelta struct {
	Key          models.DenominationKey `json:"key"`
	Denomination models.Denomination    `json:"denomination"`
}

// Kind implements Delta.
func (d DenominationDelta) Kind() EventKind { return EventDenominationUpdated }

func (d DenominationDelta) apply(s *models.SettingsSnapshot) {
	s.DenominationByAsset[d.Key] = d.Denomination
}

// PinLoginDelta commits the PIN-login flag. It is used both for the
// optimistic apply and for the corrective apply after read-repair.
type PinLoginDelta struct {
	Enabled bool `json:"enabled"`
}

// Kind implements Delta.
func (d PinLoginDelta) Kind() EventKind { return EventPinLoginToggled }

func (d PinLoginDelta) apply(s *models.SettingsSnapshot) {
	s.PinLoginEnabled = d.Enabled
}

// TouchIDDelta commits the biometric login flag.
type TouchIDDelta struct {
	Enabled bool `json:"enabled"`
}

// Kind implements Delta.
func (d TouchIDDelta) Kind() EventKind { return EventTouchIDToggled }

func (d TouchIDDelta) apply(s *models.SettingsSnapshot) {
	s.TouchIDEnabled = d.Enabled
}

// SettingsLockDelta commits the settings-surface lock flag.
type SettingsLockDelta struct {
	Locked bool `json:"locked"`
}

// Kind implements Delta.
func (d SettingsLockDelta) Kind() EventKind { return EventSettingsLockUpdated }

func (d SettingsLockDelta) apply(s *models.SettingsSnapshot) {
	s.SettingsLocked = d.Locked
}
