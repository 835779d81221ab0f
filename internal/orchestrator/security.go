package orchestrator

import (
	"context"

	apperrors "wallet-settings/internal/errors"
	"wallet-settings/internal/settings"

	"github.com/sirupsen/logrus"
)

// SetTouchIDEnabled commits the biometric flag optimistically, then performs
// the enrollment call. The cache reflects intent immediately; a failed
// enrollment is returned but not rolled back.
func (o *Orchestrator) SetTouchIDEnabled(ctx context.Context, enabled bool) error {
	o.cache.Commit(settings.TouchIDDelta{Enabled: enabled})

	var err error
	if enabled {
		err = o.authority.EnableTouchID(ctx, o.accountID())
	} else {
		err = o.authority.DisableTouchID(ctx, o.accountID())
	}
	return err
}

// SetPinLoginEnabled commits the requested value optimistically, then
// confirms it with the account's authorization change. On failure the true
// value is recomputed from the device's identity records and committed over
// the optimistic one. The correction is a read-repair, not a revert: the
// ground truth is derived independently of the previous cache value.
func (o *Orchestrator) SetPinLoginEnabled(ctx context.Context, enabled bool) error {
	o.cache.Commit(settings.PinLoginDelta{Enabled: enabled})

	err := o.authority.ChangePin(ctx, o.accountID(), enabled)
	if err == nil {
		return nil
	}
	logrus.WithError(err).Warn("pin login change failed, reconciling from identity records")

	actual, truthErr := o.authority.PinLoginGroundTruth(ctx, o.accountID())
	if truthErr != nil {
		logrus.WithError(truthErr).Warn("pin login ground-truth scan failed, assuming disabled")
		actual = false
	}
	o.cache.Commit(settings.PinLoginDelta{Enabled: actual})

	return err
}

// UnlockSettings re-validates the account password and, on success, clears
// the settings-surface lock. A wrong password returns ErrValidationFailed
// with no state change.
func (o *Orchestrator) UnlockSettings(ctx context.Context, password string) error {
	valid, err := o.authority.ValidatePassword(ctx, o.accountID(), password)
	if err != nil {
		return err
	}
	if !valid {
		return apperrors.ErrValidationFailed
	}
	o.cache.Commit(settings.SettingsLockDelta{Locked: false})
	return nil
}

// OTPChoice is the user's decision on a pending two-factor reset.
type OTPChoice string

// OTP reset decisions
const (
	// OTPChoiceKeep cancels the pending reset and keeps two-factor active.
	OTPChoiceKeep OTPChoice = "keep"
	// OTPChoiceDisable turns two-factor off entirely.
	OTPChoiceDisable OTPChoice = "disable"
	// OTPChoiceDismiss makes no change; the decision is re-prompted later.
	OTPChoiceDismiss OTPChoice = "dismiss"
)

// OTPState is the two-factor state after a reset decision.
type OTPState string

// OTP states
const (
	OTPStateResetPending OTPState = "reset_pending"
	OTPStateActive2FA    OTPState = "active_2fa"
	OTPStateNoOTP        OTPState = "no_otp"
)

// ResolveOTPReset applies the user's decision on a pending OTP reset.
// Returns ErrNoPendingReset when no reset timer is active; nothing changes
// in that case.
func (o *Orchestrator) ResolveOTPReset(ctx context.Context, choice OTPChoice) (OTPState, error) {
	resetDate, err := o.authority.OTPResetDate(ctx, o.accountID())
	if err != nil {
		return "", err
	}
	if resetDate == nil {
		return "", apperrors.ErrNoPendingReset
	}

	switch choice {
	case OTPChoiceKeep:
		if err := o.authority.CancelOTPReset(ctx, o.accountID()); err != nil {
			return "", err
		}
		return OTPStateActive2FA, nil
	case OTPChoiceDisable:
		if err := o.authority.DisableOTP(ctx, o.accountID()); err != nil {
			return "", err
		}
		return OTPStateNoOTP, nil
	default:
		// Dismissed: keep reminding.
		return OTPStateResetPending, nil
	}
}
