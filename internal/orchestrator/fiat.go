package orchestrator

import (
	"context"
	"fmt"

	"wallet-settings/internal/models"
	"wallet-settings/internal/settings"

	"github.com/sirupsen/logrus"
)

// spendingLimitPrecision is the rounding applied to reconverted spending
// limits: two decimal places regardless of currency.
const spendingLimitPrecision = 2

// FiatCascadeResult names which phases of the default-fiat cascade
// committed. CodeCommitted without LimitsCommitted is the documented
// intermediate-inconsistency window: the currency code changed but the
// spending limit still carries the old denomination's amount.
type FiatCascadeResult struct {
	PreviousCode    string                `json:"previous_code"`
	NewCode         string                `json:"new_code"`
	CodeCommitted   bool                  `json:"code_committed"`
	LimitsCommitted bool                  `json:"limits_committed"`
	Limits          models.SpendingLimits `json:"limits"`
}

// SetDefaultFiat changes the default fiat currency and re-expresses the
// spending limit in the new code. The cascade is two independent store
// writes with no multi-key transaction:
//
//  1. read the pre-change amount and code from the snapshot
//  2. persist the new code; abort with no cache change on failure
//  3. commit the new code to cache
//  4. convert the pre-change amount old code -> new code, round to 2 decimals
//  5. persist the recomputed limits; on failure the code commit stands
//  6. commit the recomputed limits to cache
//  7. refresh rates and re-register notification topics, asynchronously
//
// The pre-change amount must be read before step 3: the conversion uses the
// previous code as its source currency.
func (o *Orchestrator) SetDefaultFiat(ctx context.Context, newCode string) (FiatCascadeResult, error) {
	snap := o.cache.Snapshot()
	previousCode := snap.DefaultFiatCode
	previousLimits := snap.SpendingLimits

	result := FiatCascadeResult{
		PreviousCode: previousCode,
		NewCode:      newCode,
		Limits:       previousLimits,
	}

	if err := o.store.SetDefaultFiat(o.accountID(), newCode); err != nil {
		return result, err
	}

	o.cache.Commit(settings.DefaultFiatDelta{Code: newCode})
	result.CodeCommitted = true

	converted, err := o.rates.Current().Convert(previousLimits.Transaction.Amount, previousCode, newCode)
	if err != nil {
		return result, fmt.Errorf("failed to reconvert spending limit: %w", err)
	}

	nextLimits := previousLimits
	nextLimits.Transaction.Amount = converted.Round(spendingLimitPrecision)
	result.Limits = nextLimits

	if err := o.store.SetSpendingLimits(o.accountID(), nextLimits); err != nil {
		// The code change from step 3 stands; this window is accepted.
		return result, err
	}

	o.cache.Commit(settings.SpendingLimitsDelta{Limits: nextLimits})
	result.LimitsCommitted = true

	// The refresh and re-registration outlive the request that triggered
	// them; the caller's context is cancelled once its response is written.
	background := context.WithoutCancel(ctx)
	o.rates.RefreshAsync(background)
	go func() {
		if err := o.registrar.Reregister(background, true); err != nil {
			logrus.WithError(err).Warn("notification re-registration failed after fiat change")
		}
	}()

	return result, nil
}
