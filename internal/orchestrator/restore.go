package orchestrator

import (
	"context"
	"sync"

	apperrors "wallet-settings/internal/errors"

	"github.com/sirupsen/logrus"
)

// RestoreReport lists per-wallet outcomes of a bulk restore. Successes are
// never rolled back on sibling failure.
type RestoreReport struct {
	Examined int                    `json:"examined"`
	Restored int                    `json:"restored"`
	Results  []apperrors.ItemResult `json:"-"`
}

// RestoreWallets restores every wallet currently flagged archived or
// deleted, clearing both flags. The per-wallet state changes run
// concurrently; completion is the join of all of them. Partial failure is
// reported item by item through PartialBulkError. After the join the UI is
// navigated to the wallet list.
func (o *Orchestrator) RestoreWallets(ctx context.Context) (RestoreReport, error) {
	accountID := o.accountID()

	keys, err := o.wallets.ListRestorable(ctx, accountID)
	if err != nil {
		return RestoreReport{}, err
	}

	report := RestoreReport{
		Examined: len(keys),
		Results:  make([]apperrors.ItemResult, len(keys)),
	}

	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, walletID string) {
			defer wg.Done()
			err := o.wallets.ChangeWalletState(ctx, walletID, false, false)
			report.Results[i] = apperrors.ItemResult{ID: walletID, Err: err}
		}(i, key.WalletID)
	}
	wg.Wait()

	for _, r := range report.Results {
		if r.Err == nil {
			report.Restored++
		}
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"examined":   report.Examined,
		"restored":   report.Restored,
	}).Info("restore wallets")

	o.navigator.NavigateTo(ScreenWalletList, nil)

	if report.Restored < report.Examined {
		return report, &apperrors.PartialBulkError{Op: "restore wallets", Results: report.Results}
	}
	return report, nil
}
