// Package notify re-registers push-notification topics for an account.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Registrar re-subscribes the account to its push-notification topics.
// Re-registration is idempotent; force re-registers even when the topic set
// is unchanged (needed after a default-fiat change, which alters
// price-alert topics).
type Registrar interface {
	Reregister(ctx context.Context, force bool) error
}

// LogRegistrar is the default Registrar: it records the request and succeeds.
// Deployments wire a real push provider in its place.
type LogRegistrar struct{}

// NewLogRegistrar creates the default registrar.
func NewLogRegistrar() *LogRegistrar {
	return &LogRegistrar{}
}

// Reregister implements Registrar.
func (r *LogRegistrar) Reregister(ctx context.Context, force bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logrus.WithField("force", force).Debug("notifications: re-registration requested")
	return nil
}
