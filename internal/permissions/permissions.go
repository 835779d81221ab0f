// Package permissions defines the boundary to the OS permission system.
package permissions

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Status is the tri-state outcome of an OS permission request.
type Status string

// Permission request outcomes
const (
	// StatusGranted means the user allowed the permission.
	StatusGranted Status = "granted"
	// StatusBlocked means the permission was previously denied permanently
	// and cannot be re-requested from within the app.
	StatusBlocked Status = "blocked"
	// StatusDenied means the user declined this request.
	StatusDenied Status = "denied"
)

// Contacts is the permission gating address-book access.
const Contacts = "contacts"

// PromptConfig carries the explanatory prompt shown with a request. The copy
// is supplied by the UI caller; this layer does not render it.
type PromptConfig struct {
	Title          string `json:"title"`
	Message        string `json:"message"`
	ButtonPositive string `json:"button_positive"`
	ButtonNegative string `json:"button_negative"`
}

// Gateway requests OS-level capabilities. Request may also fail outright,
// e.g. when the OS dialog cannot be shown; callers treat that the same as a
// blocked permission and redirect to system settings.
type Gateway interface {
	Request(ctx context.Context, permissionID string, prompt PromptConfig) (Status, error)
	OpenSystemSettings(ctx context.Context) error
}

// LogGateway is the default Gateway for headless deployments: it records
// each request and reports it granted. A device shell wires the real OS
// bridge in its place.
type LogGateway struct{}

// NewLogGateway creates the default gateway.
func NewLogGateway() *LogGateway {
	return &LogGateway{}
}

// Request implements Gateway.
func (g *LogGateway) Request(ctx context.Context, permissionID string, prompt PromptConfig) (Status, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	logrus.WithField("permission", permissionID).Debug("permission request granted by default gateway")
	return StatusGranted, nil
}

// OpenSystemSettings implements Gateway.
func (g *LogGateway) OpenSystemSettings(ctx context.Context) error {
	logrus.Debug("system settings redirect requested")
	return ctx.Err()
}
