// Package container provides a dependency injection container for the application.
package container

import (
	"wallet-settings/internal/app"
	"wallet-settings/internal/config"
	"wallet-settings/internal/db"
	"wallet-settings/internal/handler"
	"wallet-settings/internal/identity"
	"wallet-settings/internal/notify"
	"wallet-settings/internal/permissions"
	"wallet-settings/internal/rates"
	"wallet-settings/internal/router"
	"wallet-settings/internal/session"
	"wallet-settings/internal/settings"
	"wallet-settings/internal/store"
	"wallet-settings/internal/wallets"

	"github.com/shopspring/decimal"
	"go.uber.org/dig"
)

// BuildContainer creates a new dependency injection container and provides all the application's services.
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Infrastructure Services
	if err := container.Provide(config.NewManager); err != nil {
		return nil, err
	}
	if err := container.Provide(db.NewDB); err != nil {
		return nil, err
	}
	if err := container.Provide(store.NewStore); err != nil {
		return nil, err
	}

	// Domain Services
	if err := container.Provide(settings.NewAccountStore); err != nil {
		return nil, err
	}
	if err := container.Provide(identity.NewService); err != nil {
		return nil, err
	}
	if err := container.Provide(wallets.NewKeeper); err != nil {
		return nil, err
	}
	if err := container.Provide(func() rates.Source {
		// An empty bootstrap snapshot; deployments provide a live source.
		return rates.StaticSource{Snap: rates.Snapshot{Rates: map[rates.Pair]decimal.Decimal{}}}
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(rates.NewRefresher); err != nil {
		return nil, err
	}
	if err := container.Provide(func() permissions.Gateway {
		return permissions.NewLogGateway()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func() notify.Registrar {
		return notify.NewLogRegistrar()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(session.NewManager); err != nil {
		return nil, err
	}

	// Handlers & Router
	if err := container.Provide(handler.NewServer); err != nil {
		return nil, err
	}
	if err := container.Provide(router.NewRouter); err != nil {
		return nil, err
	}

	// Application Layer
	if err := container.Provide(app.NewApp); err != nil {
		return nil, err
	}

	return container, nil
}
