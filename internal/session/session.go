// Package session binds one authenticated account to its settings cache and
// orchestrator for the duration of a login.
package session

import (
	"context"
	"fmt"
	"sync"

	"wallet-settings/internal/config"
	apperrors "wallet-settings/internal/errors"
	"wallet-settings/internal/identity"
	"wallet-settings/internal/models"
	"wallet-settings/internal/notify"
	"wallet-settings/internal/orchestrator"
	"wallet-settings/internal/permissions"
	"wallet-settings/internal/rates"
	"wallet-settings/internal/settings"
	"wallet-settings/internal/store"
	"wallet-settings/internal/utils"
	"wallet-settings/internal/wallets"

	"github.com/sirupsen/logrus"
	"go.uber.org/dig"
)

// Session is one logged-in account's settings state. The cache lives exactly
// as long as the session.
type Session struct {
	Token        string
	AccountID    string
	Cache        *settings.Cache
	Orchestrator *orchestrator.Orchestrator
}

// ManagerParams defines the dependencies for the NewManager constructor.
type ManagerParams struct {
	dig.In
	Config    *config.Manager
	Store     store.Store
	Accounts  *settings.AccountStore
	Identity  *identity.Service
	Wallets   *wallets.Keeper
	Gateway   permissions.Gateway
	Registrar notify.Registrar
	Rates     *rates.Refresher
}

// Manager creates and tracks sessions. One session exists per login; logout
// discards the cache without persisting it.
type Manager struct {
	mu        sync.RWMutex
	byToken   map[string]*Session
	config    *config.Manager
	store     store.Store
	accounts  *settings.AccountStore
	identity  *identity.Service
	wallets   *wallets.Keeper
	gateway   permissions.Gateway
	registrar notify.Registrar
	rates     *rates.Refresher
}

// NewManager creates a session manager with dependencies injected by dig.
func NewManager(params ManagerParams) *Manager {
	return &Manager{
		byToken:   make(map[string]*Session),
		config:    params.Config,
		store:     params.Store,
		accounts:  params.Accounts,
		identity:  params.Identity,
		wallets:   params.Wallets,
		gateway:   params.Gateway,
		registrar: params.Registrar,
		rates:     params.Rates,
	}
}

// Login validates the password, hydrates a settings snapshot from the
// account store, and builds the session's orchestrator. Login capabilities
// in the snapshot come from the device's identity records, never from a
// cached copy.
func (m *Manager) Login(ctx context.Context, accountID, password string) (*Session, error) {
	valid, err := m.identity.ValidatePassword(ctx, accountID, password)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, apperrors.ErrValidationFailed
	}

	defaults := models.DefaultSnapshot(accountID)
	defaults.AutoLogoutSeconds = m.config.GetAutoLogoutDefaultSeconds()

	snap, err := m.accounts.Load(accountID, defaults)
	if err != nil {
		return nil, err
	}

	user, err := m.identity.User(ctx, accountID)
	if err != nil {
		return nil, err
	}
	snap.PinLoginEnabled = user.PinLoginEnabled
	snap.TouchIDEnabled = user.TouchIDEnabled

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	cache := settings.NewCache(snap, m.store)
	sess := &Session{
		Token:     token,
		AccountID: accountID,
		Cache:     cache,
		Orchestrator: orchestrator.New(orchestrator.Deps{
			Cache:     cache,
			Store:     m.accounts,
			Authority: m.identity,
			Wallets:   m.wallets,
			Gateway:   m.gateway,
			Registrar: m.registrar,
			Rates:     m.rates,
		}),
	}

	m.mu.Lock()
	m.byToken[sess.Token] = sess
	m.mu.Unlock()

	logrus.WithField("account_id", accountID).Info("session started")
	return sess, nil
}

// Get returns the session for a token.
func (m *Manager) Get(token string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.byToken[token]
	if !ok {
		return nil, apperrors.ErrNoSession
	}
	return sess, nil
}

// Logout discards the session and its cache.
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	sess, ok := m.byToken[token]
	if ok {
		delete(m.byToken, token)
	}
	m.mu.Unlock()

	if ok {
		logrus.WithField("account_id", sess.AccountID).Info("session ended")
	}
}
