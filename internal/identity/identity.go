// Package identity manages the device's local identity records. These
// records are the ground truth for login capabilities: the settings cache
// must never contradict them.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wallet-settings/internal/models"
	"wallet-settings/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrUnknownAccount is returned when no local identity record matches the
// account.
var ErrUnknownAccount = errors.New("identity: unknown account")

// Service reads and mutates local identity records.
type Service struct {
	db *gorm.DB
}

// NewService creates an identity service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates a local identity record for an account. Called on first
// login on this device.
func (s *Service) Register(ctx context.Context, accountID, loginID, username, password string) (*models.LocalUser, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := models.LocalUser{
		LoginID:      loginID,
		AccountID:    accountID,
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create local user: %w", err)
	}
	return &user, nil
}

func (s *Service) userByAccount(ctx context.Context, accountID string) (*models.LocalUser, error) {
	var user models.LocalUser
	err := s.db.WithContext(ctx).Where("account_id = ?", accountID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAccount
		}
		return nil, fmt.Errorf("failed to look up local user: %w", err)
	}
	return &user, nil
}

// User returns the local identity record for an account.
func (s *Service) User(ctx context.Context, accountID string) (*models.LocalUser, error) {
	return s.userByAccount(ctx, accountID)
}

// ChangePin changes the account's PIN-login capability. This is the
// authorization change the PIN toggle confirms against.
func (s *Service) ChangePin(ctx context.Context, accountID string, enableLogin bool) error {
	user, err := s.userByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Model(user).Update("pin_login_enabled", enableLogin).Error
	if err != nil {
		return fmt.Errorf("failed to change pin login: %w", err)
	}
	return nil
}

// PinLoginGroundTruth scans the device's identity list for a record matching
// the account with PIN login actually enabled. This is the read-repair query
// the orchestrator uses after a failed ChangePin; it derives the true value
// rather than reverting to a remembered one.
func (s *Service) PinLoginGroundTruth(ctx context.Context, accountID string) (bool, error) {
	var users []models.LocalUser
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return false, fmt.Errorf("failed to scan local users: %w", err)
	}
	enabled := false
	for _, user := range users {
		if user.AccountID == accountID && user.PinLoginEnabled {
			enabled = true
		}
	}
	return enabled, nil
}

// ValidatePassword checks the supplied password against the local record.
// A wrong password is not an error; it returns false.
func (s *Service) ValidatePassword(ctx context.Context, accountID, password string) (bool, error) {
	user, err := s.userByAccount(ctx, accountID)
	if err != nil {
		return false, err
	}
	return utils.CheckPasswordHash(password, user.PasswordHash), nil
}

// EnableTouchID enrolls the account for biometric login.
func (s *Service) EnableTouchID(ctx context.Context, accountID string) error {
	return s.setTouchID(ctx, accountID, true)
}

// DisableTouchID removes the account's biometric enrollment.
func (s *Service) DisableTouchID(ctx context.Context, accountID string) error {
	return s.setTouchID(ctx, accountID, false)
}

func (s *Service) setTouchID(ctx context.Context, accountID string, enabled bool) error {
	user, err := s.userByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Model(user).Update("touch_id_enabled", enabled).Error
	if err != nil {
		return fmt.Errorf("failed to update touch id enrollment: %w", err)
	}
	return nil
}

// OTPResetDate returns the pending OTP reset time, or nil when no reset
// timer is active.
func (s *Service) OTPResetDate(ctx context.Context, accountID string) (*time.Time, error) {
	user, err := s.userByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return user.OTPResetDate, nil
}

// CancelOTPReset clears a pending OTP reset, keeping two-factor active.
func (s *Service) CancelOTPReset(ctx context.Context, accountID string) error {
	user, err := s.userByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Model(user).Update("otp_reset_date", nil).Error
	if err != nil {
		return fmt.Errorf("failed to cancel otp reset: %w", err)
	}
	logrus.WithField("account_id", accountID).Info("otp reset cancelled, two-factor kept")
	return nil
}

// DisableOTP turns two-factor off entirely and clears any pending reset.
func (s *Service) DisableOTP(ctx context.Context, accountID string) error {
	user, err := s.userByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	updates := map[string]any{"otp_enabled": false, "otp_reset_date": nil}
	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to disable otp: %w", err)
	}
	logrus.WithField("account_id", accountID).Info("otp disabled")
	return nil
}
