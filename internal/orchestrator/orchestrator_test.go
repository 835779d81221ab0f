package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "wallet-settings/internal/errors"
	"wallet-settings/internal/models"
	"wallet-settings/internal/permissions"
	"wallet-settings/internal/rates"
	"wallet-settings/internal/settings"
	"wallet-settings/internal/store"

	"github.com/shopspring/decimal"
)

const testAccountID = "acct-1"

// recordingStore wraps the memory store, failing writes whose key contains a
// configured substring and recording every published event kind in order.
type recordingStore struct {
	store.Store
	mu         sync.Mutex
	failKeys   []string
	eventKinds []settings.EventKind
}

func newRecordingStore() *recordingStore {
	return &recordingStore{Store: store.NewMemoryStore()}
}

func (s *recordingStore) failOn(substr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failKeys = append(s.failKeys, substr)
}

func (s *recordingStore) shouldFail(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, substr := range s.failKeys {
		if strings.Contains(key, substr) {
			return true
		}
	}
	return false
}

func (s *recordingStore) Set(key string, value []byte, ttl time.Duration) error {
	if s.shouldFail(key) {
		return errors.New("store unavailable")
	}
	return s.Store.Set(key, value, ttl)
}

func (s *recordingStore) HSet(key string, values map[string]any) error {
	if s.shouldFail(key) {
		return errors.New("store unavailable")
	}
	return s.Store.HSet(key, values)
}

func (s *recordingStore) Publish(channel string, message []byte) error {
	var event settings.StateEvent
	if err := json.Unmarshal(message, &event); err == nil {
		s.mu.Lock()
		s.eventKinds = append(s.eventKinds, event.Kind)
		s.mu.Unlock()
	}
	return s.Store.Publish(channel, message)
}

func (s *recordingStore) kinds() []settings.EventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]settings.EventKind, len(s.eventKinds))
	copy(out, s.eventKinds)
	return out
}

// fakeAuthority implements AccountAuthority with scripted failures.
type fakeAuthority struct {
	changePinErr   error
	groundTruthPin bool
	password       string
	touchIDErr     error
	otpResetDate   *time.Time
	cancelCalled   bool
	disableCalled  bool
	touchIDEnables []bool
}

func (f *fakeAuthority) ChangePin(ctx context.Context, accountID string, enableLogin bool) error {
	return f.changePinErr
}

func (f *fakeAuthority) PinLoginGroundTruth(ctx context.Context, accountID string) (bool, error) {
	return f.groundTruthPin, nil
}

func (f *fakeAuthority) ValidatePassword(ctx context.Context, accountID, password string) (bool, error) {
	return password == f.password, nil
}

func (f *fakeAuthority) EnableTouchID(ctx context.Context, accountID string) error {
	f.touchIDEnables = append(f.touchIDEnables, true)
	return f.touchIDErr
}

func (f *fakeAuthority) DisableTouchID(ctx context.Context, accountID string) error {
	f.touchIDEnables = append(f.touchIDEnables, false)
	return f.touchIDErr
}

func (f *fakeAuthority) OTPResetDate(ctx context.Context, accountID string) (*time.Time, error) {
	return f.otpResetDate, nil
}

func (f *fakeAuthority) CancelOTPReset(ctx context.Context, accountID string) error {
	f.cancelCalled = true
	return nil
}

func (f *fakeAuthority) DisableOTP(ctx context.Context, accountID string) error {
	f.disableCalled = true
	return nil
}

// fakeKeeper implements WalletKeeper over an in-memory wallet list.
type fakeKeeper struct {
	mu      sync.Mutex
	keys    []models.WalletKey
	failIDs map[string]bool
}

func (f *fakeKeeper) ListRestorable(ctx context.Context, accountID string) ([]models.WalletKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.WalletKey
	for _, k := range f.keys {
		if k.AccountID == accountID && (k.Archived || k.Deleted) {
			out = append(out, k)
		}
	}
	return out, nil
}

func (f *fakeKeeper) ChangeWalletState(ctx context.Context, walletID string, archived, deleted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[walletID] {
		return errors.New("wallet service unavailable")
	}
	for i := range f.keys {
		if f.keys[i].WalletID == walletID {
			f.keys[i].Archived = archived
			f.keys[i].Deleted = deleted
			return nil
		}
	}
	return errors.New("unknown wallet")
}

// fakeGateway records permission interactions.
type fakeGateway struct {
	status         permissions.Status
	requestErr     error
	requests       int
	openedSettings int
}

func (f *fakeGateway) Request(ctx context.Context, permissionID string, prompt permissions.PromptConfig) (permissions.Status, error) {
	f.requests++
	return f.status, f.requestErr
}

func (f *fakeGateway) OpenSystemSettings(ctx context.Context) error {
	f.openedSettings++
	return nil
}

// fakeRegistrar counts re-registrations and reports the context state each
// call observed.
type fakeRegistrar struct {
	mu    sync.Mutex
	calls int
	seen  chan error
}

func (f *fakeRegistrar) Reregister(ctx context.Context, force bool) error {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	select {
	case f.seen <- ctx.Err():
	default:
	}
	return nil
}

// recordingNavigator records navigation requests.
type recordingNavigator struct {
	mu      sync.Mutex
	screens []string
}

func (n *recordingNavigator) NavigateTo(screen string, params map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.screens = append(n.screens, screen)
}

type fixture struct {
	orch      *Orchestrator
	store     *recordingStore
	authority *fakeAuthority
	keeper    *fakeKeeper
	gateway   *fakeGateway
	registrar *fakeRegistrar
	navigator *recordingNavigator
}

func newFixture(t *testing.T, snap models.SettingsSnapshot, rateTable map[rates.Pair]decimal.Decimal) *fixture {
	t.Helper()

	st := newRecordingStore()
	cache := settings.NewCache(snap, st)
	authority := &fakeAuthority{password: "hunter22"}
	keeper := &fakeKeeper{failIDs: map[string]bool{}}
	gateway := &fakeGateway{status: permissions.StatusGranted}
	registrar := &fakeRegistrar{seen: make(chan error, 1)}
	navigator := &recordingNavigator{}

	refresher := rates.NewRefresher(rates.StaticSource{Snap: rates.Snapshot{
		Rates:   rateTable,
		TakenAt: time.Now(),
	}})

	orch := New(Deps{
		Cache:     cache,
		Store:     settings.NewAccountStore(st),
		Authority: authority,
		Wallets:   keeper,
		Gateway:   gateway,
		Registrar: registrar,
		Rates:     refresher,
		Navigator: navigator,
	})

	return &fixture{
		orch:      orch,
		store:     st,
		authority: authority,
		keeper:    keeper,
		gateway:   gateway,
		registrar: registrar,
		navigator: navigator,
	}
}

func baseSnapshot() models.SettingsSnapshot {
	snap := models.DefaultSnapshot(testAccountID)
	return snap
}

func TestSwapPluginMutualExclusivity(t *testing.T) {
	f := newFixture(t, baseSnapshot(), nil)
	ctx := context.Background()

	steps := []struct {
		name string
		op   func() error
	}{
		{"set id", func() error { return f.orch.SetPreferredSwapPluginID(ctx, "changelly") }},
		{"set type", func() error { return f.orch.SetPreferredSwapPluginType(ctx, models.SwapPluginTypeFixed) }},
		{"set id again", func() error { return f.orch.SetPreferredSwapPluginID(ctx, "thorchain") }},
	}
	for _, step := range steps {
		if err := step.op(); err != nil {
			t.Fatalf("%s: unexpected error: %v", step.name, err)
		}
		snap := f.orch.Snapshot()
		if snap.PreferredSwapPluginID != "" && snap.PreferredSwapPluginType != "" {
			t.Fatalf("%s: both swap preferences set: id=%q type=%q",
				step.name, snap.PreferredSwapPluginID, snap.PreferredSwapPluginType)
		}
	}

	snap := f.orch.Snapshot()
	if snap.PreferredSwapPluginID != "thorchain" {
		t.Errorf("PreferredSwapPluginID = %q, want thorchain", snap.PreferredSwapPluginID)
	}
	if snap.PreferredSwapPluginType != "" {
		t.Errorf("PreferredSwapPluginType = %q, want empty", snap.PreferredSwapPluginType)
	}
}

func TestFiatCascadeConversion(t *testing.T) {
	snap := baseSnapshot()
	snap.DefaultFiatCode = "USD"
	snap.SpendingLimits.Transaction = models.TransactionLimit{
		Amount:    decimal.RequireFromString("100.00"),
		IsEnabled: true,
	}

	f := newFixture(t, snap, map[rates.Pair]decimal.Decimal{
		{From: "USD", To: "EUR"}: decimal.RequireFromString("0.90"),
	})

	result, err := f.orch.SetDefaultFiat(context.Background(), "EUR")
	if err != nil {
		t.Fatalf("SetDefaultFiat: %v", err)
	}
	if !result.CodeCommitted || !result.LimitsCommitted {
		t.Fatalf("expected both phases committed, got %+v", result)
	}

	got := f.orch.Snapshot()
	if got.DefaultFiatCode != "EUR" {
		t.Errorf("DefaultFiatCode = %q, want EUR", got.DefaultFiatCode)
	}
	want := decimal.RequireFromString("90.00")
	if !got.SpendingLimits.Transaction.Amount.Equal(want) {
		t.Errorf("transaction amount = %s, want %s", got.SpendingLimits.Transaction.Amount, want)
	}
	if !got.SpendingLimits.Transaction.IsEnabled {
		t.Error("transaction limit enabled flag lost in cascade")
	}

	// The code commit must precede the limits commit in the event stream.
	kinds := f.store.kinds()
	codeAt, limitsAt := -1, -1
	for i, k := range kinds {
		switch k {
		case settings.EventDefaultFiatUpdated:
			codeAt = i
		case settings.EventSpendingLimitsUpdated:
			limitsAt = i
		}
	}
	if codeAt == -1 || limitsAt == -1 || codeAt > limitsAt {
		t.Errorf("commit order wrong: kinds=%v", kinds)
	}
}

func TestFiatCascadePhaseOneFailure(t *testing.T) {
	snap := baseSnapshot()
	f := newFixture(t, snap, nil)
	f.store.failOn("default_fiat")

	result, err := f.orch.SetDefaultFiat(context.Background(), "EUR")
	if err == nil {
		t.Fatal("expected error")
	}
	if result.CodeCommitted {
		t.Error("code committed despite persist failure")
	}
	if got := f.orch.Snapshot().DefaultFiatCode; got != "USD" {
		t.Errorf("DefaultFiatCode = %q, want USD (unchanged)", got)
	}
}

func TestFiatCascadeInconsistencyWindow(t *testing.T) {
	snap := baseSnapshot()
	snap.SpendingLimits.Transaction.Amount = decimal.RequireFromString("50")
	f := newFixture(t, snap, map[rates.Pair]decimal.Decimal{
		{From: "USD", To: "GBP"}: decimal.RequireFromString("0.80"),
	})
	f.store.failOn("spending_limits")

	result, err := f.orch.SetDefaultFiat(context.Background(), "GBP")
	if err == nil {
		t.Fatal("expected error from spending-limit persist failure")
	}
	if !result.CodeCommitted {
		t.Error("currency code commit should stand")
	}
	if result.LimitsCommitted {
		t.Error("limits must not be committed after persist failure")
	}

	got := f.orch.Snapshot()
	if got.DefaultFiatCode != "GBP" {
		t.Errorf("DefaultFiatCode = %q, want GBP", got.DefaultFiatCode)
	}
	// The window: amount still carries the USD value.
	if !got.SpendingLimits.Transaction.Amount.Equal(decimal.RequireFromString("50")) {
		t.Errorf("amount = %s, want unchanged 50", got.SpendingLimits.Transaction.Amount)
	}
}

func TestFiatCascadeSideEffectsOutliveCaller(t *testing.T) {
	snap := baseSnapshot()
	f := newFixture(t, snap, map[rates.Pair]decimal.Decimal{
		{From: "USD", To: "EUR"}: decimal.RequireFromString("0.90"),
	})

	// The request context is already cancelled, as it is once a handler has
	// written its response.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.orch.SetDefaultFiat(ctx, "EUR"); err != nil {
		t.Fatalf("SetDefaultFiat: %v", err)
	}

	select {
	case err := <-f.registrar.seen:
		if err != nil {
			t.Errorf("re-registration saw a dead context: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notification re-registration never ran")
	}
}

func TestPinLoginReadRepair(t *testing.T) {
	f := newFixture(t, baseSnapshot(), nil)
	f.authority.changePinErr = errors.New("authorization server unreachable")
	f.authority.groundTruthPin = false

	err := f.orch.SetPinLoginEnabled(context.Background(), true)
	if err == nil {
		t.Fatal("expected surfaced error")
	}
	if got := f.orch.Snapshot().PinLoginEnabled; got {
		t.Error("PinLoginEnabled = true after read-repair, want false")
	}
}

func TestPinLoginReadRepairKeepsTrueGroundTruth(t *testing.T) {
	snap := baseSnapshot()
	snap.PinLoginEnabled = true
	f := newFixture(t, snap, nil)
	f.authority.changePinErr = errors.New("authorization server unreachable")
	f.authority.groundTruthPin = true

	// Disabling fails; the identity records still show PIN enabled.
	if err := f.orch.SetPinLoginEnabled(context.Background(), false); err == nil {
		t.Fatal("expected surfaced error")
	}
	if got := f.orch.Snapshot().PinLoginEnabled; !got {
		t.Error("PinLoginEnabled = false, want true from ground truth")
	}
}

func TestPinLoginSuccessKeepsOptimisticValue(t *testing.T) {
	f := newFixture(t, baseSnapshot(), nil)

	if err := f.orch.SetPinLoginEnabled(context.Background(), true); err != nil {
		t.Fatalf("SetPinLoginEnabled: %v", err)
	}
	if !f.orch.Snapshot().PinLoginEnabled {
		t.Error("PinLoginEnabled = false, want true")
	}
}

func TestDeveloperModeIdempotent(t *testing.T) {
	f := newFixture(t, baseSnapshot(), nil)
	ctx := context.Background()

	if err := f.orch.SetDeveloperMode(ctx, true); err != nil {
		t.Fatalf("first call: %v", err)
	}
	first := f.orch.Snapshot()
	if err := f.orch.SetDeveloperMode(ctx, true); err != nil {
		t.Fatalf("second call: %v", err)
	}
	second := f.orch.Snapshot()

	if first.DeveloperModeOn != second.DeveloperModeOn || !second.DeveloperModeOn {
		t.Errorf("developer mode not idempotent: first=%v second=%v",
			first.DeveloperModeOn, second.DeveloperModeOn)
	}
}

func TestSimpleToggleFailureLeavesCache(t *testing.T) {
	tests := []struct {
		name    string
		failKey string
		op      func(f *fixture) error
		read    func(s models.SettingsSnapshot) bool
	}{
		{
			name:    "developer mode",
			failKey: "developer_mode",
			op:      func(f *fixture) error { return f.orch.SetDeveloperMode(context.Background(), true) },
			read:    func(s models.SettingsSnapshot) bool { return s.DeveloperModeOn },
		},
		{
			name:    "spam filter",
			failKey: "spam_filter",
			op:      func(f *fixture) error { return f.orch.SetSpamFilter(context.Background(), false) },
			read:    func(s models.SettingsSnapshot) bool { return !s.SpamFilterOn },
		},
		{
			name:    "auto logout",
			failKey: "auto_logout",
			op:      func(f *fixture) error { return f.orch.SetAutoLogoutTimeSeconds(context.Background(), 60) },
			read:    func(s models.SettingsSnapshot) bool { return s.AutoLogoutSeconds == 60 },
		},
		{
			name:    "swap plugin",
			failKey: "swap_plugin",
			op:      func(f *fixture) error { return f.orch.SetPreferredSwapPluginID(context.Background(), "changelly") },
			read:    func(s models.SettingsSnapshot) bool { return s.PreferredSwapPluginID != "" },
		},
		{
			name:    "denomination",
			failKey: "denominations",
			op: func(f *fixture) error {
				key := models.DenominationKey{PluginID: "dogecoin", CurrencyCode: "DOGE"}
				return f.orch.SetDenomination(context.Background(), key, models.Denomination{Name: "mDOGE", Multiplier: "100000"})
			},
			read: func(s models.SettingsSnapshot) bool { return len(s.DenominationByAsset) != 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, baseSnapshot(), nil)
			f.store.failOn(tt.failKey)
			if err := tt.op(f); err == nil {
				t.Fatal("expected persistence error")
			}
			if tt.read(f.orch.Snapshot()) {
				t.Error("cache mutated despite persist failure")
			}
		})
	}
}

func TestContactsPermissionDecoupling(t *testing.T) {
	t.Run("disable never touches gateway", func(t *testing.T) {
		f := newFixture(t, baseSnapshot(), nil)
		if err := f.orch.SetContactsPermission(context.Background(), false, permissions.PromptConfig{}); err != nil {
			t.Fatalf("SetContactsPermission: %v", err)
		}
		if f.gateway.requests != 0 {
			t.Errorf("gateway requests = %d, want 0", f.gateway.requests)
		}
		if f.orch.Snapshot().ContactsPermissionOn {
			t.Error("ContactsPermissionOn = true, want false")
		}
	})

	t.Run("blocked still commits and redirects", func(t *testing.T) {
		f := newFixture(t, baseSnapshot(), nil)
		f.gateway.status = permissions.StatusBlocked

		if err := f.orch.SetContactsPermission(context.Background(), true, permissions.PromptConfig{}); err != nil {
			t.Fatalf("SetContactsPermission: %v", err)
		}
		if !f.orch.Snapshot().ContactsPermissionOn {
			t.Error("ContactsPermissionOn = false, want true despite blocked permission")
		}
		if f.gateway.openedSettings != 1 {
			t.Errorf("openedSettings = %d, want 1", f.gateway.openedSettings)
		}
	})

	t.Run("request failure redirects", func(t *testing.T) {
		f := newFixture(t, baseSnapshot(), nil)
		f.gateway.requestErr = errors.New("dialog unavailable")

		if err := f.orch.SetContactsPermission(context.Background(), true, permissions.PromptConfig{}); err != nil {
			t.Fatalf("SetContactsPermission: %v", err)
		}
		if !f.orch.Snapshot().ContactsPermissionOn {
			t.Error("ContactsPermissionOn = false, want true")
		}
		if f.gateway.openedSettings != 1 {
			t.Errorf("openedSettings = %d, want 1", f.gateway.openedSettings)
		}
	})
}

func TestTouchIDOptimisticCommit(t *testing.T) {
	f := newFixture(t, baseSnapshot(), nil)
	f.authority.touchIDErr = errors.New("enrollment failed")

	err := f.orch.SetTouchIDEnabled(context.Background(), true)
	if err == nil {
		t.Fatal("expected enrollment error")
	}
	// The optimistic commit stands; there is no rollback path.
	if !f.orch.Snapshot().TouchIDEnabled {
		t.Error("TouchIDEnabled = false, want true (optimistic)")
	}
}

func TestRestoreWallets(t *testing.T) {
	f := newFixture(t, baseSnapshot(), nil)
	for i := 0; i < 3; i++ {
		f.keeper.keys = append(f.keeper.keys, models.WalletKey{
			WalletID:  fmt.Sprintf("wallet-%d", i),
			AccountID: testAccountID,
			Archived:  i%2 == 0,
			Deleted:   i%2 == 1,
		})
	}
	// A healthy wallet must not be touched.
	f.keeper.keys = append(f.keeper.keys, models.WalletKey{
		WalletID:  "wallet-active",
		AccountID: testAccountID,
	})

	report, err := f.orch.RestoreWallets(context.Background())
	if err != nil {
		t.Fatalf("RestoreWallets: %v", err)
	}
	if report.Examined != 3 || report.Restored != 3 {
		t.Errorf("report = %+v, want 3 examined, 3 restored", report)
	}
	for _, k := range f.keeper.keys {
		if k.Archived || k.Deleted {
			t.Errorf("wallet %s still flagged: archived=%v deleted=%v", k.WalletID, k.Archived, k.Deleted)
		}
	}
	if len(f.navigator.screens) != 1 || f.navigator.screens[0] != ScreenWalletList {
		t.Errorf("navigation = %v, want exactly one walletList", f.navigator.screens)
	}
}

func TestRestoreWalletsPartialFailure(t *testing.T) {
	f := newFixture(t, baseSnapshot(), nil)
	f.keeper.keys = []models.WalletKey{
		{WalletID: "w1", AccountID: testAccountID, Archived: true},
		{WalletID: "w2", AccountID: testAccountID, Deleted: true},
	}
	f.keeper.failIDs["w2"] = true

	report, err := f.orch.RestoreWallets(context.Background())
	var bulkErr *apperrors.PartialBulkError
	if !errors.As(err, &bulkErr) {
		t.Fatalf("err = %v, want PartialBulkError", err)
	}
	if bulkErr.FailedCount() != 1 {
		t.Errorf("FailedCount = %d, want 1", bulkErr.FailedCount())
	}
	if report.Restored != 1 {
		t.Errorf("Restored = %d, want 1 (successes kept)", report.Restored)
	}
	// The join still completes and navigation fires.
	if len(f.navigator.screens) != 1 {
		t.Errorf("navigation = %v, want one entry", f.navigator.screens)
	}
}

func TestResolveOTPReset(t *testing.T) {
	resetAt := time.Now().Add(24 * time.Hour)

	tests := []struct {
		name        string
		resetDate   *time.Time
		choice      OTPChoice
		wantState   OTPState
		wantErr     error
		wantCancel  bool
		wantDisable bool
	}{
		{name: "no pending reset", resetDate: nil, choice: OTPChoiceKeep, wantErr: apperrors.ErrNoPendingReset},
		{name: "keep cancels reset", resetDate: &resetAt, choice: OTPChoiceKeep, wantState: OTPStateActive2FA, wantCancel: true},
		{name: "disable turns otp off", resetDate: &resetAt, choice: OTPChoiceDisable, wantState: OTPStateNoOTP, wantDisable: true},
		{name: "dismiss keeps reminding", resetDate: &resetAt, choice: OTPChoiceDismiss, wantState: OTPStateResetPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, baseSnapshot(), nil)
			f.authority.otpResetDate = tt.resetDate

			state, err := f.orch.ResolveOTPReset(context.Background(), tt.choice)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveOTPReset: %v", err)
			}
			if state != tt.wantState {
				t.Errorf("state = %s, want %s", state, tt.wantState)
			}
			if f.authority.cancelCalled != tt.wantCancel {
				t.Errorf("cancelCalled = %v, want %v", f.authority.cancelCalled, tt.wantCancel)
			}
			if f.authority.disableCalled != tt.wantDisable {
				t.Errorf("disableCalled = %v, want %v", f.authority.disableCalled, tt.wantDisable)
			}
		})
	}
}

func TestUnlockSettings(t *testing.T) {
	f := newFixture(t, baseSnapshot(), nil)

	if err := f.orch.UnlockSettings(context.Background(), "wrong"); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
	if !f.orch.Snapshot().SettingsLocked {
		t.Error("settings unlocked by a failed validation")
	}

	if err := f.orch.UnlockSettings(context.Background(), "hunter22"); err != nil {
		t.Fatalf("UnlockSettings: %v", err)
	}
	if f.orch.Snapshot().SettingsLocked {
		t.Error("SettingsLocked = true after successful unlock")
	}
}

func TestSetDenomination(t *testing.T) {
	f := newFixture(t, baseSnapshot(), nil)
	ctx := context.Background()
	denom := models.Denomination{Name: "mDOGE", Multiplier: "100000"}

	key := models.DenominationKey{PluginID: "dogecoin", CurrencyCode: "DOGE"}
	if err := f.orch.SetDenomination(ctx, key, denom); err != nil {
		t.Fatalf("SetDenomination: %v", err)
	}
	if got := f.orch.Snapshot().DenominationByAsset[key]; got.Name != "mDOGE" {
		t.Errorf("denomination = %+v, want mDOGE", got)
	}

	intrinsic := models.DenominationKey{PluginID: "bitcoin", CurrencyCode: "BTC"}
	err := f.orch.SetDenomination(ctx, intrinsic, denom)
	if !errors.Is(err, apperrors.ErrIntrinsicAsset) {
		t.Errorf("err = %v, want ErrIntrinsicAsset", err)
	}
}

func TestUpdateOneSettingNoStoreWrite(t *testing.T) {
	f := newFixture(t, baseSnapshot(), nil)
	locked := false
	f.orch.UpdateOneSetting(settings.Patch{SettingsLocked: &locked})

	if f.orch.Snapshot().SettingsLocked {
		t.Error("SettingsLocked = true, want false after merge")
	}
	// No key may have been written for this operation.
	exists, err := f.store.Exists("account:" + testAccountID + ":settings:auto_logout_seconds")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Error("merge operation wrote to the store")
	}
}
