package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ovisslabs/oviss-backend/pkg/config"
	"github.com/ovisslabs/oviss-backend/pkg/enums"
	pkgerrors "github.com/ovisslabs/oviss-backend/pkg/errors"
	"github.com/ovisslabs/oviss-backend/pkg/ident"
	"github.com/ovisslabs/oviss-backend/pkg/kv"
	"github.com/ovisslabs/oviss-backend/pkg/logger"
	"github.com/ovisslabs/oviss-backend/pkg/models"
	"github.com/shopspring/decimal"
)

const storageKey = "user"

// State is the session phase of the single active visitor.
type State string

const (
	StateLoggedOut              State = "logged_out"
	StateAwaitingVerification   State = "awaiting_verification"
	StateAccountCreationPending State = "account_creation_pending"
	StateLoggedIn               State = "logged_in"
)

// LoginResult reports where a login attempt landed.
type LoginResult struct {
	LoggedIn        bool         `json:"loggedIn"`
	AccountRequired bool         `json:"accountRequired"`
	User            *models.User `json:"user,omitempty"`
}

// CreateAccountInput carries the profile fields collected at sign-up.
type CreateAccountInput struct {
	Name   string
	DOB    string
	Gender enums.Gender
	Phone  string
	Email  string
}

// ProfileUpdate carries optional profile edits; nil fields stay untouched.
type ProfileUpdate struct {
	Name          *string
	DOB           *string
	Gender        *enums.Gender
	Phone         *string
	Email         *string
	ProfilePicRef *string
}

// ManagerParams wires session dependencies.
type ManagerParams struct {
	Store  *kv.Store
	IDs    ident.Generator
	Logger *logger.Logger
	Auth   config.AuthConfig
	// StartingCredit is granted to every new account.
	StartingCredit decimal.Decimal
}

// Manager drives the session state machine:
//
//	LoggedOut -> AwaitingVerification -> LoggedIn                    (stored identifier match)
//	LoggedOut -> AwaitingVerification -> AccountCreationPending
//	          -> LoggedIn                                            (no stored match)
//	LoggedIn  -> LoggedOut                                           (explicit logout)
//
// The stored profile survives logout so the appointment store and
// notification log reattach on the next login.
type Manager struct {
	mu       sync.Mutex
	state    State
	current  *models.User
	stored   *models.User
	cooldown Countdown

	store          *kv.Store
	ids            ident.Generator
	logg           *logger.Logger
	auth           config.AuthConfig
	startingCredit decimal.Decimal
}

// NewManager restores any stored profile and starts logged out.
func NewManager(ctx context.Context, params ManagerParams) (*Manager, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session storage required")
	}
	if params.IDs == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "identifier generator required")
	}
	if params.Auth.VerificationCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "verification code not configured")
	}

	m := &Manager{
		state:          StateLoggedOut,
		store:          params.Store,
		ids:            params.IDs,
		logg:           params.Logger,
		auth:           params.Auth,
		startingCredit: params.StartingCredit,
	}

	var stored models.User
	err := params.Store.GetJSON(ctx, storageKey, &stored)
	switch {
	case err == nil:
		m.stored = &stored
	case errors.Is(err, kv.ErrNotFound):
		// fresh device, no profile yet
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore user")
	}

	return m, nil
}

// State returns the current session phase.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns the logged-in user, or nil.
func (m *Manager) Current() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	snapshot := *m.current
	return &snapshot
}

// RequestCode mocks sending a verification code to the identifier and arms
// the resend cooldown. No delivery happens; the accepted code is fixed.
func (m *Manager) RequestCode(ctx context.Context, identifier string, mode enums.AuthMode) error {
	if strings.TrimSpace(identifier) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "identifier is required")
	}
	if !mode.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "auth mode must be phone or email")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateLoggedIn {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "already logged in")
	}
	if m.cooldown.Active() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "code already sent, wait for the resend cooldown").
			WithDetails(map[string]any{"retryAfterSeconds": int(m.cooldown.Remaining().Seconds()) + 1})
	}

	m.state = StateAwaitingVerification
	m.cooldown.Start(m.auth.ResendCooldown, nil)

	if m.logg != nil {
		logCtx := m.logg.WithFields(ctx, map[string]any{"mode": mode})
		m.logg.Info(logCtx, "verification code issued (mock delivery)")
	}
	return nil
}

// Verify checks the submitted code. A mismatch keeps the session in
// AwaitingVerification so the visitor can retry; a match logs in against the
// stored profile, or asks for account creation when no identifier matches.
func (m *Manager) Verify(ctx context.Context, identifier string, mode enums.AuthMode, code string) (LoginResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAwaitingVerification {
		return LoginResult{}, pkgerrors.New(pkgerrors.CodeStateConflict, "no verification in progress")
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(m.auth.VerificationCode)) != 1 {
		return LoginResult{}, pkgerrors.New(pkgerrors.CodeVerification, "invalid verification code")
	}

	m.cooldown.Cancel()
	return m.loginLocked(ctx, identifier, mode), nil
}

func (m *Manager) loginLocked(ctx context.Context, identifier string, mode enums.AuthMode) LoginResult {
	if m.stored != nil && identifierMatches(m.stored, identifier, mode) {
		m.state = StateLoggedIn
		snapshot := *m.stored
		m.current = &snapshot
		if m.logg != nil {
			m.logg.Info(m.logg.WithUserID(ctx, snapshot.ID), "returning user logged in")
		}
		out := snapshot
		return LoginResult{LoggedIn: true, User: &out}
	}

	m.state = StateAccountCreationPending
	if m.logg != nil {
		m.logg.Info(ctx, "no stored identifier match, account creation required")
	}
	return LoginResult{AccountRequired: true}
}

// CreateAccount creates the user with the default starting credit and logs
// the session in.
func (m *Manager) CreateAccount(ctx context.Context, input CreateAccountInput) (*models.User, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	gender := input.Gender
	if gender == "" {
		gender = enums.GenderOther
	}
	if !gender.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid gender")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateLoggedIn {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "already logged in")
	}

	user := models.User{
		ID:            m.ids.NewID(),
		Name:          input.Name,
		DOB:           input.DOB,
		Gender:        gender,
		Phone:         input.Phone,
		Email:         input.Email,
		CreditBalance: m.startingCredit,
	}

	m.stored = &user
	snapshot := user
	m.current = &snapshot
	m.state = StateLoggedIn
	m.cooldown.Cancel()
	m.persistLocked(ctx)

	if m.logg != nil {
		m.logg.Info(m.logg.WithUserID(ctx, user.ID), "account created")
	}
	out := user
	return &out, nil
}

// UpdateProfile applies the provided edits to the logged-in user.
func (m *Manager) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateLoggedIn || m.current == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "not logged in")
	}

	if update.Name != nil {
		if strings.TrimSpace(*update.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		m.current.Name = *update.Name
	}
	if update.DOB != nil {
		m.current.DOB = *update.DOB
	}
	if update.Gender != nil {
		if !update.Gender.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid gender")
		}
		m.current.Gender = *update.Gender
	}
	if update.Phone != nil {
		m.current.Phone = *update.Phone
	}
	if update.Email != nil {
		m.current.Email = *update.Email
	}
	if update.ProfilePicRef != nil {
		m.current.ProfilePicRef = update.ProfilePicRef
	}

	snapshot := *m.current
	m.stored = &snapshot
	m.persistLocked(ctx)

	out := snapshot
	return &out, nil
}

// Logout clears the current user. The stored profile, appointment store and
// notification log all stay on device and reattach on the next login.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil && m.logg != nil {
		m.logg.Info(m.logg.WithUserID(ctx, m.current.ID), "logged out")
	}
	m.current = nil
	m.state = StateLoggedOut
	m.cooldown.Cancel()
}

// ResendRemaining reports the time left on the resend cooldown.
func (m *Manager) ResendRemaining() time.Duration {
	return m.cooldown.Remaining()
}

func (m *Manager) persistLocked(ctx context.Context) {
	if err := m.store.PutJSON(ctx, storageKey, m.stored); err != nil && m.logg != nil {
		m.logg.Warn(m.logg.WithField(ctx, "error", err.Error()), "user persist failed, in-memory state remains authoritative")
	}
}

func identifierMatches(user *models.User, identifier string, mode enums.AuthMode) bool {
	switch mode {
	case enums.AuthModePhone:
		return user.Phone != "" && user.Phone == identifier
	case enums.AuthModeEmail:
		return user.Email != "" && user.Email == identifier
	default:
		return false
	}
}
