package core

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/latchauth/latch/pkg/crypto"
)

// Result is the outcome code handed to the transport. It matches the wire
// convention where 0 means nothing happened and 1 means the operation ran.
type Result int

const (
	// ResultAlreadyAuthenticated is the no-op success returned when a
	// caller with a live session tries to register or log in again.
	ResultAlreadyAuthenticated Result = 0

	// ResultOK is a completed operation.
	ResultOK Result = 1
)

// AuthResult carries the account and its public projection back to the
// transport. Session is what belongs in the client-held cookie; nothing
// else on Account should cross that boundary.
type AuthResult struct {
	Result  Result
	Account *Account
	Session *PublicSession
}

// RegisterInput contains the data needed to register a new account.
type RegisterInput struct {
	Email    string
	Name     string // optional; defaults to the email local-part
	Password string
}

// LoginInput contains the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// ProfileUpdate contains optional profile edits. Empty fields are ignored.
type ProfileUpdate struct {
	Email     string
	Name      string
	Biography string
}

// AuthService orchestrates register, login, logout and profile updates over
// a CredentialStore, a PasswordHasher and a SessionManager. It is the only
// component with multi-step business logic; each call is a short transaction
// and no error is ever silently continued past.
type AuthService struct {
	store    CredentialStore
	hasher   PasswordHasher
	sessions *SessionManager
	log      *slog.Logger

	// decoySalt feeds the burned derivation on the unknown-email login
	// branch, keeping its cost equal to a real password check.
	decoySalt []byte
}

func NewAuthService(store CredentialStore, hasher PasswordHasher, sessions *SessionManager, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}

	decoySalt, err := hasher.GenerateSalt()
	if err != nil {
		decoySalt = make([]byte, crypto.SaltLength)
	}

	return &AuthService{
		store:     store,
		hasher:    hasher,
		sessions:  sessions,
		log:       log,
		decoySalt: decoySalt,
	}
}

// Register creates an account with a fresh salt and derived hash, then
// issues its first session key.
//
// A caller that already holds a live session gets a no-op success back;
// registration never re-runs on top of an authenticated context.
func (s *AuthService) Register(ctx context.Context, active *PublicSession, input RegisterInput) (*AuthResult, error) {
	if active != nil && active.SessionKey != "" {
		return &AuthResult{Result: ResultAlreadyAuthenticated}, nil
	}

	if !ValidEmail(input.Email) {
		return nil, ErrEmailInvalid
	}
	if input.Password == "" {
		return nil, ErrPasswordRequired
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, s.internal("register: generate salt", err)
	}
	hash, err := s.hasher.Derive(ctx, []byte(input.Password), salt)
	if err != nil {
		return nil, s.internal("register: derive hash", err)
	}

	account := &Account{
		Email:        input.Email,
		Name:         input.Name,
		PasswordSalt: salt,
		PasswordHash: hash,
	}

	// The store enforces email/name uniqueness atomically: of two
	// concurrent registers for the same email, exactly one gets past this
	// call. Its errors propagate unchanged.
	if err := s.store.Create(ctx, account); err != nil {
		return nil, err
	}

	if _, err := s.sessions.Issue(ctx, account); err != nil {
		return nil, err
	}

	return &AuthResult{
		Result:  ResultOK,
		Account: account,
		Session: s.sessions.PublicView(account),
	}, nil
}

// Login authenticates by email and password. On success the session key is
// rotated, never reused, so a key fixated before authentication dies with it.
func (s *AuthService) Login(ctx context.Context, active *PublicSession, input LoginInput) (*AuthResult, error) {
	if active != nil && active.SessionKey != "" {
		return &AuthResult{Result: ResultAlreadyAuthenticated}, nil
	}

	account, err := s.store.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			// Burn one derivation so an unknown email costs the same
			// as a wrong password; otherwise response timing reveals
			// which addresses have accounts.
			if _, derr := s.hasher.Derive(ctx, []byte(input.Password), s.decoySalt); derr != nil {
				return nil, s.internal("login: decoy derive", derr)
			}
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: find account: %w", err)
	}

	hash, err := s.hasher.Derive(ctx, []byte(input.Password), account.PasswordSalt)
	if err != nil {
		return nil, s.internal("login: derive hash", err)
	}
	if subtle.ConstantTimeCompare(hash, account.PasswordHash) != 1 {
		return nil, ErrInvalidCredentials
	}

	if _, err := s.sessions.Rotate(ctx, account); err != nil {
		return nil, err
	}

	return &AuthResult{
		Result:  ResultOK,
		Account: account,
		Session: s.sessions.PublicView(account),
	}, nil
}

// Logout revokes the account's session if the caller's presented session
// matches it. The returned bool tells the transport whether to drop its side
// of the session; on false nothing was touched and the transport must keep
// its state as-is.
func (s *AuthService) Logout(ctx context.Context, active *PublicSession, account *Account) (bool, error) {
	if account == nil || !s.sessions.Matches(account, active) {
		return false, nil
	}

	if err := s.sessions.Clear(ctx, account); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateProfile applies optional email, name and biography edits. Empty
// fields are ignored; if nothing changed the call is a no-op success.
// Validation happens here and only here, so the format rules cannot drift
// between layers.
func (s *AuthService) UpdateProfile(ctx context.Context, account *Account, update ProfileUpdate) error {
	changed := false

	if update.Email != "" {
		if !ValidEmail(update.Email) {
			return ErrEmailInvalid
		}
		account.Email = update.Email
		changed = true
	}

	if update.Name != "" {
		if !ValidName(update.Name) {
			return ErrNameInvalid
		}
		account.Name = update.Name
		changed = true
	}

	if update.Biography != "" {
		account.Biography = update.Biography
		changed = true
	}

	if !changed {
		return nil
	}
	return s.store.Save(ctx, account)
}

// ChangePassword re-salts and re-derives the account's credential, then
// rotates the session key so holders of the old key are signed out. The
// caller must present the account's active session.
//
// The hash write and the session-key write are two separate persisted
// writes; the store only guarantees atomicity per save.
func (s *AuthService) ChangePassword(ctx context.Context, active *PublicSession, account *Account, rawPassword string) error {
	if !s.sessions.Matches(account, active) {
		return ErrNotAuthorized
	}
	if rawPassword == "" {
		return ErrPasswordRequired
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return s.internal("change password: generate salt", err)
	}
	hash, err := s.hasher.Derive(ctx, []byte(rawPassword), salt)
	if err != nil {
		return s.internal("change password: derive hash", err)
	}

	account.PasswordSalt = salt
	account.PasswordHash = hash
	if err := s.store.Save(ctx, account); err != nil {
		return fmt.Errorf("change password: persist credential: %w", err)
	}

	_, err = s.sessions.Rotate(ctx, account)
	return err
}

func (s *AuthService) internal(op string, err error) error {
	s.log.Error("auth core failure", "op", op, "err", err)
	return &InternalError{Op: op, Err: err}
}
