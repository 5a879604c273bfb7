// Package latch is an embeddable account-authentication core: credential
// storage, salted password derivation, opaque session keys and the
// register/login/logout state machine. It defines no transport of its own;
// any HTTP/RPC/CLI layer drives it through AuthService and stores the
// PublicSession it hands back.
package latch

import (
	"github.com/latchauth/latch/core"
)

// interfaces
type (
	CredentialStore = core.CredentialStore
	PasswordHasher  = core.PasswordHasher
)

// structs
type (
	Config        = core.Config
	SessionConfig = core.SessionConfig

	AuthService    = core.AuthService
	SessionManager = core.SessionManager
)

type (
	Account       = core.Account
	PublicSession = core.PublicSession

	RegisterInput = core.RegisterInput
	LoginInput    = core.LoginInput
	ProfileUpdate = core.ProfileUpdate
	AuthResult    = core.AuthResult
	Result        = core.Result
)

const (
	ResultAlreadyAuthenticated = core.ResultAlreadyAuthenticated
	ResultOK                   = core.ResultOK
)

// Constructors & helpers (convenience re-exports)
var (
	NewPBKDF2            = core.NewPBKDF2
	DefaultSessionConfig = core.DefaultSessionConfig
	DefaultName          = core.DefaultName
	StatusCode           = core.StatusCode
)

var (
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrNotAuthorized      = core.ErrNotAuthorized
	ErrAccountNotFound    = core.ErrAccountNotFound
)

var (
	ErrEmailInvalid     = core.ErrEmailInvalid
	ErrNameInvalid      = core.ErrNameInvalid
	ErrPasswordRequired = core.ErrPasswordRequired
)

var (
	ErrStoreRequired = core.ErrStoreRequired
)

// Latch bundles the wired auth core.
type Latch struct {
	Auth     *core.AuthService
	Sessions *core.SessionManager
	Hasher   core.PasswordHasher
}

func New(config Config) (*Latch, error) {
	if config.Store == nil {
		return nil, ErrStoreRequired
	}

	// Set Defaults

	hasher := config.Hasher
	if hasher == nil {
		hasher = core.NewPBKDF2()
	}

	sessionConfig := config.Sessions
	if sessionConfig == nil {
		defaults := core.DefaultSessionConfig()
		sessionConfig = &defaults
	}

	sessions := core.NewSessionManager(*sessionConfig, config.Store)
	auth := core.NewAuthService(config.Store, hasher, sessions, config.Logger)

	return &Latch{
		Auth:     auth,
		Sessions: sessions,
		Hasher:   hasher,
	}, nil
}
