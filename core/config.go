package core

import (
	"log/slog"

	"github.com/latchauth/latch/pkg/crypto"
)

// SessionConfig tunes session-key generation.
type SessionConfig struct {
	// KeyLength is the number of random bytes behind each session key.
	KeyLength int
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		KeyLength: crypto.SessionKeyLength,
	}
}

// Config wires the auth core together. Every dependency is passed in here at
// startup; there is no package-level mutable state.
type Config struct {
	Store CredentialStore

	// Optional config
	Hasher   PasswordHasher
	Sessions *SessionConfig
	Logger   *slog.Logger
}
