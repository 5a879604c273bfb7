package core

import (
	"context"
	"fmt"

	"github.com/latchauth/latch/pkg/crypto"
)

// SessionManager issues, rotates and clears the opaque session keys bound to
// accounts.
//
// It never validates keys arriving on live requests; that belongs to the
// transport's session middleware, which this manager only feeds keys to.
type SessionManager struct {
	config SessionConfig
	store  CredentialStore
}

func NewSessionManager(config SessionConfig, store CredentialStore) *SessionManager {
	if config.KeyLength <= 0 {
		config.KeyLength = crypto.SessionKeyLength
	}
	return &SessionManager{
		config: config,
		store:  store,
	}
}

// Issue generates a fresh high-entropy session key, persists it on the
// account and returns it.
func (sm *SessionManager) Issue(ctx context.Context, account *Account) (string, error) {
	key, err := crypto.NewSessionKey(sm.config.KeyLength)
	if err != nil {
		return "", &InternalError{Op: "session: generate key", Err: err}
	}

	account.SessionKey = key
	if err := sm.store.Save(ctx, account); err != nil {
		return "", fmt.Errorf("session: persist key: %w", err)
	}

	return key, nil
}

// Rotate re-keys the account's session. It shares Issue's generation path
// and exists as the explicit re-key operation, e.g. forcing other devices
// out after a credential change.
func (sm *SessionManager) Rotate(ctx context.Context, account *Account) (string, error) {
	return sm.Issue(ctx, account)
}

// Clear revokes the account's current session key by replacing it with a
// fresh value no caller has ever observed. Replacing rather than nulling
// guarantees the old key can never validate again.
func (sm *SessionManager) Clear(ctx context.Context, account *Account) error {
	_, err := sm.Issue(ctx, account)
	return err
}

// PublicView projects the only account fields allowed past the trust
// boundary.
func (sm *SessionManager) PublicView(account *Account) *PublicSession {
	return &PublicSession{
		ID:         account.ID,
		SessionKey: account.SessionKey,
	}
}

// Matches reports whether the caller-presented session corresponds to the
// account, comparing keys in constant time.
func (sm *SessionManager) Matches(account *Account, session *PublicSession) bool {
	if account == nil || session == nil {
		return false
	}
	if session.ID != account.ID {
		return false
	}
	return crypto.KeysEqual(session.SessionKey, account.SessionKey)
}
