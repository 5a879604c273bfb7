package core

import "context"

// CredentialStore persists accounts and enforces email/name uniqueness.
//
// Create fills in the account's ID and timestamps and applies DefaultName
// when no name was given. Uniqueness violations surface as *ConflictError
// (atomically: of two concurrent creates for the same email, exactly one
// wins) and a missing account as ErrAccountNotFound, never as generic
// failures.
//
// Save persists every mutable field, including PasswordHash, PasswordSalt
// and SessionKey; password changes need no dedicated store operation.
type CredentialStore interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	Save(ctx context.Context, account *Account) error
}
