package pgx

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/latchauth/latch/core"
)

// Querier is the slice of pgxpool.Pool the store needs. pgxmock satisfies it
// in tests.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a PostgreSQL-backed core.CredentialStore.
//
// Expected schema:
//
//	CREATE TABLE accounts (
//	    id            text PRIMARY KEY,
//	    email         text NOT NULL,
//	    name          text NOT NULL,
//	    biography     text NOT NULL DEFAULT '',
//	    image_name    text NOT NULL DEFAULT '',
//	    password_hash bytea NOT NULL,
//	    password_salt bytea NOT NULL,
//	    session_key   text NOT NULL DEFAULT '',
//	    created_at    timestamptz NOT NULL DEFAULT now(),
//	    updated_at    timestamptz NOT NULL DEFAULT now()
//	);
//	CREATE UNIQUE INDEX accounts_email_key ON accounts (email);
//	CREATE UNIQUE INDEX accounts_name_key ON accounts (name);
//
// The unique indexes are what resolve concurrent registers for the same
// email: exactly one insert wins, the other comes back as a ConflictError.
type Store struct {
	db Querier
}

var _ core.CredentialStore = (*Store)(nil)

func New(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// NewWithQuerier is intended for tests.
func NewWithQuerier(db Querier) *Store {
	return &Store{db: db}
}

const accountColumns = `id, email, name, biography, image_name, password_hash, password_salt, session_key, created_at, updated_at`

func (s *Store) Create(ctx context.Context, account *core.Account) error {
	if account.Name == "" {
		account.Name = core.DefaultName(account.Email)
	}
	account.ID = uuid.NewString()

	query := `INSERT INTO accounts (id, email, name, biography, image_name, password_hash, password_salt, session_key)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING created_at, updated_at`

	err := s.db.QueryRow(ctx, query,
		account.ID, account.Email, account.Name, account.Biography, account.ImageName,
		account.PasswordHash, account.PasswordSalt, account.SessionKey,
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return mapConflict(err)
	}
	return nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*core.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return scanAccount(s.db.QueryRow(ctx, query, email))
}

func (s *Store) FindByID(ctx context.Context, id string) (*core.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(s.db.QueryRow(ctx, query, id))
}

func (s *Store) Save(ctx context.Context, account *core.Account) error {
	query := `UPDATE accounts
	          SET email = $1, name = $2, biography = $3, image_name = $4,
	              password_hash = $5, password_salt = $6, session_key = $7, updated_at = now()
	          WHERE id = $8
	          RETURNING updated_at`

	err := s.db.QueryRow(ctx, query,
		account.Email, account.Name, account.Biography, account.ImageName,
		account.PasswordHash, account.PasswordSalt, account.SessionKey, account.ID,
	).Scan(&account.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return core.ErrAccountNotFound
		}
		return mapConflict(err)
	}
	return nil
}

func scanAccount(row pgx.Row) (*core.Account, error) {
	account := &core.Account{}
	err := row.Scan(
		&account.ID, &account.Email, &account.Name, &account.Biography, &account.ImageName,
		&account.PasswordHash, &account.PasswordSalt, &account.SessionKey,
		&account.CreatedAt, &account.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// mapConflict turns a unique violation into the field-level conflict the
// core expects, keyed by constraint name.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "accounts_email_key":
			return &core.ConflictError{Field: "email"}
		case "accounts_name_key":
			return &core.ConflictError{Field: "name"}
		default:
			return &core.ConflictError{Field: "account"}
		}
	}
	return err
}
