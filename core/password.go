package core

import (
	"context"
	"crypto/sha512"
	"runtime"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/sync/semaphore"

	"github.com/latchauth/latch/pkg/crypto"
)

// PasswordHasher turns raw passwords into comparable derived keys.
//
// Derive must be deterministic: identical (rawPassword, salt) inputs always
// yield identical output, which is what makes verification possible.
type PasswordHasher interface {
	Derive(ctx context.Context, rawPassword, salt []byte) ([]byte, error)
	GenerateSalt() ([]byte, error)
}

// Ensure PBKDF2 implements PasswordHasher
var _ PasswordHasher = (*PBKDF2)(nil)

// PBKDF2 derives password keys with PBKDF2-SHA512. The iteration count is
// deliberately high so a single derivation costs real CPU, which is what
// makes offline brute force expensive.
type PBKDF2 struct {
	Iterations int // time cost
	KeyLength  int // length of the derived key in bytes
	SaltLength int // length of generated salts. Ignored during Derive

	workers *semaphore.Weighted
}

// NewPBKDF2 returns a hasher with the fixed production parameters: 10,000
// iterations of SHA-512 producing 64-byte keys over 16-byte salts.
func NewPBKDF2() *PBKDF2 {
	return &PBKDF2{
		Iterations: 10000,
		KeyLength:  64,
		SaltLength: crypto.SaltLength,
		workers:    semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// GenerateSalt returns a fresh random salt.
func (h *PBKDF2) GenerateSalt() ([]byte, error) {
	return crypto.RandomBytes(h.SaltLength)
}

// Derive computes the key for (rawPassword, salt).
//
// Derivation is CPU-bound, so it runs on its own goroutine behind a weighted
// semaphore sized to GOMAXPROCS: a burst of logins queues here instead of
// pinning every scheduler thread. The caller regains control only once the
// key is ready or its context is done.
func (h *PBKDF2) Derive(ctx context.Context, rawPassword, salt []byte) ([]byte, error) {
	if h.workers != nil {
		if err := h.workers.Acquire(ctx, 1); err != nil {
			return nil, err
		}
	}

	out := make(chan []byte, 1)
	go func() {
		if h.workers != nil {
			defer h.workers.Release(1)
		}
		out <- pbkdf2.Key(rawPassword, salt, h.Iterations, h.KeyLength, sha512.New)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case key := <-out:
		return key, nil
	}
}
