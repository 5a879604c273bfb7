package core

import (
	"bytes"
	"context"
	"testing"
)

func TestPBKDF2_Derive_Deterministic(t *testing.T) {
	hasher := NewPBKDF2()
	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}

	first, err := hasher.Derive(context.Background(), []byte("p4ss"), salt)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	second, err := hasher.Derive(context.Background(), []byte("p4ss"), salt)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different keys")
	}
}

func TestPBKDF2_Derive_DistinctPasswords(t *testing.T) {
	hasher := NewPBKDF2()
	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}

	a, err := hasher.Derive(context.Background(), []byte("p4ss"), salt)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	b, err := hasher.Derive(context.Background(), []byte("p4sS"), salt)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	if bytes.Equal(a, b) {
		t.Error("different passwords derived the same key")
	}
}

func TestPBKDF2_Derive_DistinctSalts(t *testing.T) {
	hasher := NewPBKDF2()

	saltA, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}
	saltB, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}
	if bytes.Equal(saltA, saltB) {
		t.Fatal("two generated salts came out identical")
	}

	a, err := hasher.Derive(context.Background(), []byte("p4ss"), saltA)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	b, err := hasher.Derive(context.Background(), []byte("p4ss"), saltB)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	if bytes.Equal(a, b) {
		t.Error("same password over different salts derived the same key")
	}
}

func TestPBKDF2_Parameters(t *testing.T) {
	hasher := NewPBKDF2()

	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}
	if len(salt) != 16 {
		t.Errorf("salt length = %d, want 16", len(salt))
	}

	key, err := hasher.Derive(context.Background(), []byte("p4ss"), salt)
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	if len(key) != 64 {
		t.Errorf("derived key length = %d, want 64", len(key))
	}
}

func TestPBKDF2_Derive_CancelledContext(t *testing.T) {
	hasher := NewPBKDF2()
	salt, err := hasher.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := hasher.Derive(ctx, []byte("p4ss"), salt); err == nil {
		t.Error("Derive() with cancelled context should fail")
	}
}
