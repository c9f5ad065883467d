package authutil_test

import (
	"strings"
	"testing"

	"github.com/branchout-app/branchout/internal/app/system/authutil"
)

func TestHashPassword(t *testing.T) {
	hash, err := authutil.HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", hash)
	}
}

func TestHashPassword_RandomSalt(t *testing.T) {
	h1, err := authutil.HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	h2, err := authutil.HashPassword("same input")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if h1 == h2 {
		t.Error("expected different hashes for the same input")
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := authutil.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !authutil.CheckPassword(hash, "hunter2") {
		t.Error("expected matching password to verify")
	}
	if authutil.CheckPassword(hash, "hunter3") {
		t.Error("expected mismatched password to fail")
	}
}
