package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if strings.Contains(hash, "secret1") {
		t.Fatal("hash contains the plaintext")
	}

	if !CheckPassword("secret1", hash) {
		t.Fatal("correct password did not verify")
	}
	if CheckPassword("secret2", hash) {
		t.Fatal("wrong password verified")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatal("two hashes of the same password are identical, salt is not per-call")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	if CheckPassword("anything", "not-a-bcrypt-hash") {
		t.Fatal("malformed hash verified")
	}
	if CheckPassword("anything", "") {
		t.Fatal("empty hash verified")
	}
}
