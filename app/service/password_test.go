package service_test

import (
	"strings"
	"testing"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/service"
)

func TestPasswordHasherRoundTrip(t *testing.T) {
	hasher := service.NewPasswordHasher()

	digest, err := hasher.Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if digest == "Sup3rSecret!" {
		t.Fatal("digest must not equal the plaintext")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Fatalf("expected a bcrypt digest, got %q", digest)
	}

	if !hasher.Verify("Sup3rSecret!", digest) {
		t.Fatal("expected verification to succeed for the original password")
	}
	if hasher.Verify("WrongPassword1!", digest) {
		t.Fatal("expected verification to fail for a different password")
	}
}

func TestPasswordHasherSalts(t *testing.T) {
	hasher := service.NewPasswordHasher()

	first, err := hasher.Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	second, err := hasher.Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if first == second {
		t.Fatal("expected two hashes of the same password to differ")
	}
}

func TestPasswordHasherVerifyMalformedDigest(t *testing.T) {
	hasher := service.NewPasswordHasher()
	if hasher.Verify("anything", "not-a-bcrypt-digest") {
		t.Fatal("expected verification against garbage digest to fail")
	}
}
