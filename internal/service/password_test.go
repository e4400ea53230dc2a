package service

import (
	"strings"
	"testing"
)

func TestHashPassword_Roundtrip(t *testing.T) {
	hashed, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(hashed, "$argon2id$") {
		t.Fatalf("unexpected encoding: %s", hashed)
	}

	if !VerifyPassword("correct horse battery staple", hashed) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong password", hashed) {
		t.Error("wrong password accepted")
	}
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	a, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password must not collide")
	}
	if !VerifyPassword("hunter22", a) || !VerifyPassword("hunter22", b) {
		t.Error("both hashes must verify")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"not a hash",
		"$argon2id$v=19$m=65536,t=1,p=4$only-four-parts",
		"$argon2i$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
	} {
		if VerifyPassword("anything", encoded) {
			t.Errorf("malformed hash %q verified", encoded)
		}
	}
}
