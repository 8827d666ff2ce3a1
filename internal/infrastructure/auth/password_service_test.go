package auth

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("Str0ng!pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Str0ng!pass" {
		t.Fatal("hash equals the plain password")
	}

	if !svc.Verify(hash, "Str0ng!pass") {
		t.Error("correct password rejected")
	}
	if svc.Verify(hash, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestPasswordHashesAreSalted(t *testing.T) {
	svc := NewPasswordService()

	h1, err := svc.Hash("Str0ng!pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := svc.Hash("Str0ng!pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same password are identical")
	}
}
