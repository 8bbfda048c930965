package auth

import "testing"

func TestHashPassword(t *testing.T) {
	t.Run("verify accepts the original password", func(t *testing.T) {
		hash, salt, err := HashPassword("correct horse battery staple")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		if hash == "" || salt == "" {
			t.Fatal("hash and salt must be non-empty")
		}
		if !VerifyPassword("correct horse battery staple", hash, salt) {
			t.Error("VerifyPassword rejected the original password")
		}
	})

	t.Run("verify rejects a wrong password", func(t *testing.T) {
		hash, salt, _ := HashPassword("hunter2hunter2")
		if VerifyPassword("hunter2hunter3", hash, salt) {
			t.Error("VerifyPassword accepted a wrong password")
		}
	})

	t.Run("same password never shares hash or salt", func(t *testing.T) {
		hash1, salt1, _ := HashPassword("shared-password")
		hash2, salt2, _ := HashPassword("shared-password")
		if salt1 == salt2 {
			t.Error("two accounts got the same salt")
		}
		if hash1 == hash2 {
			t.Error("two accounts got the same hash")
		}
	})

	t.Run("corrupt stored material fails closed", func(t *testing.T) {
		hash, salt, _ := HashPassword("some-password")
		if VerifyPassword("some-password", hash, "not-hex!") {
			t.Error("corrupt salt accepted")
		}
		if VerifyPassword("some-password", "not-hex!", salt) {
			t.Error("corrupt hash accepted")
		}
	})
}
