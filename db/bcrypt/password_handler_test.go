package bcrypt

import "testing"

func TestHashAndIsCorrect(t *testing.T) {
	ph := NewPasswordHandler()
	password := "top_s3cr3t!"
	hashedPassword, err := ph.Hash(password)
	if err != nil {
		t.Fatalf("unwanted error: %v", err)
	}
	if string(hashedPassword) == password {
		t.Error("wanted the hash to differ from the password")
	}
	isCorrectTests := []struct {
		password string
		want     bool
	}{
		{password, true},
		{"top_s3cr3t", false},
		{"", false},
	}
	for i, test := range isCorrectTests {
		got, err := ph.IsCorrect(hashedPassword, test.password)
		switch {
		case err != nil:
			t.Errorf("Test %v: unwanted error: %v", i, err)
		case test.want != got:
			t.Errorf("Test %v: wanted IsCorrect=%v for password %q, got %v", i, test.want, test.password, got)
		}
	}
}

func TestIsCorrectMalformedHash(t *testing.T) {
	ph := NewPasswordHandler()
	if _, err := ph.IsCorrect([]byte("not-a-bcrypt-hash"), "top_s3cr3t!"); err == nil {
		t.Error("wanted error for a malformed hash")
	}
}
