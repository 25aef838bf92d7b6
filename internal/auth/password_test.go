package auth

import "testing"

func TestPasswordIsStrong(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"Meets every rule", "Strong_pass1", true},
		{"Every special character accepted", "Aa1_@$#%&xyz", true},
		{"Exactly minimum length", "Aa1_aaaaaa", true},
		{"Too short", "Aa1_aaaaa", false},
		{"No uppercase", "weak_pass_1", false},
		{"No lowercase", "WEAK_PASS_1", false},
		{"No digit", "Weak_password", false},
		{"No special character", "Weakpassword1", false},
		{"Contains a space", "Weak_pass 12", false},
		{"Contains a tab", "Weak_pass\t12", false},
		{"Unlisted special character only", "Weakpassword1!", false},
		{"Empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PasswordIsStrong(tt.password); got != tt.want {
				t.Errorf("PasswordIsStrong(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Strong_pass1")
	if err != nil {
		t.Fatalf("error hashing password: %v", err)
	}

	if !CheckPassword("Strong_pass1", hash) {
		t.Error("expected the original password to verify")
	}
	if CheckPassword("Wrong_pass12", hash) {
		t.Error("expected a different password to fail verification")
	}
}
