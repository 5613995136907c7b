package services

import "testing"

func TestGenerateEditToken(t *testing.T) {
	token, err := GenerateEditToken()
	if err != nil {
		t.Fatalf("GenerateEditToken: %v", err)
	}
	if len(token) != 64 {
		t.Errorf("token length = %d, want 64", len(token))
	}
	for _, c := range token {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Fatalf("token contains non-hex character %q", c)
		}
	}

	other, err := GenerateEditToken()
	if err != nil {
		t.Fatalf("GenerateEditToken: %v", err)
	}
	if token == other {
		t.Error("two generated tokens are identical")
	}
}

func TestTokensEqual(t *testing.T) {
	if !TokensEqual("abc123", "abc123") {
		t.Error("identical tokens reported unequal")
	}
	if TokensEqual("abc123", "abc124") {
		t.Error("different tokens reported equal")
	}
	if TokensEqual("abc", "abc123") {
		t.Error("prefix reported equal to full token")
	}
	if TokensEqual("", "abc123") {
		t.Error("empty token reported equal")
	}
}
