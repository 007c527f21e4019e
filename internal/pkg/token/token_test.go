package token

import "testing"

func TestNewProducesValidTokens(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := New()
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}
		if !Valid(tok) {
			t.Fatalf("New produced invalid token %q", tok)
		}
		if seen[tok] {
			t.Fatalf("New produced duplicate token %q", tok)
		}
		seen[tok] = true
	}
}

func TestNewCoversAlphabetEvenly(t *testing.T) {
	counts := make(map[byte]int)
	for i := 0; i < 500; i++ {
		tok, err := New()
		if err != nil {
			t.Fatalf("New returned error: %v", err)
		}
		for j := 0; j < len(tok); j++ {
			counts[tok[j]]++
		}
	}
	// 6000 draws over 36 characters; a character never appearing means
	// the sampling is broken, not bad luck.
	for i := 0; i < len(alphabet); i++ {
		if counts[alphabet[i]] == 0 {
			t.Errorf("character %q never drawn", alphabet[i])
		}
	}
}

func TestValidRejectsMalformedInput(t *testing.T) {
	for _, bad := range []string{
		"",
		"short",
		"abc123def45",    // 11 chars
		"abc123def4567",  // 13 chars
		"abc123def45/",   // path character
		"../../../../et", // traversal attempt
		"abc123def45.",
		"abc 23def456",
	} {
		if Valid(bad) {
			t.Errorf("Valid(%q) = true, want false", bad)
		}
	}
}

func TestValidAcceptsWellFormedTokens(t *testing.T) {
	for _, good := range []string{"abc123def456", "ABC123DEF456", "000000000000"} {
		if !Valid(good) {
			t.Errorf("Valid(%q) = false, want true", good)
		}
	}
}
