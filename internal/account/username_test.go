package account

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	if got := Normalize("  ada  "); got != "ada" {
		t.Errorf("Normalize(%q) = %q, want %q", "  ada  ", got, "ada")
	}
	if got := Normalize("ada"); got != "ada" {
		t.Errorf("Normalize(%q) = %q, want %q", "ada", got, "ada")
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"simple", "ada", nil},
		{"with digits", "player1", nil},
		{"with hyphen and underscore", "a-b_c", nil},
		{"minimum length", "ab", nil},
		{"maximum length", strings.Repeat("a", MaxNameLen), nil},
		{"empty", "", ErrNameLength},
		{"one character", "a", ErrNameLength},
		{"too long", strings.Repeat("a", MaxNameLen+1), ErrNameLength},
		{"inner space", "ada lovelace", ErrNameCharset},
		{"unicode", "адa", ErrNameCharset},
		{"punctuation", "ada!", ErrNameCharset},
		{"banned word", "admin", ErrNameBanned},
		{"banned substring", "kite_admin_1", ErrNameBanned},
		{"banned mixed case", "RootUser", ErrNameBanned},
		{"banned bot", "chatbot", ErrNameBanned},
		{"banned hidden substring", "latest", ErrNameBanned},
		{"banned profanity", "damnit", ErrNameBanned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
