// Package account validates player names before they reach the
// leaderboard.
package account

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Allowed username length, in characters.
const (
	MinNameLen = 2
	MaxNameLen = 20
)

var (
	ErrNameLength  = fmt.Errorf("username must be %d-%d characters", MinNameLen, MaxNameLen)
	ErrNameCharset = errors.New("username may only contain letters, digits, '-' and '_'")
	ErrNameBanned  = errors.New("username contains a banned word")
)

var nameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Substrings rejected anywhere inside a name, case-insensitively:
// reserved identifiers plus a short profanity list.
var bannedSubstrings = []string{
	"admin",
	"root",
	"test",
	"null",
	"undefined",
	"bot",
	"fuck",
	"shit",
	"damn",
}

// Normalize strips the surrounding whitespace a terminal prompt tends
// to pick up. Call it before ValidateName.
func Normalize(name string) string {
	return strings.TrimSpace(name)
}

// ValidateName reports whether a name is acceptable for the
// leaderboard. The returned errors are sentinels, comparable with
// errors.Is.
func ValidateName(name string) error {
	if len(name) < MinNameLen || len(name) > MaxNameLen {
		return ErrNameLength
	}
	if !nameRe.MatchString(name) {
		return ErrNameCharset
	}

	lower := strings.ToLower(name)
	for _, banned := range bannedSubstrings {
		if strings.Contains(lower, banned) {
			return ErrNameBanned
		}
	}

	return nil
}
