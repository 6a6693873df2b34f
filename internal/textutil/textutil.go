package textutil

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
)

// namePattern isolates the alphabetic core of a token so that leading and
// trailing punctuation (daggers, parentheses, commas) survive title-casing.
var namePattern = regexp.MustCompile(`^([^A-Za-z]*)([A-Za-z']+)(.*)$`)

// NormalizeName title-cases a raw name while preserving short all-caps
// tokens such as characteristic abbreviations (WS, BS, Fel) and any
// punctuation attached to a token.
func NormalizeName(raw string) string {
	tokens := strings.Fields(raw)
	normalized := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if IsAllUpper(token) && len(token) <= 3 {
			normalized = append(normalized, token)
			continue
		}
		if m := namePattern.FindStringSubmatch(token); m != nil {
			normalized = append(normalized, m[1]+capitalize(m[2])+m[3])
		} else {
			normalized = append(normalized, capitalize(token))
		}
	}
	return strings.Join(normalized, " ")
}

// TitleWords capitalizes the first letter of each whitespace-separated word.
func TitleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// IsAllUpper reports whether s contains at least one letter and no
// lowercase letters. Digits and punctuation are ignored, so headings such
// as "FROZEN 2" still qualify.
func IsAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

// IsAlpha reports whether s is non-empty and consists only of letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Hash computes a SHA-256 hex hash of a string for deduplication.
func Hash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
