// Package parser turns loosely formatted rulebook plaintext into typed
// entries. Every parser here is a pure function over its input text: column
// boundaries are recovered from whitespace runs with per-section heuristics
// rather than fixed widths, and a section either parses fully or is
// rejected with a ParseError.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"lexicanum/internal/entry"
)

// ParseError reports text that could not be parsed into structured data.
// When caused by an inner failure (e.g. a bad integer literal) the cause is
// wrapped rather than swallowed.
type ParseError struct {
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// Errorf creates a ParseError with a formatted message.
func Errorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Options carries optional provenance and contextual metadata into a
// parser call. Career and Rank are advisory enrichment supplied by section
// auto-discovery; parsers attach them to emitted entries when relevant and
// never require them.
type Options struct {
	Page   int
	Source string
	Career string
	Rank   string
}

// Func is the common signature shared by all section parsers.
type Func func(text string, opts Options) ([]entry.Entry, error)

// Adapt lifts a typed parser into a Func.
func Adapt[E entry.Entry](fn func(string, Options) ([]E, error)) Func {
	return func(text string, opts Options) ([]entry.Entry, error) {
		typed, err := fn(text, opts)
		if err != nil {
			return nil, err
		}
		out := make([]entry.Entry, len(typed))
		for i, e := range typed {
			out[i] = e
		}
		return out, nil
	}
}

// splitLines splits text into lines with trailing whitespace removed,
// tolerating any line ending convention.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return lines
}

// nonBlankLines returns the trimmed-right, non-blank lines of text.
func nonBlankLines(text string) []string {
	var out []string
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// tokenizeRow splits a table row into whitespace-delimited tokens.
func tokenizeRow(row string) ([]string, error) {
	tokens := strings.Fields(row)
	if len(tokens) == 0 {
		return nil, Errorf("encountered an empty table row")
	}
	return tokens, nil
}

var prereqSeparator = regexp.MustCompile(`[,;]`)

// splitPrereqList splits prerequisite text on commas/semicolons, trimming
// trailing periods and dropping placeholder dashes.
func splitPrereqList(text string) []string {
	var out []string
	for _, item := range prereqSeparator.Split(text, -1) {
		item = strings.TrimSpace(item)
		item = strings.TrimRight(item, ".")
		item = strings.TrimSpace(item)
		if item == "" || item == "—" {
			continue
		}
		out = append(out, item)
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
