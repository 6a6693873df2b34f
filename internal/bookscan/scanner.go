// Package bookscan discovers parseable sections in whole-book text without
// external hints. An ordered detector registry proposes section starts; for
// each hit the scanner probes growing line windows against the section's
// parser and keeps the largest window that still parses, then resumes past
// the claimed text so no two sections overlap.
package bookscan

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"lexicanum/internal/entry"
	"lexicanum/internal/parser"
	"lexicanum/internal/textutil"
)

// Scanner holds the detector registry. The zero value is not usable;
// construct with NewScanner.
type Scanner struct {
	detectors []Detector
}

// NewScanner creates a scanner with the default detector registry.
func NewScanner() *Scanner {
	return &Scanner{detectors: defaultDetectors()}
}

// Scan walks the text line by line, claims every section a detector can
// both locate and parse, and returns all collected entries. Per-window
// parse failures are expected and local; Scan itself fails only when the
// entire document yields nothing.
func (s *Scanner) Scan(text string, opts parser.Options) ([]entry.Entry, error) {
	lines := splitBookLines(text)
	var collected []entry.Entry

	idx := 0
	for idx < len(lines) {
		matched := false
		for di, detector := range s.detectors {
			start := detector.Start(lines, idx)
			if start < 0 {
				continue
			}
			stop := s.nextDetectorIndex(lines, start, di)
			if stop < 0 {
				stop = len(lines)
			}
			end, entries, err := s.probeWindow(detector, lines, start, stop, opts)
			if err != nil {
				return nil, err
			}
			if entries == nil {
				// False alarm: no window parsed.
				continue
			}
			log.Debug().
				Str("section", detector.Name).
				Int("start", start).
				Int("end", end).
				Int("entries", len(entries)).
				Msg("Claimed section")
			collected = append(collected, entries...)
			idx = end
			matched = true
			break
		}
		if !matched {
			idx++
		}
	}

	if len(collected) == 0 {
		return nil, parser.Errorf("no recognizable sections were found in the supplied text")
	}
	return collected, nil
}

// nextDetectorIndex finds the first index after start where any other
// detector would fire, bounding the current section's window.
func (s *Scanner) nextDetectorIndex(lines []string, start, ignore int) int {
	for idx := start + 1; idx < len(lines); idx++ {
		for di := range s.detectors {
			if di == ignore {
				continue
			}
			if result := s.detectors[di].Start(lines, idx); result >= 0 && result != start {
				return idx
			}
		}
	}
	return -1
}

// probeWindow tries candidate window end-points from start+3 up to the
// bound and returns the last one that parses. Later, larger windows win;
// each probe re-parses from scratch. Returns a nil entry slice when no
// window parses at all.
func (s *Scanner) probeWindow(detector Detector, lines []string, start, stop int, opts parser.Options) (int, []entry.Entry, error) {
	switch detector.Name {
	case "characteristic-advances":
		if career := careerFromTableHeader(lines, start); career != "" {
			opts.Career = career
		}
	case "advances":
		if rank := rankFromContext(lines, start); rank != "" {
			opts.Rank = rank
		}
		// Advance tables usually trail a characteristic table that names
		// the career.
		for i := start - 1; i >= 0 && i > start-100; i-- {
			if career := careerFromTableHeader(lines, i); career != "" {
				opts.Career = career
				break
			}
		}
	}

	upperBound := min(len(lines), stop, start+detector.MaxLines)
	lastEnd := -1
	var lastEntries []entry.Entry
	for end := start + 3; end <= upperBound; end++ {
		window := strings.Join(lines[start:end], "\n")
		entries, err := detector.Parse(window, opts)
		if err != nil {
			if parser.IsParseError(err) {
				continue
			}
			return 0, nil, err
		}
		lastEnd = end
		lastEntries = entries
	}
	if lastEnd < 0 {
		return 0, nil, nil
	}
	return lastEnd, lastEntries, nil
}

var careerHeaderPattern = regexp.MustCompile(`(?i)table\s+[\d-]+:\s+([a-z\s-]+?)\s+characteristic\s+advance`)

// careerFromTableHeader extracts a career name from captions such as
// "Table 2-2: Adept Characteristic Advances" near the given index.
func careerFromTableHeader(lines []string, start int) string {
	for i := max(0, start-5); i < start+3 && i < len(lines); i++ {
		if m := careerHeaderPattern.FindStringSubmatch(strings.TrimSpace(lines[i])); m != nil {
			return textutil.TitleWords(strings.TrimSpace(m[1]))
		}
	}
	return ""
}

// rankFromContext walks backward for a rank heading: an ALL-CAPS word whose
// next non-blank line reads exactly "ADVANCES".
func rankFromContext(lines []string, start int) string {
	for i := start - 1; i > 0 && i > start-20; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if !textutil.IsAllUpper(line) || len(line) <= 2 || !textutil.IsAlpha(line) {
			continue
		}
		for j := i + 1; j < len(lines) && j < i+5; j++ {
			next := strings.TrimSpace(lines[j])
			if next == "" {
				continue
			}
			if strings.ToUpper(next) == "ADVANCES" {
				return textutil.TitleWords(line)
			}
			break
		}
	}
	return ""
}

// splitBookLines splits raw book text into lines, tolerating CRLF endings.
func splitBookLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
