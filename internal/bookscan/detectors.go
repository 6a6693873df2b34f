package bookscan

import (
	"regexp"
	"strings"

	"lexicanum/internal/parser"
	"lexicanum/internal/textutil"
)

// Detector pairs a section parser with a start heuristic. Start inspects
// the line at idx (plus limited lookahead/lookbehind) and returns the index
// the section window should begin at, or -1 when no section of this kind
// starts here.
type Detector struct {
	Name     string
	Parse    parser.Func
	Start    func(lines []string, idx int) int
	MaxLines int
}

var characteristicHeaderPattern = regexp.MustCompile(`(?i)^characteristic\s+simple\b`)

// defaultDetectors returns the detector registry in priority order. Order
// is significant: the first detector whose Start fires at an index wins.
func defaultDetectors() []Detector {
	return []Detector{
		{
			Name:     "talent-table",
			Parse:    parser.Adapt(parser.ParseTalentTable),
			Start:    talentTableStart,
			MaxLines: 200,
		},
		{
			Name:     "talent-prose",
			Parse:    parser.Adapt(parser.ParseTalentProse),
			Start:    talentProseStart,
			MaxLines: 200,
		},
		{
			Name:     "advances",
			Parse:    parser.Adapt(parser.ParseAdvancesTable),
			Start:    advancesTableStart,
			MaxLines: 120,
		},
		{
			Name:     "characteristic-advances",
			Parse:    parser.Adapt(parser.ParseCharacteristicAdvances),
			Start:    characteristicTableStart,
			MaxLines: 120,
		},
		{
			Name:     "divination",
			Parse:    parser.Adapt(parser.ParseDivinationTable),
			Start:    divinationTableStart,
			MaxLines: 120,
		},
		{
			Name:     "psychic-powers",
			Parse:    parser.Adapt(parser.ParsePsychicPowers),
			Start:    psychicPowersStart,
			MaxLines: 200,
		},
	}
}

// previousTableHeader walks one line backward when the line directly above
// is a "Table …" caption, so the caption is captured inside the window.
func previousTableHeader(lines []string, idx int) int {
	if idx > 0 && strings.HasPrefix(strings.ToLower(strings.TrimSpace(lines[idx-1])), "table") {
		return idx - 1
	}
	return idx
}

func startsWithHeader(line, header string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), header)
}

func talentTableStart(lines []string, idx int) int {
	if startsWithHeader(lines[idx], "talent name") {
		return previousTableHeader(lines, idx)
	}
	return -1
}

func advancesTableStart(lines []string, idx int) int {
	if startsWithHeader(lines[idx], "advance cost type") {
		return previousTableHeader(lines, idx)
	}
	return -1
}

func characteristicTableStart(lines []string, idx int) int {
	if characteristicHeaderPattern.MatchString(strings.TrimSpace(lines[idx])) {
		return previousTableHeader(lines, idx)
	}
	return -1
}

func divinationTableStart(lines []string, idx int) int {
	lowered := strings.ToLower(strings.TrimSpace(lines[idx]))
	if strings.HasPrefix(lowered, "table") && strings.Contains(lowered, "divination") {
		return idx
	}
	return -1
}

// psychicMetadataPrefixes distinguish a psychic power write-up from a
// talent write-up that shares the same ALL-CAPS heading shape.
var psychicMetadataPrefixes = []string{"threshold:", "focus time:", "sustain:", "range:"}

func hasPsychicPrefix(lowered string) bool {
	for _, prefix := range psychicMetadataPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}

// talentProseStart fires on an ALL-CAPS heading whose short lookahead
// reaches a "Prerequisites:" stanza, which keeps ordinary chapter headings
// from being claimed.
func talentProseStart(lines []string, idx int) int {
	current := strings.TrimSpace(lines[idx])
	if current == "" || !textutil.IsAllUpper(current) {
		return -1
	}
	limit := min(idx+6, len(lines))
	for look := idx + 1; look < limit; look++ {
		candidate := strings.TrimSpace(lines[look])
		if candidate == "" {
			continue
		}
		lowered := strings.ToLower(candidate)
		if strings.HasPrefix(lowered, "prerequisites:") {
			return idx
		}
		if hasPsychicPrefix(lowered) {
			return -1
		}
		if textutil.IsAllUpper(candidate) {
			return -1
		}
		break
	}
	return -1
}

func psychicPowersStart(lines []string, idx int) int {
	current := strings.TrimSpace(lines[idx])
	if current == "" || !textutil.IsAllUpper(current) {
		return -1
	}
	limit := min(idx+8, len(lines))
	for look := idx + 1; look < limit; look++ {
		lowered := strings.ToLower(strings.TrimSpace(lines[look]))
		if lowered == "" {
			continue
		}
		if hasPsychicPrefix(lowered) {
			return idx
		}
		if strings.Contains(lowered, ":") {
			break
		}
	}
	return -1
}
