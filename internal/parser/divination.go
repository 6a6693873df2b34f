package parser

import (
	"regexp"
	"strconv"
	"strings"

	"lexicanum/internal/entry"
)

var (
	rollRangePattern = regexp.MustCompile(`^(\d{1,2})(?:[–-](\d{1,2}))?$`)
	rollRowPattern   = regexp.MustCompile(`^(\d{1,2}(?:[–-]\d{1,2})?)\s+(.+)$`)
	quotedSpan       = regexp.MustCompile(`["“](.+?)["”]`)
)

func parseRollRange(token string) (int, int, error) {
	m := rollRangePattern.FindStringSubmatch(token)
	if m == nil {
		return 0, 0, Errorf("invalid roll range token: %q", token)
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, &ParseError{Msg: "invalid roll range token " + token, Err: err}
	}
	if m[2] == "" {
		return start, start, nil
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, &ParseError{Msg: "invalid roll range token " + token, Err: err}
	}
	return start, end, nil
}

// ParseDivinationTable parses a divination results table. A row starts at a
// roll-range token and owns all following text until the next roll-range
// token, so entries may span several lines. Rows before a "Table …" header
// line are rejected.
func ParseDivinationTable(text string, opts Options) ([]*entry.DivinationResult, error) {
	lines := splitLines(text)
	var entries []*entry.DivinationResult
	haveRoll := false
	var rollMin, rollMax int
	var textParts []string
	headerSeen := false

	flush := func() {
		entries = append(entries, buildDivinationEntry(rollMin, rollMax, strings.Join(textParts, " "), opts))
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lowered := strings.ToLower(line)
		if strings.HasPrefix(lowered, "table") {
			headerSeen = true
			continue
		}
		if !headerSeen {
			continue
		}
		if strings.HasPrefix(lowered, "roll") {
			continue
		}
		if m := rollRowPattern.FindStringSubmatch(line); m != nil {
			if haveRoll {
				flush()
			}
			var err error
			rollMin, rollMax, err = parseRollRange(m[1])
			if err != nil {
				return nil, err
			}
			haveRoll = true
			textParts = []string{strings.TrimSpace(m[2])}
			continue
		}
		if !haveRoll {
			return nil, Errorf("unexpected line in divination table: %q", line)
		}
		textParts = append(textParts, line)
	}
	if haveRoll {
		flush()
	}

	if len(entries) == 0 {
		return nil, Errorf("no divination entries were parsed from the provided text")
	}
	return entries, nil
}

// buildDivinationEntry splits an entry's merged text into quote and effect.
// A quoted span wins; otherwise the text splits at its first period; with
// neither, the whole text doubles as both quote and effect.
func buildDivinationEntry(rollMin, rollMax int, text string, opts Options) *entry.DivinationResult {
	quote := text
	effect := ""
	if loc := quotedSpan.FindStringSubmatchIndex(text); loc != nil {
		quote = text[loc[2]:loc[3]]
		effect = strings.TrimSpace(strings.TrimSpace(text[:loc[0]]) + strings.TrimSpace(text[loc[1]:]))
	}
	if effect == "" {
		before, after, found := strings.Cut(text, ".")
		if found {
			quote = strings.Trim(before, `"“” `)
			effect = strings.TrimSpace(after)
		} else {
			effect = strings.TrimSpace(text)
		}
	}
	return &entry.DivinationResult{
		RollMin: rollMin,
		RollMax: rollMax,
		Quote:   strings.TrimSpace(quote),
		Effect:  strings.TrimSpace(effect),
		Page:    opts.Page,
		Source:  opts.Source,
	}
}
