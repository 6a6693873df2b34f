package parser

import (
	"strconv"
	"strings"

	"lexicanum/internal/entry"
	"lexicanum/internal/textutil"
)

// psychicMetadataKeys are the recognized `Key: value` lines in a power
// write-up, matched case-insensitively. First occurrence wins.
var psychicMetadataKeys = map[string]bool{
	"threshold":  true,
	"focus time": true,
	"sustain":    true,
	"range":      true,
}

// ParsePsychicPowers parses a sequence of psychic power descriptions:
// ALL-CAPS name lines, `Key: value` metadata, then prose until the next
// heading. Threshold is mandatory and must open with an integer; anything
// else is a hard failure naming the offending power.
func ParsePsychicPowers(text string, opts Options) ([]*entry.PsychicPower, error) {
	lines := splitLines(text)
	var entries []*entry.PsychicPower
	idx := 0

	for idx < len(lines) {
		if strings.TrimSpace(lines[idx]) == "" {
			idx++
			continue
		}
		if !textutil.IsAllUpper(strings.TrimSpace(lines[idx])) {
			return nil, Errorf("expected psychic power name in uppercase, found: %q", lines[idx])
		}
		nameLines := []string{strings.TrimSpace(lines[idx])}
		idx++
		for idx < len(lines) {
			candidate := strings.TrimSpace(lines[idx])
			if candidate == "" {
				idx++
				continue
			}
			if textutil.IsAllUpper(candidate) {
				nameLines = append(nameLines, candidate)
				idx++
				continue
			}
			break
		}
		name := textutil.NormalizeName(strings.Join(nameLines, " "))

		fields := make(map[string]string)
		var descriptionLines []string
		for idx < len(lines) {
			candidate := strings.TrimSpace(lines[idx])
			if candidate == "" {
				idx++
				continue
			}
			if textutil.IsAllUpper(candidate) {
				break
			}
			if key, value, found := strings.Cut(candidate, ":"); found {
				keyLower := strings.ToLower(strings.TrimSpace(key))
				if psychicMetadataKeys[keyLower] {
					if _, seen := fields[keyLower]; !seen {
						fields[keyLower] = strings.TrimSpace(value)
					}
					idx++
					continue
				}
			}
			descriptionLines = append(descriptionLines, candidate)
			idx++
		}

		threshold, err := parseThreshold(fields["threshold"])
		if err != nil {
			return nil, &ParseError{Msg: "missing or invalid threshold for psychic power " + strconv.Quote(name), Err: err}
		}

		description := strings.TrimSpace(strings.ReplaceAll(strings.Join(descriptionLines, " "), "  ", " "))
		entries = append(entries, &entry.PsychicPower{
			Name:        name,
			Threshold:   threshold,
			FocusTime:   fields["focus time"],
			Sustain:     fields["sustain"],
			Range:       fields["range"],
			Description: description,
			Page:        opts.Page,
			Source:      opts.Source,
		})
	}

	if len(entries) == 0 {
		return nil, Errorf("no psychic powers were parsed from the provided text")
	}
	return entries, nil
}

// parseThreshold reads the leading integer of a threshold value such as
// "10 (difficult)".
func parseThreshold(value string) (int, error) {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return 0, Errorf("threshold value is empty")
	}
	return strconv.Atoi(tokens[0])
}
