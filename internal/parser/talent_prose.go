package parser

import (
	"strings"

	"lexicanum/internal/entry"
	"lexicanum/internal/textutil"
)

const prereqMarker = "Prerequisites:"

// ParseTalentProse parses extended talent write-ups: one or more ALL-CAPS
// name lines, an optional "Prerequisites:" stanza whose continuation lines
// are absorbed until a structural break, then free prose until the next
// ALL-CAPS heading.
func ParseTalentProse(text string, opts Options) ([]*entry.Talent, error) {
	lines := splitLines(text)
	var entries []*entry.Talent
	idx := 0

	for idx < len(lines) {
		if strings.TrimSpace(lines[idx]) == "" {
			idx++
			continue
		}
		if !textutil.IsAllUpper(strings.TrimSpace(lines[idx])) {
			return nil, Errorf("expected talent name in uppercase, found: %q", lines[idx])
		}

		nameLines := []string{strings.TrimSpace(lines[idx])}
		idx++
		for idx < len(lines) {
			candidate := strings.TrimSpace(lines[idx])
			if candidate == "" {
				idx++
				continue
			}
			if strings.HasPrefix(candidate, prereqMarker) {
				break
			}
			if textutil.IsAllUpper(candidate) {
				nameLines = append(nameLines, candidate)
				idx++
				continue
			}
			break
		}

		name := textutil.NormalizeName(strings.Join(nameLines, " "))
		var prerequisites []string
		if idx < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[idx]), prereqMarker) {
			buffer := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(lines[idx]), prereqMarker))
			idx++
			if !strings.HasSuffix(buffer, ".") {
				for idx < len(lines) {
					candidate := strings.TrimSpace(lines[idx])
					if candidate == "" {
						idx++
						break
					}
					if textutil.IsAllUpper(candidate) && !strings.HasPrefix(candidate, prereqMarker) {
						break
					}
					lowered := strings.ToLower(candidate)
					if strings.HasPrefix(lowered, "talent groups:") || strings.HasPrefix(lowered, "special:") {
						break
					}
					if strings.Contains(candidate, ":") {
						break
					}
					buffer += " " + candidate
					idx++
					if strings.HasSuffix(candidate, ".") {
						break
					}
				}
			}
			// Prose prerequisites separate only on commas; semicolons stay
			// inside a single item.
			for _, item := range strings.Split(buffer, ",") {
				item = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(item), "."))
				if item != "" && item != "—" {
					prerequisites = append(prerequisites, item)
				}
			}
		}

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
			descriptionLines = append(descriptionLines, candidate)
			idx++
		}

		description := strings.TrimSpace(strings.ReplaceAll(strings.Join(descriptionLines, " "), "  ", " "))
		entries = append(entries, &entry.Talent{
			Name:          name,
			Prerequisites: prerequisites,
			Description:   description,
			Page:          opts.Page,
			Source:        opts.Source,
		})
	}

	if len(entries) == 0 {
		return nil, Errorf("no talents were discovered in the prose block")
	}
	return entries, nil
}
