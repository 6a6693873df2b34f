package parser

import (
	"regexp"
	"strings"

	"lexicanum/internal/entry"
)

// labelDashPattern captures inline "Label - Value" metadata lines that use
// a dash instead of a colon.
var labelDashPattern = regexp.MustCompile(`^([A-Za-z][\w ]+)\s+[-–—]\s+(.+)$`)

// splitBlocks groups the non-blank lines of text into blank-line-delimited
// blocks.
func splitBlocks(text string) [][]string {
	var blocks [][]string
	var buffer []string
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) != "" {
			buffer = append(buffer, line)
			continue
		}
		if len(buffer) > 0 {
			blocks = append(blocks, buffer)
			buffer = nil
		}
	}
	if len(buffer) > 0 {
		blocks = append(blocks, buffer)
	}
	return blocks
}

// ParseNamedBlocks parses simple name-first blocks separated by blank
// lines. The first line becomes the name; `Key: value` and `Label - Value`
// lines become attributes (keys normalized against defaultAttributes
// case-insensitively, otherwise kept verbatim); everything else joins into
// the description. Deliberately permissive: there is no failure mode, and
// malformed blocks just produce sparse attributes.
func ParseNamedBlocks(text, kind string, defaultAttributes []string) []*entry.Block {
	defaultKeys := make(map[string]string, len(defaultAttributes))
	for _, key := range defaultAttributes {
		defaultKeys[strings.ToLower(key)] = key
	}

	var entries []*entry.Block
	for _, block := range splitBlocks(text) {
		name := strings.TrimSpace(block[0])
		attributes := make(map[string]string)
		var descriptionLines []string
		for _, line := range block[1:] {
			if key, value, found := strings.Cut(line, ":"); found {
				attributes[normalizeKey(key, defaultKeys)] = strings.TrimSpace(value)
				continue
			}
			if m := labelDashPattern.FindStringSubmatch(line); m != nil {
				attributes[normalizeKey(m[1], defaultKeys)] = strings.TrimSpace(m[2])
				continue
			}
			descriptionLines = append(descriptionLines, strings.TrimSpace(line))
		}
		entries = append(entries, &entry.Block{
			Kind:        kind,
			Name:        name,
			Description: strings.TrimSpace(strings.Join(descriptionLines, " ")),
			Attributes:  attributes,
			RawText:     strings.TrimSpace(strings.Join(block, "\n")),
		})
	}
	return entries
}

func normalizeKey(key string, defaultKeys map[string]string) string {
	key = strings.TrimSpace(key)
	if canonical, ok := defaultKeys[strings.ToLower(key)]; ok {
		return canonical
	}
	return key
}

// ParseEquipmentBlocks parses free-form equipment catalog blocks.
func ParseEquipmentBlocks(text string) []*entry.Block {
	return ParseNamedBlocks(text, "equipment", []string{"Availability", "Weight", "Cost", "Range"})
}

// ParseItemBlocks parses general item blocks.
func ParseItemBlocks(text string) []*entry.Block {
	return ParseNamedBlocks(text, "item", []string{"Availability", "Weight", "Cost"})
}

// ParseSkillBlocks parses skill description blocks.
func ParseSkillBlocks(text string) []*entry.Block {
	return ParseNamedBlocks(text, "skill", []string{"Characteristic", "Use"})
}

// ParseCareerBlocks parses career path summary blocks.
func ParseCareerBlocks(text string) []*entry.Block {
	return ParseNamedBlocks(text, "career-path", []string{"Entry", "Exit", "Aptitudes"})
}

// ParseMonsterBlocks parses monster stat blocks.
func ParseMonsterBlocks(text string) []*entry.Block {
	return ParseNamedBlocks(text, "monster-statblock", []string{"Traits", "Skills", "Weapons", "Armour", "Wounds"})
}
