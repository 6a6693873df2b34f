package parser

import (
	"strings"

	"lexicanum/internal/entry"
)

// rangedWeaponClasses are the class keywords that separate a weapon's name
// from its stat columns in a ranged weapons table.
var rangedWeaponClasses = map[string]bool{
	"Pistol": true,
	"Basic":  true,
	"Heavy":  true,
	"Thrown": true,
}

// ParseRangedWeaponsTable parses a ranged weapons table. Rows follow
// `Name Class Range RoF Dam Pen Clip Rld Special Wt Cost Availability`;
// the class keyword anchors the end of the name and the `kg` weight token
// anchors the end of the special qualities. Rows that do not fit the shape
// are skipped rather than failing the whole table.
func ParseRangedWeaponsTable(text string, opts Options) ([]*entry.RangedWeapon, error) {
	lines := nonBlankLines(text)
	var entries []*entry.RangedWeapon
	headerFound := false

	for _, line := range lines {
		lowered := strings.ToLower(line)
		if strings.Contains(lowered, "table") || strings.HasPrefix(lowered, "name") || strings.Contains(lowered, "weapons") {
			headerFound = true
			continue
		}
		if !headerFound {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) < 11 {
			continue
		}

		classIdx := -1
		for i, tok := range tokens {
			if rangedWeaponClasses[tok] {
				classIdx = i
				break
			}
		}
		if classIdx <= 0 {
			continue
		}

		name := strings.Join(tokens[:classIdx], " ")
		remaining := tokens[classIdx+1:]
		if len(remaining) < 10 {
			continue
		}

		wtIdx := weightIndex(remaining, 6)
		if wtIdx < 0 || len(remaining) < wtIdx+3 {
			continue
		}
		special := "—"
		if wtIdx > 6 {
			special = strings.Join(remaining[6:wtIdx], " ")
		}

		entries = append(entries, &entry.RangedWeapon{
			Name:         name,
			Class:        tokens[classIdx],
			Range:        remaining[0],
			RoF:          remaining[1],
			Damage:       remaining[2],
			Penetration:  remaining[3],
			Clip:         remaining[4],
			Reload:       remaining[5],
			Special:      special,
			Weight:       remaining[wtIdx],
			Cost:         remaining[wtIdx+1],
			Availability: strings.Join(remaining[wtIdx+2:], " "),
			Page:         opts.Page,
			Source:       opts.Source,
		})
	}

	if len(entries) == 0 {
		return nil, Errorf("no ranged weapons found in table")
	}
	return entries, nil
}

// ParseMeleeWeaponsTable parses a melee weapons table of rows shaped
// `Name Class Range Dam Pen Special Wt Cost Availability`.
func ParseMeleeWeaponsTable(text string, opts Options) ([]*entry.MeleeWeapon, error) {
	lines := nonBlankLines(text)
	var entries []*entry.MeleeWeapon
	headerFound := false

	for _, line := range lines {
		lowered := strings.ToLower(line)
		if strings.Contains(lowered, "table") || strings.HasPrefix(lowered, "name") || strings.Contains(lowered, "weapons") {
			headerFound = true
			continue
		}
		if !headerFound {
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) < 8 {
			continue
		}

		classIdx := -1
		for i, tok := range tokens {
			if strings.Contains(strings.ToLower(tok), "melee") || tok == "Thrown" {
				classIdx = i
				break
			}
		}
		if classIdx <= 0 {
			continue
		}

		name := strings.Join(tokens[:classIdx], " ")
		remaining := tokens[classIdx+1:]
		if len(remaining) < 7 {
			continue
		}

		wtIdx := weightIndex(remaining, 3)
		if wtIdx < 0 || len(remaining) < wtIdx+3 {
			continue
		}
		special := "—"
		if wtIdx > 3 {
			special = strings.Join(remaining[3:wtIdx], " ")
		}

		entries = append(entries, &entry.MeleeWeapon{
			Name:         name,
			Class:        tokens[classIdx],
			Range:        remaining[0],
			Damage:       remaining[1],
			Penetration:  remaining[2],
			Special:      special,
			Weight:       remaining[wtIdx],
			Cost:         remaining[wtIdx+1],
			Availability: strings.Join(remaining[wtIdx+2:], " "),
			Page:         opts.Page,
			Source:       opts.Source,
		})
	}

	if len(entries) == 0 {
		return nil, Errorf("no melee weapons found in table")
	}
	return entries, nil
}

// ParseArmourTable parses an armour table of rows shaped
// `Name Locations AP Wt Cost Availability`, tracking short "… Armour"
// category header lines as the armour type for subsequent rows.
func ParseArmourTable(text string, opts Options) ([]*entry.Armour, error) {
	lines := nonBlankLines(text)
	var entries []*entry.Armour
	headerFound := false
	currentType := ""

	for _, line := range lines {
		lowered := strings.ToLower(line)
		if strings.Contains(lowered, "table") || strings.HasPrefix(lowered, "armour type") {
			headerFound = true
			continue
		}
		if !headerFound {
			continue
		}
		if strings.Contains(lowered, "armour") && len(strings.Fields(line)) <= 3 {
			currentType = strings.TrimSpace(line)
			continue
		}

		tokens := strings.Fields(line)
		if len(tokens) < 5 {
			continue
		}

		apIdx := -1
		for i, tok := range tokens {
			if i > 0 && isDigits(strings.ReplaceAll(tok, ",", "")) {
				apIdx = i
				break
			}
		}
		if apIdx <= 0 {
			continue
		}

		remaining := tokens[apIdx+1:]
		if len(remaining) < 3 {
			continue
		}

		armourType := currentType
		if armourType == "" {
			armourType = "Unknown"
		}
		entries = append(entries, &entry.Armour{
			Name:         strings.Join(tokens[:apIdx-1], " "),
			ArmourType:   armourType,
			Locations:    tokens[apIdx-1],
			AP:           tokens[apIdx],
			Weight:       remaining[0],
			Cost:         remaining[1],
			Availability: strings.Join(remaining[2:], " "),
			Page:         opts.Page,
			Source:       opts.Source,
		})
	}

	if len(entries) == 0 {
		return nil, Errorf("no armour found in table")
	}
	return entries, nil
}

// weightIndex finds the first token from start that carries a `kg` weight
// suffix, or -1.
func weightIndex(tokens []string, start int) int {
	for i := start; i < len(tokens); i++ {
		if strings.Contains(tokens[i], "kg") {
			return i
		}
	}
	return -1
}
