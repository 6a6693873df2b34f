package parser

import (
	"regexp"
	"strconv"
	"strings"

	"lexicanum/internal/entry"
	"lexicanum/internal/textutil"
)

var (
	advancesHeaderPattern = regexp.MustCompile(`^advance\s+cost\s+type`)
	costPattern           = regexp.MustCompile(`^[0-9][0-9,]*$`)
)

// splitAdvancesRow locates the cost column as the first pure-digit token
// that is not the name and leaves room for a type code plus at least one
// prerequisite token.
func splitAdvancesRow(row string) (name, cost, advanceType, prereqText string, err error) {
	tokens, err := tokenizeRow(row)
	if err != nil {
		return "", "", "", "", err
	}

	costIndex := -1
	for idx, token := range tokens {
		if costPattern.MatchString(token) {
			costIndex = idx
			break
		}
	}
	if costIndex <= 0 || costIndex >= len(tokens)-2 {
		return "", "", "", "", Errorf("advance row does not contain a valid cost: %q", row)
	}

	name = strings.Join(tokens[:costIndex], " ")
	cost = tokens[costIndex]
	advanceType = tokens[costIndex+1]
	prereqText = strings.Join(tokens[costIndex+2:], " ")
	if prereqText == "" {
		prereqText = "—"
	}
	return name, cost, advanceType, prereqText, nil
}

// ParseAdvancesTable parses a career advances table of rows shaped
// `<name> <cost> <type-code> <prerequisites…>`. Career and rank from
// Options are attached as advisory metadata.
func ParseAdvancesTable(text string, opts Options) ([]*entry.Advance, error) {
	lines := nonBlankLines(text)
	var entries []*entry.Advance
	headerFound := false

	for _, line := range lines {
		lowered := strings.ToLower(line)
		if strings.HasPrefix(lowered, "table") {
			continue
		}
		if !headerFound {
			headerFound = true
			if advancesHeaderPattern.MatchString(strings.TrimSpace(lowered)) {
				continue
			}
		}
		if strings.HasPrefix(line, "---") {
			break
		}
		name, costText, advanceType, prereqText, err := splitAdvancesRow(line)
		if err != nil {
			return nil, err
		}
		cost, err := strconv.Atoi(strings.ReplaceAll(costText, ",", ""))
		if err != nil {
			return nil, &ParseError{Msg: "invalid advance cost " + costText, Err: err}
		}
		entries = append(entries, &entry.Advance{
			Name:          textutil.NormalizeName(name),
			Cost:          cost,
			AdvanceType:   advanceType,
			Prerequisites: splitPrereqList(prereqText),
			Career:        opts.Career,
			Rank:          opts.Rank,
			Page:          opts.Page,
			Source:        opts.Source,
		})
	}

	if !headerFound || len(entries) == 0 {
		return nil, Errorf("no advance entries were parsed from the provided text")
	}
	return entries, nil
}

// ParseCharacteristicAdvances parses a characteristic advance cost table.
// The header row declares the tier names; each data row yields one entry
// per tier, costs taken from the trailing columns.
func ParseCharacteristicAdvances(text string, opts Options) ([]*entry.CharacteristicAdvance, error) {
	lines := nonBlankLines(text)
	var entries []*entry.CharacteristicAdvance
	var tiers []string

	for _, line := range lines {
		lowered := strings.ToLower(strings.TrimSpace(line))
		if strings.HasPrefix(lowered, "table") || strings.HasPrefix(lowered, "characteristic") {
			tokens := strings.Fields(line)
			for i, token := range tokens {
				if token == "Characteristic" {
					tiers = tokens[i+1:]
					break
				}
			}
			continue
		}
		if tiers == nil {
			return nil, Errorf("characteristic tiers header not found before data rows")
		}
		tokens := strings.Fields(line)
		if len(tokens) < len(tiers)+1 {
			return nil, Errorf("characteristic row is too short: %q", line)
		}
		costTokens := tokens[len(tokens)-len(tiers):]
		name := textutil.NormalizeName(strings.Join(tokens[:len(tokens)-len(tiers)], " "))
		for i, tier := range tiers {
			cost, err := strconv.Atoi(strings.ReplaceAll(costTokens[i], ",", ""))
			if err != nil {
				return nil, &ParseError{Msg: "invalid characteristic cost " + costTokens[i], Err: err}
			}
			entries = append(entries, &entry.CharacteristicAdvance{
				Characteristic: name,
				Tier:           textutil.NormalizeName(tier),
				Cost:           cost,
				Career:         opts.Career,
				Page:           opts.Page,
				Source:         opts.Source,
			})
		}
	}

	if len(entries) == 0 {
		return nil, Errorf("no characteristic advances found in the table")
	}
	return entries, nil
}
