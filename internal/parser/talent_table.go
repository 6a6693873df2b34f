package parser

import (
	"math"
	"regexp"
	"strings"

	"lexicanum/internal/entry"
	"lexicanum/internal/textutil"
)

var talentHeaderPattern = regexp.MustCompile(`^talent\s+name`)

// genericTrailingWords are training-suffix words that rarely end a talent
// name but frequently start a prerequisite column.
var genericTrailingWords = map[string]bool{
	"basic":    true,
	"weapon":   true,
	"pistol":   true,
	"sound":    true,
	"thrown":   true,
	"drive":    true,
	"training": true,
}

// prereqKeywords mark text that plausibly belongs to a prerequisite column:
// characteristic names and abbreviations, training categories, and the
// usual rules vocabulary.
var prereqKeywords = []string{
	"training",
	"talent",
	"weapon",
	"skill",
	"bonus",
	"frenzy",
	"prerequisite",
	"acrobatic",
	"willpower",
	"agility",
	"perception",
	"strength",
	"fellowship",
	"initiative",
	"basic",
	"pistol",
	"thrown",
	"drive",
	"sound",
	"constitution",
	"fel",
	"wp",
	"bs",
	"ws",
	"per",
	"int",
	"toughness",
}

// benefitOpeners are verbs and connectives that typically begin a benefit
// column.
var benefitOpeners = map[string]bool{
	"affect":   true,
	"use":      true,
	"on":       true,
	"you":      true,
	"heal":     true,
	"gain":     true,
	"re-roll":  true,
	"reroll":   true,
	"suffer":   true,
	"remove":   true,
	"reduce":   true,
	"parry":    true,
	"such":     true,
	"whenever": true,
	"despite":  true,
	"burn!":    true,
	"targets":  true,
	"through":  true,
	"whereas":  true,
	"when":     true,
}

// scoreTalentSplit rates one candidate partition of a row's tokens into
// name/prerequisite/benefit groups. Higher is better; negative totals are
// rejected by the caller.
func scoreTalentSplit(nameTokens, prereqTokens, benefitTokens []string) float64 {
	if len(nameTokens) == 0 || len(prereqTokens) == 0 || len(benefitTokens) == 0 {
		return math.Inf(-1)
	}

	score := 0.0

	for _, token := range nameTokens {
		if isDigits(token) {
			score -= 3
			break
		}
	}
	if len(nameTokens) > 5 {
		score--
	}
	if first := []rune(nameTokens[0]); len(first) > 0 && first[0] >= 'A' && first[0] <= 'Z' {
		score++
	}
	score += math.Min(float64(len(nameTokens)), 4) * 0.3
	if genericTrailingWords[strings.ToLower(nameTokens[len(nameTokens)-1])] {
		score -= 1.5
	}

	prereqText := strings.Join(prereqTokens, " ")
	if containsDigit(prereqText) {
		score += 2
	}
	if strings.Contains(prereqText, "—") || strings.Contains(prereqText, "-") {
		score++
	}
	if strings.TrimSpace(prereqText) == "—" {
		score += 3
	}
	loweredPrereq := strings.ToLower(prereqText)
	for _, keyword := range prereqKeywords {
		if strings.Contains(loweredPrereq, keyword) {
			score += 1.5
			break
		}
	}
	if strings.Contains(prereqText, "(") && strings.Contains(prereqText, ")") {
		score += 0.5
	}
	if len(prereqTokens) > 8 {
		score--
	}
	if len(prereqTokens) == 1 && isDigits(prereqTokens[0]) {
		score -= 2
	}
	if len(prereqTokens) == 1 && prereqTokens[0] != "—" {
		score--
	}

	benefitText := strings.Join(benefitTokens, " ")
	if strings.HasSuffix(benefitText, ".") {
		score += 1.5
	}
	startWord := strings.ToLower(strings.Trim(benefitTokens[0], `"“”`))
	if benefitOpeners[startWord] {
		score++
	}
	if containsDigit(benefitText) {
		score += 0.5
	}
	if strings.HasPrefix(benefitTokens[0], "(") {
		score -= 2
	}

	return score
}

// splitTalentRow searches all partitions of the row into three contiguous
// token groups and keeps the best-scoring one. The winner is accepted only
// when its score is non-negative and the prerequisite text independently
// looks like a prerequisite; either check alone mis-splits real rows.
func splitTalentRow(row string) (name, prereq, benefit string, err error) {
	tokens, err := tokenizeRow(row)
	if err != nil {
		return "", "", "", err
	}

	bestScore := math.Inf(-1)
	var best []string
	for i := 1; i < len(tokens)-1; i++ {
		for j := i + 1; j < len(tokens); j++ {
			score := scoreTalentSplit(tokens[:i], tokens[i:j], tokens[j:])
			if score > bestScore {
				bestScore = score
				best = []string{
					strings.Join(tokens[:i], " "),
					strings.Join(tokens[i:j], " "),
					strings.Join(tokens[j:], " "),
				}
			}
		}
	}
	if best == nil || bestScore < 0 {
		return "", "", "", Errorf("could not parse talent table row: %q", row)
	}

	name, prereq, benefit = best[0], best[1], best[2]
	loweredPrereq := strings.ToLower(prereq)
	if !containsDigit(prereq) &&
		!strings.Contains(prereq, "—") &&
		!strings.Contains(loweredPrereq, "talent") &&
		!strings.Contains(loweredPrereq, "training") &&
		!strings.Contains(loweredPrereq, "skill") {
		return "", "", "", Errorf("unable to identify prerequisites in row: %q", row)
	}
	return name, prereq, benefit, nil
}

// ParseTalentTable parses a compact talent table into talent entries. Rows
// wrapped across lines are buffered and retried with the following line
// appended; leftover buffered content at the end signals a malformed
// trailing row.
func ParseTalentTable(text string, opts Options) ([]*entry.Talent, error) {
	lines := nonBlankLines(text)
	var entries []*entry.Talent

	headerFound := false
	var rowBuffer []string
	for _, line := range lines {
		lowered := strings.ToLower(line)
		if strings.HasPrefix(lowered, "table") {
			continue
		}
		if !headerFound {
			headerFound = true
			if talentHeaderPattern.MatchString(strings.TrimSpace(lowered)) {
				continue
			}
		}
		if strings.HasPrefix(line, "---") {
			break
		}
		rowBuffer = append(rowBuffer, line)
		name, prereqText, benefit, err := splitTalentRow(strings.Join(rowBuffer, " "))
		if err != nil {
			continue
		}
		rowBuffer = rowBuffer[:0]
		entries = append(entries, &entry.Talent{
			Name:          textutil.NormalizeName(name),
			Prerequisites: splitPrereqList(prereqText),
			Description:   strings.TrimSpace(benefit),
			Page:          opts.Page,
			Source:        opts.Source,
		})
	}

	if len(rowBuffer) > 0 {
		return nil, Errorf("unparsed content remaining in talent table: %q", strings.Join(rowBuffer, " "))
	}
	if !headerFound || len(entries) == 0 {
		return nil, Errorf("no talent entries were parsed from the provided text")
	}
	return entries, nil
}
