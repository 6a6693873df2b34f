package parser_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"lexicanum/internal/parser"
)

type TalentProseTestSuite struct {
	suite.Suite
}

func (s *TalentProseTestSuite) TestSingleTalent() {
	text := `CATFALL
Prerequisites: Agility 30.
You always land on your feet, taking less damage from falls.`

	entries, err := parser.ParseTalentProse(text, parser.Options{})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("Catfall", entries[0].Name)
	s.Equal([]string{"Agility 30"}, entries[0].Prerequisites)
	s.Contains(entries[0].Description, "land on your feet")
}

func (s *TalentProseTestSuite) TestMultipleTalentsAndMultiLineName() {
	text := `BASIC WEAPON
TRAINING
Prerequisites: None.
You can use basic weapons without penalty.

AMBIDEXTROUS
Prerequisites: Agility 30.
You may use either hand equally well.`

	entries, err := parser.ParseTalentProse(text, parser.Options{Page: 102})
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("Basic Weapon Training", entries[0].Name)
	s.Equal([]string{"None"}, entries[0].Prerequisites)
	s.Equal("Ambidextrous", entries[1].Name)
	s.Equal(102, entries[1].Page)
}

func (s *TalentProseTestSuite) TestWrappedPrerequisites() {
	// The prerequisite stanza does not end with a period, so the next line
	// is absorbed into it.
	text := `ASSASSIN STRIKE
Prerequisites: Agility 40,
Acrobatics skill.
After a melee attack you may move at half rate.`

	entries, err := parser.ParseTalentProse(text, parser.Options{})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal([]string{"Agility 40", "Acrobatics skill"}, entries[0].Prerequisites)
	s.Contains(entries[0].Description, "half rate")
}

func (s *TalentProseTestSuite) TestSemicolonStaysInsideProseItem() {
	text := `MASTER CHIRURGEON
Prerequisites: Medicae +10; talented in surgery, Intelligence 40.
Your patients rarely die on the table.`

	entries, err := parser.ParseTalentProse(text, parser.Options{})
	s.Require().NoError(err)
	s.Equal([]string{"Medicae +10; talented in surgery", "Intelligence 40"}, entries[0].Prerequisites)
}

func (s *TalentProseTestSuite) TestMissingPrerequisitesStanza() {
	text := `JADED
The galaxy holds no more horrors for you.`

	entries, err := parser.ParseTalentProse(text, parser.Options{})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Empty(entries[0].Prerequisites)
	s.Contains(entries[0].Description, "horrors")
}

func (s *TalentProseTestSuite) TestFirstLineMustBeUppercase() {
	_, err := parser.ParseTalentProse("not a heading\nPrerequisites: None.", parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
}

func (s *TalentProseTestSuite) TestEmptyInputFails() {
	_, err := parser.ParseTalentProse("\n\n", parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
}

func TestTalentProseTestSuite(t *testing.T) {
	suite.Run(t, new(TalentProseTestSuite))
}
