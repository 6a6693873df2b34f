package parser_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"lexicanum/internal/parser"
)

type TalentTableTestSuite struct {
	suite.Suite
}

func (s *TalentTableTestSuite) TestSingleRow() {
	entries, err := parser.ParseTalentTable(
		"Talent Name Prerequisite Benefit\nAir Of Authority Fel 30 Affect more targets.",
		parser.Options{},
	)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("Air Of Authority", entries[0].Name)
	s.Equal([]string{"Fel 30"}, entries[0].Prerequisites)
	s.True(len(entries[0].Description) > 0)
	s.Equal("Affect more targets.", entries[0].Description)
}

func (s *TalentTableTestSuite) TestTableCaptionAndMultipleRows() {
	text := `Table 4-1: Talents
Talent Name Prerequisite Benefit
Air Of Authority Fel 30 Affect more targets.
Ambidextrous Ag 30 Use either hand equally well.
Arms Master BS 30 You suffer smaller penalties.`

	entries, err := parser.ParseTalentTable(text, parser.Options{Page: 95, Source: "Core"})
	s.Require().NoError(err)
	s.Require().Len(entries, 3)
	s.Equal("Ambidextrous", entries[1].Name)
	s.Equal("Arms Master", entries[2].Name)
	s.Equal([]string{"BS 30"}, entries[2].Prerequisites)
	s.Equal(95, entries[0].Page)
	s.Equal("Core", entries[0].Source)
}

func (s *TalentTableTestSuite) TestWrappedRowIsBuffered() {
	// The benefit wraps onto a second line; the row only splits once both
	// lines are joined.
	text := `Talent Name Prerequisite Benefit
Air Of
Authority Fel 30 Affect more targets.`

	entries, err := parser.ParseTalentTable(text, parser.Options{})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("Air Of Authority", entries[0].Name)
}

func (s *TalentTableTestSuite) TestDeterministicSplitting() {
	text := "Talent Name Prerequisite Benefit\nArms Master BS 30, Basic Weapon Training You suffer smaller penalties."
	first, err := parser.ParseTalentTable(text, parser.Options{})
	s.Require().NoError(err)
	for i := 0; i < 5; i++ {
		again, err := parser.ParseTalentTable(text, parser.Options{})
		s.Require().NoError(err)
		s.Equal(first[0].Record(), again[0].Record())
	}
}

func (s *TalentTableTestSuite) TestInvalidContentFails() {
	_, err := parser.ParseTalentTable("Invalid content", parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
}

func (s *TalentTableTestSuite) TestTrailingUnparsedRowFails() {
	text := `Talent Name Prerequisite Benefit
Air Of Authority Fel 30 Affect more targets.
Dangling fragment`

	_, err := parser.ParseTalentTable(text, parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
	s.Contains(err.Error(), "unparsed content")
}

func (s *TalentTableTestSuite) TestUppercaseNameIsNormalized() {
	// Long uppercase tokens are title-cased; tokens of three letters or
	// fewer are kept as abbreviations.
	text := "Talent Name Prerequisite Benefit\nAIR OF AUTHORITY Fel 30 Affect more targets."
	entries, err := parser.ParseTalentTable(text, parser.Options{})
	s.Require().NoError(err)
	s.Equal("AIR OF Authority", entries[0].Name)
}

func TestTalentTableTestSuite(t *testing.T) {
	suite.Run(t, new(TalentTableTestSuite))
}
