package parser_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"lexicanum/internal/parser"
)

type AdvancesTestSuite struct {
	suite.Suite
}

func (s *AdvancesTestSuite) TestBasicTable() {
	text := `Table 2-7: Advances
Advance Cost Type Prerequisites
Pistol Training (Las) 100 T —
Sound Constitution 100 T —
Swift Attack 500 T WS 35`

	entries, err := parser.ParseAdvancesTable(text, parser.Options{Career: "Guard", Rank: "Conscript"})
	s.Require().NoError(err)
	s.Require().Len(entries, 3)

	s.Equal("Pistol Training (Las)", entries[0].Name)
	s.Equal(100, entries[0].Cost)
	s.Equal("T", entries[0].AdvanceType)
	s.Empty(entries[0].Prerequisites)
	s.Equal("Guard", entries[0].Career)
	s.Equal("Conscript", entries[0].Rank)

	s.Equal("Swift Attack", entries[2].Name)
	s.Equal([]string{"WS 35"}, entries[2].Prerequisites)
}

func (s *AdvancesTestSuite) TestThousandsSeparatorInCost() {
	text := `Advance Cost Type Prerequisites
Hammer Blow 1,000 T WS 50`

	entries, err := parser.ParseAdvancesTable(text, parser.Options{})
	s.Require().NoError(err)
	s.Equal(1000, entries[0].Cost)
}

func (s *AdvancesTestSuite) TestRowWithoutCostFails() {
	text := `Advance Cost Type Prerequisites
Just words without numbers here`

	_, err := parser.ParseAdvancesTable(text, parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
}

func (s *AdvancesTestSuite) TestEmptyTableFails() {
	_, err := parser.ParseAdvancesTable("Table 2-7: Advances", parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
}

type CharacteristicAdvancesTestSuite struct {
	suite.Suite
}

func (s *CharacteristicAdvancesTestSuite) TestTierExpansion() {
	text := `Characteristic Simple Intermediate Trained Expert
Weapon Skill 100 250 500 750
Ballistic Skill 100 250 500 750`

	entries, err := parser.ParseCharacteristicAdvances(text, parser.Options{Career: "Adept"})
	s.Require().NoError(err)
	s.Require().Len(entries, 8)

	s.Equal("Weapon Skill", entries[0].Characteristic)
	s.Equal("Simple", entries[0].Tier)
	s.Equal(100, entries[0].Cost)
	s.Equal("Adept", entries[0].Career)

	s.Equal("Weapon Skill", entries[3].Characteristic)
	s.Equal("Expert", entries[3].Tier)
	s.Equal(750, entries[3].Cost)

	s.Equal("Ballistic Skill", entries[4].Characteristic)
	s.Equal("Simple", entries[4].Tier)
}

func (s *CharacteristicAdvancesTestSuite) TestTableCaptionCarriesHeader() {
	text := `Table 2-2: Adept Characteristic Advances
Characteristic Simple Intermediate Trained Expert
Intelligence 100 250 500 750`

	entries, err := parser.ParseCharacteristicAdvances(text, parser.Options{})
	s.Require().NoError(err)
	s.Require().Len(entries, 4)
	s.Equal("Intelligence", entries[0].Characteristic)
	s.Equal("Trained", entries[2].Tier)
	s.Equal(500, entries[2].Cost)
}

func (s *CharacteristicAdvancesTestSuite) TestDataBeforeHeaderFails() {
	_, err := parser.ParseCharacteristicAdvances("Weapon Skill 100 250 500 750", parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
}

func (s *CharacteristicAdvancesTestSuite) TestShortRowFails() {
	text := `Characteristic Simple Intermediate Trained Expert
Weapon Skill 100 250`

	_, err := parser.ParseCharacteristicAdvances(text, parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
}

func TestAdvancesTestSuite(t *testing.T) {
	suite.Run(t, new(AdvancesTestSuite))
}

func TestCharacteristicAdvancesTestSuite(t *testing.T) {
	suite.Run(t, new(CharacteristicAdvancesTestSuite))
}
