package bookscan_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"lexicanum/internal/bookscan"
	"lexicanum/internal/entry"
	"lexicanum/internal/parser"
)

type ScannerTestSuite struct {
	suite.Suite

	scanner *bookscan.Scanner
}

func (s *ScannerTestSuite) SetupTest() {
	s.scanner = bookscan.NewScanner()
}

func (s *ScannerTestSuite) TestMixedSectionsDiscovered() {
	book := `The grim darkness of the far future.

CATFALL
Prerequisites: Agility 30.
You always land on your feet, reducing falling damage.

Table 1-18: Divinations
Roll Result
1 "Trust in your fear." Gain the Paranoia trait.
2–3 "The wise learn from the deaths of others." Gain +3 Intelligence.`

	entries, err := s.scanner.Scan(book, parser.Options{Source: "core.txt"})
	s.Require().NoError(err)
	s.Require().Len(entries, 3)

	talent, ok := entries[0].(*entry.Talent)
	s.Require().True(ok)
	s.Equal("Catfall", talent.Name)
	s.Equal([]string{"Agility 30"}, talent.Prerequisites)
	s.Equal("core.txt", talent.Source)

	first, ok := entries[1].(*entry.DivinationResult)
	s.Require().True(ok)
	s.Equal(1, first.RollMin)
	s.Equal(1, first.RollMax)

	second, ok := entries[2].(*entry.DivinationResult)
	s.Require().True(ok)
	s.Equal(2, second.RollMin)
	s.Equal(3, second.RollMax)
}

func (s *ScannerTestSuite) TestCareerAndRankContext() {
	book := `The Adept advances by scholarship.

Table 2-2: Adept Characteristic Advances
Characteristic Simple Intermediate Trained Expert
Weapon Skill 100 250 500 750
Intelligence 100 250 500 750

ARCHIVIST
ADVANCES
Table 2-9: Archivist Advances
Advance Cost Type Prerequisites
Sound Constitution 100 T —
Pistol Training (Las) 100 T —`

	entries, err := s.scanner.Scan(book, parser.Options{})
	s.Require().NoError(err)
	s.Require().Len(entries, 10)

	char, ok := entries[0].(*entry.CharacteristicAdvance)
	s.Require().True(ok)
	s.Equal("Weapon Skill", char.Characteristic)
	s.Equal("Simple", char.Tier)
	s.Equal("Adept", char.Career)

	adv, ok := entries[8].(*entry.Advance)
	s.Require().True(ok)
	s.Equal("Sound Constitution", adv.Name)
	s.Equal("Adept", adv.Career)
	s.Equal("Archivist", adv.Rank)
}

func (s *ScannerTestSuite) TestTalentTableSection() {
	book := `Chapter IV: Talents

Table 4-1: Talents
Talent Name Prerequisite Benefit
Air Of Authority Fel 30 Affect more targets.
Ambidextrous Ag 30 Use either hand equally well.

Further prose follows the table.`

	entries, err := s.scanner.Scan(book, parser.Options{})
	s.Require().NoError(err)
	s.Require().Len(entries, 2)

	talent, ok := entries[0].(*entry.Talent)
	s.Require().True(ok)
	s.Equal("Air Of Authority", talent.Name)
	s.Equal([]string{"Fel 30"}, talent.Prerequisites)
}

func (s *ScannerTestSuite) TestPsychicPowersSection() {
	book := `Sanctioned psykers learn the following techniques.

WEAPON JINX
Threshold: 9
Focus Time: Half Action
Sustain: No
Range: 30 metres
Guns misfire around you.`

	entries, err := s.scanner.Scan(book, parser.Options{})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)

	power, ok := entries[0].(*entry.PsychicPower)
	s.Require().True(ok)
	s.Equal("Weapon Jinx", power.Name)
	s.Equal(9, power.Threshold)
}

func (s *ScannerTestSuite) TestChapterHeadingsNotClaimed() {
	// An ALL-CAPS heading with no prerequisite or metadata stanza below it
	// must not be mistaken for a talent or power section.
	book := `INTRODUCTION
This chapter covers the basics of play.

Table 1-18: Divinations
1 "Trust in your fear." Gain the Paranoia trait.
2–3 "The wise learn from death." Gain +3 Intelligence.`

	entries, err := s.scanner.Scan(book, parser.Options{})
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("divination", entries[0].EntryType())
	s.Equal("divination", entries[1].EntryType())
}

func (s *ScannerTestSuite) TestNoSectionsFails() {
	_, err := s.scanner.Scan("Just some ordinary prose.\nNothing recognizable here.", parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
}

func TestScannerTestSuite(t *testing.T) {
	suite.Run(t, new(ScannerTestSuite))
}
