package parser_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"lexicanum/internal/parser"
)

type PsychicTestSuite struct {
	suite.Suite
}

func (s *PsychicTestSuite) TestFullPowerBlock() {
	text := `TELEPATHY
Threshold: 11
Focus Time: Half Action
Sustain: Yes
Range: 100 metres
You project your thoughts into the mind of another.`

	entries, err := parser.ParsePsychicPowers(text, parser.Options{Page: 170})
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("Telepathy", entries[0].Name)
	s.Equal(11, entries[0].Threshold)
	s.Equal("Half Action", entries[0].FocusTime)
	s.Equal("Yes", entries[0].Sustain)
	s.Equal("100 metres", entries[0].Range)
	s.Contains(entries[0].Description, "project your thoughts")
	s.Equal(170, entries[0].Page)
}

func (s *PsychicTestSuite) TestMultiplePowers() {
	text := `FEARFUL AURA
Threshold: 9
Focus Time: Free Action
Sustain: Yes
Range: You
Enemies nearby must test Willpower or flee.

DISTORT VISION
Threshold: 10
Focus Time: Half Action
Sustain: Yes
Range: 20 metres
You blur your outline, making ranged attacks harder.`

	entries, err := parser.ParsePsychicPowers(text, parser.Options{})
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("Fearful Aura", entries[0].Name)
	s.Equal(9, entries[0].Threshold)
	s.Equal("Distort Vision", entries[1].Name)
	s.Equal(10, entries[1].Threshold)
}

func (s *PsychicTestSuite) TestThresholdWithAnnotation() {
	text := `SENSE PRESENCE
Threshold: 10 (Difficult)
Focus Time: Full Action
Sustain: No
Range: 50 metres
You feel the minds around you.`

	entries, err := parser.ParsePsychicPowers(text, parser.Options{})
	s.Require().NoError(err)
	s.Equal(10, entries[0].Threshold)
}

func (s *PsychicTestSuite) TestFirstMetadataOccurrenceWins() {
	text := `WEAPON JINX
Threshold: 9
Range: 30 metres
Range: 60 metres
Sustain: No
Focus Time: Half Action
Guns misfire around you.`

	entries, err := parser.ParsePsychicPowers(text, parser.Options{})
	s.Require().NoError(err)
	s.Equal("30 metres", entries[0].Range)
}

func (s *PsychicTestSuite) TestMissingThresholdFails() {
	text := `SPASM
Focus Time: Half Action
Sustain: No
Range: 10 metres
Your victim collapses in convulsions.`

	_, err := parser.ParsePsychicPowers(text, parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
	s.Contains(err.Error(), "Spasm")
}

func (s *PsychicTestSuite) TestNonNumericThresholdFails() {
	text := `SPASM
Threshold: hard
Focus Time: Half Action
Sustain: No
Range: 10 metres
Your victim collapses in convulsions.`

	_, err := parser.ParsePsychicPowers(text, parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
}

func (s *PsychicTestSuite) TestFirstLineMustBeUppercase() {
	_, err := parser.ParsePsychicPowers("not a power name\nThreshold: 5", parser.Options{})
	s.Error(err)
	s.True(parser.IsParseError(err))
}

func TestPsychicTestSuite(t *testing.T) {
	suite.Run(t, new(PsychicTestSuite))
}
