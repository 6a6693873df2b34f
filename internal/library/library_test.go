package library_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexicanum/internal/entry"
	"lexicanum/internal/library"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	entries, err := library.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestLoadRejectsNonArrayContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type": "talent"}`), 0644))

	_, err := library.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON array")
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	records := entry.Records([]entry.Entry{
		&entry.Talent{Name: "Catfall", Prerequisites: []string{"Agility 30"}, Description: "Land safely.", Page: 12},
		&entry.DivinationResult{RollMin: 1, RollMax: 1, Quote: "Trust in your fear.", Effect: "Gain Paranoia."},
	})

	require.NoError(t, library.Save(records, path))
	loaded, err := library.Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "talent", loaded[0]["type"])
	assert.Equal(t, "Catfall", loaded[0]["name"])
	assert.Equal(t, "divination", loaded[1]["type"])
}

func TestRoundTripIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.json")
	second := filepath.Join(dir, "second.json")

	records := entry.Records([]entry.Entry{
		&entry.Talent{Name: "Catfall", Prerequisites: []string{"Agility 30"}, Description: "Land safely.", Page: 12, Source: "core.txt"},
		&entry.Advance{Name: "Sound Constitution", Cost: 100, AdvanceType: "T"},
	})

	require.NoError(t, library.Save(records, first))
	loaded, err := library.Load(first)
	require.NoError(t, err)
	require.NoError(t, library.Save(loaded, second))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestAppendExtendsExistingLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	initial := entry.Records([]entry.Entry{
		&entry.Talent{Name: "Catfall", Description: "Land safely."},
	})
	require.NoError(t, library.Save(initial, path))

	updated, err := library.Append(entry.Records([]entry.Entry{
		&entry.Talent{Name: "Jaded", Description: "No more horrors."},
	}), path)
	require.NoError(t, err)
	require.Len(t, updated, 2)

	loaded, err := library.Load(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "Jaded", loaded[1]["name"])
}

func TestAppendToMissingFileCreatesIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh", "library.json")
	updated, err := library.Append(entry.Records([]entry.Entry{
		&entry.Talent{Name: "Catfall", Description: "Land safely."},
	}), path)
	require.NoError(t, err)
	assert.Len(t, updated, 1)

	loaded, err := library.Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}
