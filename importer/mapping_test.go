package importer_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/anisong/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappingLookups(t *testing.T) {
	m := importer.NewMapping()

	am := m.AddArtist("12", 3)
	am.LineUps[0] = 7
	am.LineUps[1] = 8

	got, ok := m.Artist("12")
	require.True(t, ok)
	assert.EqualValues(t, 3, got.NewID)

	_, ok = m.Artist("13")
	assert.False(t, ok)

	id, ok := m.LineUp("12", 1)
	require.True(t, ok)
	assert.EqualValues(t, 8, id)

	_, ok = m.LineUp("12", 2)
	assert.False(t, ok)
	_, ok = m.LineUp("13", 0)
	assert.False(t, ok)
}

// the export keeps the legacy seeder's file shape so existing audit tooling
// can read it
func TestMappingExportShape(t *testing.T) {
	m := importer.NewMapping()
	m.AddArtist("1", 10)
	am := m.AddArtist("2", 11)
	am.LineUps[0] = 90

	path := filepath.Join(t.TempDir(), "mapping.json")
	require.NoError(t, m.Export(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	require.Len(t, got, 2)

	assert.Equal(t, "1", got["1"]["old_artist_id"])
	assert.EqualValues(t, 10, got["1"]["new_artist_id"])
	_, hasLineUps := got["1"]["line_ups"]
	assert.False(t, hasLineUps, "solo artists export without a line_ups key")

	lineUps, ok := got["2"]["line_ups"].(map[string]any)
	require.True(t, ok)
	entry, ok := lineUps["0"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 0, entry["old_line_up_id"])
	assert.EqualValues(t, 90, entry["new_line_up_id"])
}
