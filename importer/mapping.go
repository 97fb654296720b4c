package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// An ArtistMapping records where one raw artist landed in the store: its new
// surrogate id, and the new id of each of its line-ups keyed by the roster's
// position in the dump.
type ArtistMapping struct {
	OldID   string
	NewID   int64
	LineUps map[int]int64
}

// A Mapping accumulates the raw-to-store id table across the import's
// passes. It is the shared state every pass after the first resolves
// references through.
type Mapping struct {
	artists map[string]*ArtistMapping
}

func NewMapping() *Mapping {
	return &Mapping{artists: map[string]*ArtistMapping{}}
}

// AddArtist records a newly inserted artist and returns its entry so the
// line-up pass can extend it.
func (m *Mapping) AddArtist(oldID string, newID int64) *ArtistMapping {
	am := &ArtistMapping{OldID: oldID, NewID: newID, LineUps: map[int]int64{}}
	m.artists[oldID] = am
	return am
}

// Artist resolves a raw artist id.
func (m *Mapping) Artist(oldID string) (*ArtistMapping, bool) {
	am, ok := m.artists[oldID]
	return am, ok
}

// LineUp resolves a raw (artist id, roster index) pair to a new line-up id.
func (m *Mapping) LineUp(oldID string, index int) (int64, bool) {
	am, ok := m.artists[oldID]
	if !ok {
		return 0, false
	}
	id, ok := am.LineUps[index]
	return id, ok
}

// mapping.json shapes, matching the file the legacy importer wrote so that
// existing audit tooling keeps working.

type exportedArtist struct {
	OldArtistID string                    `json:"old_artist_id"`
	NewArtistID int64                     `json:"new_artist_id"`
	LineUps     map[string]exportedLineUp `json:"line_ups,omitempty"`
}

type exportedLineUp struct {
	OldLineUpID int   `json:"old_line_up_id"`
	NewLineUpID int64 `json:"new_line_up_id"`
}

// Export writes the whole mapping to path as indented JSON. The file is an
// audit artifact for operators; nothing downstream reads it back.
func (m *Mapping) Export(path string) error {
	out := make(map[string]exportedArtist, len(m.artists))
	for oldID, am := range m.artists {
		exported := exportedArtist{
			OldArtistID: am.OldID,
			NewArtistID: am.NewID,
		}
		if len(am.LineUps) > 0 {
			exported.LineUps = make(map[string]exportedLineUp, len(am.LineUps))
			for index, newID := range am.LineUps {
				exported.LineUps[fmt.Sprint(index)] = exportedLineUp{
					OldLineUpID: index,
					NewLineUpID: newID,
				}
			}
		}
		out[oldID] = exported
	}

	b, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("error encoding id mapping: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("error writing id mapping to '%s': %w", path, err)
	}
	return nil
}
