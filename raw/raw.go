// Package raw decodes the two source dumps, song_database.json and
// artist_database.json, into memory. It keeps the source system's shapes and
// identifiers intact; normalization happens in the importer.
package raw

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

// A Ref is one element of the dumps' credit and roster lists: a 2-tuple of
// an artist's old id and an index into that artist's own roster list, or -1
// when no roster applies. Old ids appear both as JSON numbers and as strings
// depending on the dump; they normalize to the string form used for
// artist_database keys.
type Ref struct {
	ArtistID string
	LineUp   int
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("ref has %d elements, want 2", len(parts))
	}

	var num json.Number
	if err := json.Unmarshal(parts[0], &num); err == nil {
		r.ArtistID = num.String()
	} else if err := json.Unmarshal(parts[0], &r.ArtistID); err != nil {
		return fmt.Errorf("bad artist id in ref: %w", err)
	}

	if err := json.Unmarshal(parts[1], &r.LineUp); err != nil {
		return fmt.Errorf("bad line-up index in ref: %w", err)
	}
	return nil
}

// An Artist is one entry of artist_database.json. Members is empty for solo
// artists; for groups it holds one roster per historical line-up, each roster
// a list of member refs.
type Artist struct {
	Names   []string `json:"names"`
	Members [][]Ref  `json:"members"`
}

// A Song is one entry of an anime's song list in song_database.json.
type Song struct {
	Type   int    `json:"songType"`
	Number int    `json:"songNumber"`
	Name   string `json:"songName"`
	Artist string `json:"songArtist"`

	// Category is nil when absent; a present but unmapped value (the
	// empty string included) is a data error downstream
	Category   *string  `json:"songCategory"`
	Difficulty *float64 `json:"songDifficulty"`
	Links      Links    `json:"links"`
	Performers []Ref    `json:"artist_ids"`
	Composers  []Ref    `json:"composer_ids"`
	Arrangers  []Ref    `json:"arranger_ids"`
}

// Links holds a song's media urls by quality. Every field is optional.
type Links struct {
	HQ    string `json:"HQ"`
	MQ    string `json:"MQ"`
	Audio string `json:"audio"`
}

// An Anime is one entry of song_database.json.
type Anime struct {
	AnnID int64 `json:"annId"`

	// Type is nil when absent; like Song.Category, any present but
	// unmapped value is a data error downstream
	Type       *string  `json:"animeType"`
	Vintage    string   `json:"animeVintage"`
	ExpandName string   `json:"animeExpandName"`
	JPName     string   `json:"animeJPName"`
	ENName     string   `json:"animeENName"`
	AltNames   []string `json:"altNames"`
	Tags       []string `json:"tags"`
	Genres     []string `json:"genres"`
	Songs      []Song   `json:"songs"`
}

// LoadAnimes reads song_database.json.
func LoadAnimes(path string) ([]Anime, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading song database at '%s': %w", path, err)
	}
	var animes []Anime
	if err := json.Unmarshal(b, &animes); err != nil {
		return nil, fmt.Errorf("error decoding song database at '%s': %w", path, err)
	}
	return animes, nil
}

// LoadArtists reads artist_database.json, keyed by old artist id.
func LoadArtists(path string) (map[string]Artist, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading artist database at '%s': %w", path, err)
	}
	artists := map[string]Artist{}
	if err := json.Unmarshal(b, &artists); err != nil {
		return nil, fmt.Errorf("error decoding artist database at '%s': %w", path, err)
	}
	return artists, nil
}

// SortedIDs returns the artist map's keys in a stable order: numerically
// where the ids parse as integers (they normally all do), lexically
// otherwise. The importer walks artists in this order so that repeated runs
// over the same dumps assign the same surrogate keys.
func SortedIDs(artists map[string]Artist) []string {
	ids := make([]string, 0, len(artists))
	for id := range artists {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aerr := strconv.Atoi(ids[i])
		b, berr := strconv.Atoi(ids[j])
		if aerr == nil && berr == nil {
			if a != b {
				return a < b
			}
			// distinct keys can parse alike, "07" and "7"
			return ids[i] < ids[j]
		}
		if aerr == nil || berr == nil {
			return aerr == nil
		}
		return ids[i] < ids[j]
	})
	return ids
}
