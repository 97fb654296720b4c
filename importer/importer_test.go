package importer_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/amonks/anisong/data"
	"github.com/amonks/anisong/db"
	"github.com/amonks/anisong/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

// runImport writes the given fixtures as json dumps and imports them,
// returning the path of the exported mapping file alongside the run's error.
func runImport(t *testing.T, d *db.DB, artists, animes any, strict bool) (string, error) {
	t.Helper()
	dir := t.TempDir()

	write := func(name string, v any) string {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, b, 0o644))
		return path
	}

	mappingPath := filepath.Join(dir, "artist_id_mapping.json")
	err := importer.Run(context.Background(), d, importer.Options{
		SongsPath:         write("song_database.json", animes),
		ArtistsPath:       write("artist_database.json", artists),
		MappingPath:       mappingPath,
		StrictMemberships: strict,
	})
	return mappingPath, err
}

type mappedLineUp struct {
	OldLineUpID int   `json:"old_line_up_id"`
	NewLineUpID int64 `json:"new_line_up_id"`
}

type mappedArtist struct {
	OldArtistID string                  `json:"old_artist_id"`
	NewArtistID int64                   `json:"new_artist_id"`
	LineUps     map[string]mappedLineUp `json:"line_ups"`
}

func loadMapping(t *testing.T, path string) map[string]mappedArtist {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var m map[string]mappedArtist
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func solo(names ...string) map[string]any {
	return map[string]any{"names": names, "members": []any{}}
}

func group(names []string, rosters ...[]any) map[string]any {
	members := []any{}
	for _, roster := range rosters {
		members = append(members, roster)
	}
	return map[string]any{"names": names, "members": members}
}

func ref(artistID any, lineUp int) []any { return []any{artistID, lineUp} }

func noAnimes() []any { return []any{} }

func TestMappingCompleteness(t *testing.T) {
	d := newDB(t)

	// artist 3 has no songs and no memberships; it still gets a row and
	// a mapping entry
	mappingPath, err := runImport(t, d, map[string]any{
		"1": solo("Yoko Takahashi", "高橋洋子"),
		"2": group([]string{"JAM Project"}, []any{ref("1", -1)}),
		"3": solo("Nobody"),
	}, noAnimes(), false)
	require.NoError(t, err)

	mapping := loadMapping(t, mappingPath)
	require.Len(t, mapping, 3)

	var artists []data.Artist
	require.NoError(t, d.Find(&artists).Error)
	require.Len(t, artists, 3)

	kinds := map[int64]data.ArtistKind{}
	for _, artist := range artists {
		kinds[artist.ID] = artist.Kind
	}
	assert.Equal(t, data.ArtistSolo, kinds[mapping["1"].NewArtistID])
	assert.Equal(t, data.ArtistGroup, kinds[mapping["2"].NewArtistID])
	assert.Equal(t, data.ArtistSolo, kinds[mapping["3"].NewArtistID])

	var names []data.ArtistName
	require.NoError(t, d.Order("position asc").Find(&names, "artist_id = ?", mapping["1"].NewArtistID).Error)
	require.Len(t, names, 2)
	assert.Equal(t, "Yoko Takahashi", names[0].Name)
	assert.EqualValues(t, 1, names[0].Position)
	assert.Equal(t, "高橋洋子", names[1].Name)
	assert.EqualValues(t, 2, names[1].Position)
}

func TestLineUpOwnership(t *testing.T) {
	d := newDB(t)

	mappingPath, err := runImport(t, d, map[string]any{
		"1": solo("Member A"),
		"2": solo("Member B"),
		"3": group([]string{"Duo"},
			[]any{ref("1", -1)},
			[]any{ref("1", -1), ref("2", -1)},
		),
	}, noAnimes(), false)
	require.NoError(t, err)

	mapping := loadMapping(t, mappingPath)
	require.Len(t, mapping["3"].LineUps, 2)

	var lineUps []data.LineUp
	require.NoError(t, d.Find(&lineUps).Error)
	require.Len(t, lineUps, 2)
	for _, lineUp := range lineUps {
		assert.Equal(t, mapping["3"].NewArtistID, lineUp.ArtistID)
	}
}

func TestMembershipSentinel(t *testing.T) {
	d := newDB(t)

	mappingPath, err := runImport(t, d, map[string]any{
		"1": solo("A"),
		"2": group([]string{"Solo Project"}, []any{ref("1", -1)}),
	}, noAnimes(), false)
	require.NoError(t, err)
	mapping := loadMapping(t, mappingPath)

	var memberships []data.Membership
	require.NoError(t, d.Find(&memberships).Error)
	require.Len(t, memberships, 1)

	membership := memberships[0]
	assert.Equal(t, mapping["1"].NewArtistID, membership.MemberArtistID)
	assert.Nil(t, membership.MemberLineUpID)
	assert.Equal(t, data.RoleVocalist, membership.Role)
	assert.Equal(t, mapping["2"].NewArtistID, membership.GroupArtistID)
	assert.Equal(t, mapping["2"].LineUps["0"].NewLineUpID, membership.GroupLineUpID)
}

// a roster can name a line-up of a group that appears later in the dump; the
// shell pass runs over every artist before any membership resolves, so the
// reference works regardless of order.
func TestForwardLineUpReference(t *testing.T) {
	d := newDB(t)

	mappingPath, err := runImport(t, d, map[string]any{
		"1": group([]string{"Supergroup"}, []any{ref("2", 0)}),
		"2": group([]string{"Unit"}, []any{ref("3", -1)}),
		"3": solo("C"),
	}, noAnimes(), false)
	require.NoError(t, err)
	mapping := loadMapping(t, mappingPath)

	var membership data.Membership
	require.NoError(t, d.
		Where("group_artist_id = ?", mapping["1"].NewArtistID).
		First(&membership).
		Error)
	require.NotNil(t, membership.MemberLineUpID)
	assert.Equal(t, mapping["2"].LineUps["0"].NewLineUpID, *membership.MemberLineUpID)
	assert.Equal(t, mapping["2"].NewArtistID, membership.MemberArtistID)
}

func TestMembershipUnknownRosterIndexIsFatal(t *testing.T) {
	d := newDB(t)

	// "2" exists but has no roster 5
	_, err := runImport(t, d, map[string]any{
		"1": group([]string{"G"}, []any{ref("2", 5)}),
		"2": group([]string{"H"}, []any{ref("3", -1)}),
		"3": solo("C"),
	}, noAnimes(), false)
	require.ErrorIs(t, err, importer.ErrUnknownLineUp)
}

func TestMembershipLeniency(t *testing.T) {
	artists := map[string]any{
		"1": solo("A"),
		"2": group([]string{"G"}, []any{ref("1", -1), ref("99", -1)}),
	}

	t.Run("lenient skips unknown members", func(t *testing.T) {
		d := newDB(t)
		_, err := runImport(t, d, artists, noAnimes(), false)
		require.NoError(t, err)

		var memberships []data.Membership
		require.NoError(t, d.Find(&memberships).Error)
		assert.Len(t, memberships, 1)
	})

	t.Run("strict fails on unknown members", func(t *testing.T) {
		d := newDB(t)
		_, err := runImport(t, d, artists, noAnimes(), true)
		require.ErrorIs(t, err, importer.ErrUnknownArtist)

		var count int64
		require.NoError(t, d.Table("artists").Count(&count).Error)
		assert.Zero(t, count, "failed run must leave the store untouched")
	})
}

func TestAnimeNameRows(t *testing.T) {
	d := newDB(t)

	_, err := runImport(t, d, map[string]any{}, []any{
		map[string]any{
			"annId":           100,
			"animeExpandName": "Foo",
			"animeENName":     "Foo EN",
			"altNames":        []string{"Foo Alt"},
			"songs":           []any{},
		},
	}, false)
	require.NoError(t, err)

	var names []data.AnimeName
	require.NoError(t, d.Order("kind asc").Find(&names).Error)
	require.Len(t, names, 3)
	assert.Equal(t, data.NameCanonical, names[0].Kind)
	assert.Equal(t, "Foo", names[0].Name)
	assert.Equal(t, data.NameLocalized, names[1].Kind)
	assert.Equal(t, "Foo EN", names[1].Name)
	assert.Equal(t, data.NameAlternate, names[2].Kind)
	assert.Equal(t, "Foo Alt", names[2].Name)
}

func TestTagAndGenreDeduplication(t *testing.T) {
	d := newDB(t)

	_, err := runImport(t, d, map[string]any{}, []any{
		map[string]any{
			"annId":           1,
			"animeExpandName": "First",
			"tags":            []string{"Isekai", "Fantasy"},
			"genres":          []string{"Adventure"},
			"songs":           []any{},
		},
		map[string]any{
			"annId":           2,
			"animeExpandName": "Second",
			"tags":            []string{"Isekai"},
			"genres":          []string{"Adventure"},
			"songs":           []any{},
		},
	}, false)
	require.NoError(t, err)

	var tags []data.Tag
	require.NoError(t, d.Find(&tags).Error)
	assert.Len(t, tags, 2)

	var isekai data.Tag
	require.NoError(t, d.Where("label = ?", "Isekai").First(&isekai).Error)

	var links []data.AnimeTag
	require.NoError(t, d.Find(&links, "tag_id = ?", isekai.ID).Error)
	assert.Len(t, links, 2)

	var genres []data.Genre
	require.NoError(t, d.Find(&genres).Error)
	assert.Len(t, genres, 1)

	var genreLinks []data.AnimeGenre
	require.NoError(t, d.Find(&genreLinks).Error)
	assert.Len(t, genreLinks, 2)
}

func TestSongCreditResolution(t *testing.T) {
	d := newDB(t)

	// artist 7 performs in its roster-2 incarnation; refs mix string and
	// numeric old ids, both of which occur in the dumps
	mappingPath, err := runImport(t, d, map[string]any{
		"5": solo("Member"),
		"6": solo("Composer"),
		"7": group([]string{"Group"},
			[]any{ref(5, -1)},
			[]any{ref(5, -1)},
			[]any{ref(5, -1)},
		),
	}, []any{
		map[string]any{
			"annId":           10,
			"animeType":       "TV",
			"animeVintage":    "Spring 2006",
			"animeExpandName": "Show",
			"songs": []any{
				map[string]any{
					"songType":     1,
					"songNumber":   0,
					"songName":     "Opening",
					"songArtist":   "Group",
					"songCategory": "Standard",
					"links":        map[string]any{"HQ": "hq.webm"},
					"artist_ids":   []any{ref("7", 2)},
					"composer_ids": []any{ref(6, -1)},
					"arranger_ids": []any{ref("6", 3)},
				},
			},
		},
	}, false)
	require.NoError(t, err)
	mapping := loadMapping(t, mappingPath)

	var song data.Song
	require.NoError(t, d.First(&song).Error)
	assert.Nil(t, song.TrackNumber, "song number 0 normalizes to null")
	assert.Equal(t, "Opening", song.Title)
	assert.Equal(t, "Group", song.CreditedArtists)
	require.NotNil(t, song.Category)
	assert.Equal(t, data.SongStandard, *song.Category)
	require.NotNil(t, song.HQ)
	assert.Equal(t, "hq.webm", *song.HQ)
	assert.Nil(t, song.MQ)

	var credits []data.SongCredit
	require.NoError(t, d.Order("id asc").Find(&credits).Error)
	require.Len(t, credits, 3)

	performer := credits[0]
	assert.Equal(t, data.RoleVocalist, performer.Role)
	assert.Equal(t, mapping["7"].NewArtistID, performer.ArtistID)
	require.NotNil(t, performer.ArtistLineUpID)
	assert.Equal(t, mapping["7"].LineUps["2"].NewLineUpID, *performer.ArtistLineUpID)

	// the composer and arranger tuples carry a line-up slot, but it is
	// ignored for those roles
	composer, arranger := credits[1], credits[2]
	assert.Equal(t, data.RoleComposer, composer.Role)
	assert.Nil(t, composer.ArtistLineUpID)
	assert.Equal(t, data.RoleArranger, arranger.Role)
	assert.Nil(t, arranger.ArtistLineUpID)
	assert.Equal(t, mapping["6"].NewArtistID, arranger.ArtistID)
}

func TestUnknownCreditArtistIsFatal(t *testing.T) {
	d := newDB(t)

	_, err := runImport(t, d, map[string]any{
		"1": solo("A"),
	}, []any{
		map[string]any{
			"annId":           1,
			"animeExpandName": "First",
			"songs": []any{
				map[string]any{
					"songName":   "OK",
					"songArtist": "A",
					"artist_ids": []any{ref("1", -1)},
				},
			},
		},
		map[string]any{
			"annId":           2,
			"animeExpandName": "Second",
			"songs": []any{
				map[string]any{
					"songName":   "Broken",
					"songArtist": "?",
					"artist_ids": []any{ref("404", -1)},
				},
			},
		},
	}, false)
	require.ErrorIs(t, err, importer.ErrUnknownArtist)

	// nothing from the aborted run is visible, including the first anime
	// that imported cleanly before the failure
	for _, table := range []string{"artists", "animes", "anime_names", "songs", "song_credits"} {
		var count int64
		require.NoError(t, d.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}
}

func TestDuplicateAnnIDIsFatal(t *testing.T) {
	d := newDB(t)

	_, err := runImport(t, d, map[string]any{}, []any{
		map[string]any{"annId": 7, "animeExpandName": "One", "songs": []any{}},
		map[string]any{"annId": 7, "animeExpandName": "Two", "songs": []any{}},
	}, false)
	require.ErrorIs(t, err, importer.ErrDuplicateAnime)

	var count int64
	require.NoError(t, d.Table("animes").Count(&count).Error)
	assert.Zero(t, count)
}

// the songs unique index has to coalesce its nullable columns: with a plain
// unique constraint, sqlite would treat the NULL category and track number
// of two identical entries as distinct and let both rows in
func TestDuplicateSongKeyIsFatal(t *testing.T) {
	d := newDB(t)

	song := map[string]any{
		"songType":   1,
		"songNumber": 0,
		"songName":   "Opening",
		"songArtist": "Solo",
		"artist_ids": []any{ref("1", -1)},
	}
	_, err := runImport(t, d, map[string]any{
		"1": solo("Solo"),
	}, []any{
		map[string]any{
			"annId":           1,
			"animeExpandName": "Show",
			"songs":           []any{song, song},
		},
	}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Opening")

	for _, table := range []string{"artists", "animes", "songs", "song_credits"} {
		var count int64
		require.NoError(t, d.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}
}

func TestUnknownAnimeTypeIsFatal(t *testing.T) {
	// the legacy mapping fatals on any present unmapped value, the empty
	// string included; only a wholly absent animeType means null
	for name, animeType := range map[string]string{
		"unmapped": "radio drama",
		"empty":    "",
	} {
		t.Run(name, func(t *testing.T) {
			d := newDB(t)
			_, err := runImport(t, d, map[string]any{}, []any{
				map[string]any{"annId": 1, "animeType": animeType, "animeExpandName": "X", "songs": []any{}},
			}, false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unknown anime type")
		})
	}
}

func TestPresentButEmptySongCategoryIsFatal(t *testing.T) {
	d := newDB(t)

	_, err := runImport(t, d, map[string]any{}, []any{
		map[string]any{
			"annId":           1,
			"animeExpandName": "X",
			"songs": []any{
				map[string]any{
					"songName":     "Opening",
					"songArtist":   "?",
					"songCategory": "",
				},
			},
		},
	}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown song category")
}

func TestRepeatedRunsAssignSameIDs(t *testing.T) {
	artists := map[string]any{
		"10": solo("A"),
		"2":  group([]string{"G"}, []any{ref("10", -1)}),
		"31": solo("B"),
	}

	first := newDB(t)
	firstPath, err := runImport(t, first, artists, noAnimes(), false)
	require.NoError(t, err)

	second := newDB(t)
	secondPath, err := runImport(t, second, artists, noAnimes(), false)
	require.NoError(t, err)

	assert.Equal(t, loadMapping(t, firstPath), loadMapping(t, secondPath))
}
