package importer

import (
	"context"
	"fmt"

	"github.com/amonks/anisong/data"
	"github.com/amonks/anisong/db"
	"github.com/amonks/anisong/raw"
)

// insertAnimes materializes every anime with its names, deduplicated tags
// and genres, songs, and song credits. It runs strictly after the artist
// passes: credits resolve through the completed mapping, and unlike
// membership resolution, a credit naming an unknown artist is always fatal.
func insertAnimes(ctx context.Context, tx *db.Tx, animes []raw.Anime, m *Mapping) error {
	for _, entry := range animes {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("canceled: %w", err)
		}
		if err := insertAnime(tx, entry, m); err != nil {
			return fmt.Errorf("anime %d ('%s'): %w", entry.AnnID, entry.ExpandName, err)
		}
	}
	return nil
}

func insertAnime(tx *db.Tx, entry raw.Anime, m *Mapping) error {
	if entry.ExpandName == "" {
		return fmt.Errorf("no expand name")
	}

	if existing, err := tx.FindAnimeByAnnID(entry.AnnID); err != nil {
		return err
	} else if existing != nil {
		return ErrDuplicateAnime
	}

	var category *data.AnimeCategory
	if entry.Type != nil {
		parsed, err := data.ParseAnimeCategory(*entry.Type)
		if err != nil {
			return err
		}
		category = &parsed
	}

	anime := data.Anime{
		AnnID:    entry.AnnID,
		Category: category,
		Vintage:  optional(entry.Vintage),
	}
	if err := tx.InsertAnime(&anime); err != nil {
		return err
	}

	if err := insertAnimeNames(tx, anime.ID, entry); err != nil {
		return err
	}
	if err := insertAnimeVocabulary(tx, anime.ID, entry); err != nil {
		return err
	}

	for _, song := range entry.Songs {
		if err := insertSong(tx, anime.ID, song, m); err != nil {
			return fmt.Errorf("song '%s': %w", song.Name, err)
		}
	}

	return nil
}

func insertAnimeNames(tx *db.Tx, animeID int64, entry raw.Anime) error {
	names := []data.AnimeName{
		{AnimeID: animeID, Kind: data.NameCanonical, Name: entry.ExpandName},
	}
	if entry.JPName != "" {
		names = append(names, data.AnimeName{AnimeID: animeID, Kind: data.NameNative, Name: entry.JPName})
	}
	if entry.ENName != "" {
		names = append(names, data.AnimeName{AnimeID: animeID, Kind: data.NameLocalized, Name: entry.ENName})
	}
	for _, alt := range entry.AltNames {
		names = append(names, data.AnimeName{AnimeID: animeID, Kind: data.NameAlternate, Name: alt})
	}

	for i := range names {
		if err := tx.InsertAnimeName(&names[i]); err != nil {
			return err
		}
	}
	return nil
}

// insertAnimeVocabulary links the anime to its tags and genres, creating
// vocabulary rows on first sight of each label. Dedup is by exact label and
// global across the whole run: the find sees rows inserted for earlier
// animes in the same transaction.
func insertAnimeVocabulary(tx *db.Tx, animeID int64, entry raw.Anime) error {
	for _, label := range entry.Tags {
		tag, err := tx.FindTag(label)
		if err != nil {
			return err
		}
		if tag == nil {
			tag = &data.Tag{Label: label}
			if err := tx.InsertTag(tag); err != nil {
				return err
			}
		}
		if err := tx.InsertAnimeTag(&data.AnimeTag{AnimeID: animeID, TagID: tag.ID}); err != nil {
			return err
		}
	}

	for _, label := range entry.Genres {
		genre, err := tx.FindGenre(label)
		if err != nil {
			return err
		}
		if genre == nil {
			genre = &data.Genre{Label: label}
			if err := tx.InsertGenre(genre); err != nil {
				return err
			}
		}
		if err := tx.InsertAnimeGenre(&data.AnimeGenre{AnimeID: animeID, GenreID: genre.ID}); err != nil {
			return err
		}
	}

	return nil
}

func insertSong(tx *db.Tx, animeID int64, entry raw.Song, m *Mapping) error {
	var category *data.SongCategory
	if entry.Category != nil {
		parsed, err := data.ParseSongCategory(*entry.Category)
		if err != nil {
			return err
		}
		category = &parsed
	}

	var trackNumber *int64
	if entry.Number != 0 {
		n := int64(entry.Number)
		trackNumber = &n
	}

	song := data.Song{
		AnimeID:         animeID,
		Type:            int64(entry.Type),
		Category:        category,
		TrackNumber:     trackNumber,
		Title:           entry.Name,
		CreditedArtists: entry.Artist,
		Difficulty:      entry.Difficulty,
		HQ:              optional(entry.Links.HQ),
		MQ:              optional(entry.Links.MQ),
		Audio:           optional(entry.Links.Audio),
	}
	if err := tx.InsertSong(&song); err != nil {
		return err
	}

	for _, ref := range entry.Performers {
		artist, ok := m.Artist(ref.ArtistID)
		if !ok {
			return fmt.Errorf("performer %s: %w", ref.ArtistID, ErrUnknownArtist)
		}

		var lineUpID *int64
		if ref.LineUp != -1 {
			id, ok := artist.LineUps[ref.LineUp]
			if !ok {
				return fmt.Errorf("performer %s line-up %d: %w", ref.ArtistID, ref.LineUp, ErrUnknownLineUp)
			}
			lineUpID = &id
		}

		if err := tx.InsertSongCredit(&data.SongCredit{
			SongID:         song.ID,
			ArtistID:       artist.NewID,
			ArtistLineUpID: lineUpID,
			Role:           data.RoleVocalist,
		}); err != nil {
			return err
		}
	}

	// composer and arranger refs carry a line-up slot too, but it is
	// meaningless for those roles and the legacy importer ignored it
	for _, ref := range entry.Composers {
		if err := insertPlainCredit(tx, song.ID, ref, data.RoleComposer, m); err != nil {
			return err
		}
	}
	for _, ref := range entry.Arrangers {
		if err := insertPlainCredit(tx, song.ID, ref, data.RoleArranger, m); err != nil {
			return err
		}
	}

	return nil
}

func insertPlainCredit(tx *db.Tx, songID int64, ref raw.Ref, role data.Role, m *Mapping) error {
	artist, ok := m.Artist(ref.ArtistID)
	if !ok {
		return fmt.Errorf("%s %s: %w", role, ref.ArtistID, ErrUnknownArtist)
	}
	return tx.InsertSongCredit(&data.SongCredit{
		SongID:   songID,
		ArtistID: artist.NewID,
		Role:     role,
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
