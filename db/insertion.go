package db

import (
	"errors"
	"fmt"

	"github.com/amonks/anisong/data"
	"gorm.io/gorm"
)

// InsertArtist inserts an artist row and back-fills its id.
func (tx *Tx) InsertArtist(artist *data.Artist) error {
	if err := tx.Create(artist).Error; err != nil {
		return fmt.Errorf("error inserting artist: %w", err)
	}
	return nil
}

func (tx *Tx) InsertArtistName(name *data.ArtistName) error {
	if name.Name == "" {
		return fmt.Errorf("no artist name")
	}
	if err := tx.Create(name).Error; err != nil {
		return fmt.Errorf("error inserting artist name '%s': %w", name.Name, err)
	}
	return nil
}

func (tx *Tx) InsertLineUp(lineUp *data.LineUp) error {
	if err := tx.Create(lineUp).Error; err != nil {
		return fmt.Errorf("error inserting line-up for artist %d: %w", lineUp.ArtistID, err)
	}
	return nil
}

func (tx *Tx) InsertMembership(membership *data.Membership) error {
	if err := tx.Create(membership).Error; err != nil {
		return fmt.Errorf("error inserting membership of artist %d in line-up %d: %w",
			membership.MemberArtistID, membership.GroupLineUpID, err)
	}
	return nil
}

func (tx *Tx) InsertAnime(anime *data.Anime) error {
	if err := tx.Create(anime).Error; err != nil {
		return fmt.Errorf("error inserting anime %d: %w", anime.AnnID, err)
	}
	return nil
}

func (tx *Tx) InsertAnimeName(name *data.AnimeName) error {
	if name.Name == "" {
		return fmt.Errorf("no anime name")
	}
	if err := tx.Create(name).Error; err != nil {
		return fmt.Errorf("error inserting anime name '%s': %w", name.Name, err)
	}
	return nil
}

// FindAnimeByAnnID returns the anime with the given external id, or nil if
// none exists yet.
func (tx *Tx) FindAnimeByAnnID(annID int64) (*data.Anime, error) {
	var anime data.Anime
	err := tx.Where("ann_id = ?", annID).First(&anime).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error looking up anime %d: %w", annID, err)
	}
	return &anime, nil
}

// FindTag returns the tag with the given label, or nil if none exists yet.
func (tx *Tx) FindTag(label string) (*data.Tag, error) {
	var tag data.Tag
	err := tx.Where("label = ?", label).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error looking up tag '%s': %w", label, err)
	}
	return &tag, nil
}

func (tx *Tx) InsertTag(tag *data.Tag) error {
	if tag.Label == "" {
		return fmt.Errorf("no tag label")
	}
	if err := tx.Create(tag).Error; err != nil {
		return fmt.Errorf("error inserting tag '%s': %w", tag.Label, err)
	}
	return nil
}

func (tx *Tx) InsertAnimeTag(link *data.AnimeTag) error {
	if err := tx.Create(link).Error; err != nil {
		return fmt.Errorf("error inserting anime tag {%d %d}: %w", link.AnimeID, link.TagID, err)
	}
	return nil
}

// FindGenre returns the genre with the given label, or nil if none exists
// yet.
func (tx *Tx) FindGenre(label string) (*data.Genre, error) {
	var genre data.Genre
	err := tx.Where("label = ?", label).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error looking up genre '%s': %w", label, err)
	}
	return &genre, nil
}

func (tx *Tx) InsertGenre(genre *data.Genre) error {
	if genre.Label == "" {
		return fmt.Errorf("no genre label")
	}
	if err := tx.Create(genre).Error; err != nil {
		return fmt.Errorf("error inserting genre '%s': %w", genre.Label, err)
	}
	return nil
}

func (tx *Tx) InsertAnimeGenre(link *data.AnimeGenre) error {
	if err := tx.Create(link).Error; err != nil {
		return fmt.Errorf("error inserting anime genre {%d %d}: %w", link.AnimeID, link.GenreID, err)
	}
	return nil
}

func (tx *Tx) InsertSong(song *data.Song) error {
	if song.Title == "" {
		return fmt.Errorf("no song title")
	}
	if err := tx.Create(song).Error; err != nil {
		return fmt.Errorf("error inserting song '%s': %w", song.Title, err)
	}
	return nil
}

func (tx *Tx) InsertSongCredit(credit *data.SongCredit) error {
	if err := tx.Create(credit).Error; err != nil {
		return fmt.Errorf("error inserting %s credit of artist %d on song %d: %w",
			credit.Role, credit.ArtistID, credit.SongID, err)
	}
	return nil
}
