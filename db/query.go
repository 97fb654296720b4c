package db

import (
	"context"
	"fmt"

	"github.com/amonks/anisong/data"
)

// An AnimeDetail is an anime with everything hanging off of it, assembled
// for display.
type AnimeDetail struct {
	data.Anime
	Names  []data.AnimeName
	Tags   []string
	Genres []string
	Songs  []SongDetail
}

// A SongDetail is a song with its credits resolved to artist names.
type SongDetail struct {
	data.Song
	Credits []CreditDetail
}

type CreditDetail struct {
	ArtistID int64
	Artist   string
	Role     string
	LineUpID *int64
}

// GetAnime assembles the full detail view of the anime with the given
// external id.
func (db *DB) GetAnime(ctx context.Context, annID int64) (*AnimeDetail, error) {
	var anime data.Anime
	if err := db.
		Where("ann_id = ?", annID).
		First(&anime).
		Error; err != nil {
		return nil, fmt.Errorf("error getting anime %d: %w", annID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("canceled: %w", err)
	}

	detail := &AnimeDetail{Anime: anime}

	if err := db.
		Where("anime_id = ?", anime.ID).
		Order("kind asc, id asc").
		Find(&detail.Names).
		Error; err != nil {
		return nil, fmt.Errorf("error getting names for anime %d: %w", annID, err)
	}

	if err := db.
		Table("tags").
		Joins("join anime_tags on anime_tags.tag_id = tags.id").
		Where("anime_tags.anime_id = ?", anime.ID).
		Order("tags.label asc").
		Pluck("tags.label", &detail.Tags).
		Error; err != nil {
		return nil, fmt.Errorf("error getting tags for anime %d: %w", annID, err)
	}

	if err := db.
		Table("genres").
		Joins("join anime_genres on anime_genres.genre_id = genres.id").
		Where("anime_genres.anime_id = ?", anime.ID).
		Order("genres.label asc").
		Pluck("genres.label", &detail.Genres).
		Error; err != nil {
		return nil, fmt.Errorf("error getting genres for anime %d: %w", annID, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("canceled: %w", err)
	}

	var songs []data.Song
	if err := db.
		Where("anime_id = ?", anime.ID).
		Order("id asc").
		Find(&songs).
		Error; err != nil {
		return nil, fmt.Errorf("error getting songs for anime %d: %w", annID, err)
	}

	for _, song := range songs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("canceled: %w", err)
		}

		var credits []data.SongCredit
		if err := db.
			Where("song_id = ?", song.ID).
			Order("id asc").
			Find(&credits).
			Error; err != nil {
			return nil, fmt.Errorf("error getting credits for song %d: %w", song.ID, err)
		}

		songDetail := SongDetail{Song: song}
		for _, credit := range credits {
			name, err := db.PrimaryArtistName(credit.ArtistID)
			if err != nil {
				return nil, err
			}
			songDetail.Credits = append(songDetail.Credits, CreditDetail{
				ArtistID: credit.ArtistID,
				Artist:   name,
				Role:     credit.Role.String(),
				LineUpID: credit.ArtistLineUpID,
			})
		}
		detail.Songs = append(detail.Songs, songDetail)
	}

	return detail, nil
}

// PrimaryArtistName returns the artist's position-1 display name, or "" if
// the artist has no names.
func (db *DB) PrimaryArtistName(artistID int64) (string, error) {
	var names []string
	if err := db.
		Table("artist_names").
		Where("artist_id = ? and position = 1", artistID).
		Limit(1).
		Pluck("name", &names).
		Error; err != nil {
		return "", fmt.Errorf("error getting primary name for artist %d: %w", artistID, err)
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[0], nil
}
