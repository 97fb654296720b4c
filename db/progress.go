package db

import "fmt"

func (db *DB) count(table string) (int, error) {
	var count int64
	if err := db.Table(table).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return int(count), nil
}

func (db *DB) CountArtists() (int, error)     { return db.count("artists") }
func (db *DB) CountArtistNames() (int, error) { return db.count("artist_names") }
func (db *DB) CountLineUps() (int, error)     { return db.count("line_ups") }
func (db *DB) CountMemberships() (int, error) { return db.count("memberships") }
func (db *DB) CountAnimes() (int, error)      { return db.count("animes") }
func (db *DB) CountAnimeNames() (int, error)  { return db.count("anime_names") }
func (db *DB) CountTags() (int, error)        { return db.count("tags") }
func (db *DB) CountGenres() (int, error)      { return db.count("genres") }
func (db *DB) CountSongs() (int, error)       { return db.count("songs") }
func (db *DB) CountSongCredits() (int, error) { return db.count("song_credits") }

func (db *DB) CountGroupArtists() (int, error) {
	var count int64
	if err := db.
		Table("artists").
		Where("kind = ?", 2).
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("error counting group artists: %w", err)
	}
	return int(count), nil
}
