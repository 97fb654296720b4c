package data

// Songs holds one row per song occurrence on an anime. Type is the source
// system's song-type id, stored as given. CreditedArtists echoes the dump's
// free-text artist string; the structured credits live in song_credits.
//
// TrackNumber is nil when the dump gives no number (or zero).
type Song struct {
	ID              int64
	AnimeID         int64
	Type            int64
	Category        *SongCategory
	TrackNumber     *int64
	Title           string
	CreditedArtists string
	Difficulty      *float64

	// media links by quality, each absent for some songs
	HQ    *string
	MQ    *string
	Audio *string
}

// SongCredits link songs to the artists credited on them. ArtistLineUpID
// pins the credit to the artist's historical line-up when the dump knows it;
// composer and arranger credits never carry one.
type SongCredit struct {
	ID             int64
	SongID         int64
	ArtistID       int64
	ArtistLineUpID *int64
	Role           Role
}
