package data

// Artists holds one row per performer or group from the artist dump. Display
// names live in artist_names; an artist with no surviving names is legal at
// this layer.
type Artist struct {
	ID   int64
	Kind ArtistKind
}

// ArtistNames holds the ordered alternate names of an artist. Position is
// 1-based; by convention position 1 is the primary name. Names are scoped to
// their artist and deliberately not deduplicated across artists.
type ArtistName struct {
	ID       int64
	ArtistID int64
	Name     string
	Position int64
}
