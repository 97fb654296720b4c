package data

// Animes holds one row per show. AnnID is the source system's permanent
// identifier and is unique across the whole catalog.
type Anime struct {
	ID       int64
	AnnID    int64
	Category *AnimeCategory
	Vintage  *string
}

// AnimeNames holds the kind-tagged display names of an anime. Every anime has
// exactly one NameCanonical row; the other kinds are optional.
type AnimeName struct {
	ID      int64
	AnimeID int64
	Kind    NameKind
	Name    string
}

// Tags is a global deduplicated vocabulary shared by all animes via
// anime_tags.
type Tag struct {
	ID    int64
	Label string
}

// Genres is a global deduplicated vocabulary shared by all animes via
// anime_genres.
type Genre struct {
	ID    int64
	Label string
}

// An AnimeTag represents a many-to-many relationship between animes and tags.
type AnimeTag struct {
	AnimeID int64
	TagID   int64
}

// An AnimeGenre represents a many-to-many relationship between animes and
// genres.
type AnimeGenre struct {
	AnimeID int64
	GenreID int64
}
