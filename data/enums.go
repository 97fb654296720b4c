package data

import "fmt"

// ArtistKind distinguishes solo performers from groups. Only groups own
// line-ups.
type ArtistKind int64

const (
	ArtistSolo  ArtistKind = 1
	ArtistGroup ArtistKind = 2
)

// AnimeCategory is the closed set of broadcast formats found in the source
// dumps.
type AnimeCategory int64

const (
	AnimeTV AnimeCategory = iota + 1
	AnimeMovie
	AnimeOVA
	AnimeONA
	AnimeSpecial
)

// ParseAnimeCategory maps a raw "animeType" value onto an AnimeCategory. An
// absent value is handled by the caller (nullable column); a present but
// unrecognized value is a data error.
func ParseAnimeCategory(s string) (AnimeCategory, error) {
	switch s {
	case "TV":
		return AnimeTV, nil
	case "movie":
		return AnimeMovie, nil
	case "OVA":
		return AnimeOVA, nil
	case "ONA":
		return AnimeONA, nil
	case "special":
		return AnimeSpecial, nil
	default:
		return 0, fmt.Errorf("unknown anime type '%s'", s)
	}
}

// NameKind tags each of an anime's display names.
type NameKind int64

const (
	// NameCanonical is the mandatory "expand" name; exactly one per anime.
	NameCanonical NameKind = iota + 1
	// NameNative is the Japanese name, when present.
	NameNative
	// NameLocalized is the English name, when present.
	NameLocalized
	// NameAlternate rows come from the optional alt-name list, zero or more.
	NameAlternate
)

// SongCategory is the closed set of song categories found in the source
// dumps.
type SongCategory int64

const (
	SongStandard SongCategory = iota + 1
	SongChanting
	SongCharacter
	SongInstrumental
)

func ParseSongCategory(s string) (SongCategory, error) {
	switch s {
	case "Standard":
		return SongStandard, nil
	case "Chanting":
		return SongChanting, nil
	case "Character":
		return SongCharacter, nil
	case "Instrumental":
		return SongInstrumental, nil
	default:
		return 0, fmt.Errorf("unknown song category '%s'", s)
	}
}

// Role qualifies membership and song-credit edges. The importer only ever
// assigns Vocalist, Composer, and Arranger; the other roles exist for the
// surrounding admin tooling to use.
type Role int64

const (
	RoleVocalist Role = iota + 1
	RoleBackingVocals
	RolePerformer
	RoleComposer
	RoleArranger
)

func (r Role) String() string {
	switch r {
	case RoleVocalist:
		return "vocalist"
	case RoleBackingVocals:
		return "backing vocals"
	case RolePerformer:
		return "performer"
	case RoleComposer:
		return "composer"
	case RoleArranger:
		return "arranger"
	default:
		return fmt.Sprintf("role(%d)", int64(r))
	}
}
