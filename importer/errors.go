package importer

import "errors"

var (
	// ErrUnknownArtist means a membership or credit referenced a raw
	// artist id that is not in the artist dump.
	ErrUnknownArtist = errors.New("unknown artist id")

	// ErrUnknownLineUp means a reference named a roster index that the
	// referenced artist does not have. This is always malformed data.
	ErrUnknownLineUp = errors.New("unknown line-up index")

	// ErrDuplicateAnime means two entries of the song dump (or an entry
	// and a previously imported row) share an ANN id.
	ErrDuplicateAnime = errors.New("duplicate ann id")
)
