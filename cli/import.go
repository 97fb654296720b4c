package main

import (
	"context"
	"fmt"

	"github.com/amonks/anisong/db"
	"github.com/amonks/anisong/importer"
	"github.com/amonks/anisong/subcmd"
)

func runImport(ctx context.Context, db *db.DB, args []string) error {
	subcmd := subcmd.New("import", "seed the database from the raw json dumps\nthe target database must be empty; a failed run leaves it untouched")
	var (
		songs   = subcmd.String("songs", "song_database.json", "path to the song dump")
		artists = subcmd.String("artists", "artist_database.json", "path to the artist dump")
		mapping = subcmd.String("mapping", "artist_id_mapping.json", "where to write the old-to-new id mapping ('' to skip)")
		strict  = subcmd.Bool("strict-members", false, "fail on roster members missing from the artist dump instead of skipping them")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if err := importer.Run(ctx, db, importer.Options{
		SongsPath:         *songs,
		ArtistsPath:       *artists,
		MappingPath:       *mapping,
		StrictMemberships: *strict,
	}); err != nil {
		return fmt.Errorf("import error: %w", err)
	}

	return nil
}
