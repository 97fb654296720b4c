// Package importer seeds a normalized catalog from the two raw dumps.
//
// The artist dump is a graph with forward references: a group's roster can
// point at a line-up of another group that appears later in the dump, and at
// the member's own historical line-up. The importer therefore materializes
// the graph in fixed passes over the whole dump rather than one pass per
// record: artists and their names first (building the old-to-new id
// mapping), then a line-up shell per roster, then the memberships that
// reference those shells, and only then the animes, songs, and credits that
// resolve through the completed mapping.
//
// The entire run happens in one transaction. Surrogate ids are visible to
// later lookups in the run, but nothing is durable until the final commit,
// so an aborted run leaves the store untouched.
package importer

import (
	"context"
	"fmt"
	"log"

	"github.com/amonks/anisong/db"
	"github.com/amonks/anisong/raw"
)

// Options configures one import run.
type Options struct {
	// SongsPath and ArtistsPath locate the two dumps.
	SongsPath   string
	ArtistsPath string

	// MappingPath is where the old-to-new id mapping is written for
	// auditing, just before commit.
	MappingPath string

	// StrictMemberships makes a roster member that is missing from the
	// artist dump fatal instead of a logged skip.
	StrictMemberships bool
}

// Run executes the whole pipeline: load, four materialization passes,
// mapping export, commit. The target store is expected to be fresh; the run
// is not idempotent and re-running over populated tables trips the
// uniqueness constraints.
func Run(ctx context.Context, database *db.DB, opts Options) error {
	artists, err := raw.LoadArtists(opts.ArtistsPath)
	if err != nil {
		return err
	}
	animes, err := raw.LoadAnimes(opts.SongsPath)
	if err != nil {
		return err
	}
	order := raw.SortedIDs(artists)

	return database.ImportTx(func(tx *db.Tx) error {
		m := NewMapping()

		if err := insertArtists(ctx, tx, artists, order, m); err != nil {
			return err
		}
		log.Printf("inserted %d artists", len(artists))

		if err := insertLineUps(ctx, tx, artists, order, m); err != nil {
			return err
		}

		skipped, err := insertMemberships(ctx, tx, artists, order, m, opts.StrictMemberships)
		if err != nil {
			return err
		}
		if skipped > 0 {
			log.Printf("skipped %d memberships with unknown members", skipped)
		}
		log.Printf("inserted line-ups and memberships")

		if err := insertAnimes(ctx, tx, animes, m); err != nil {
			return err
		}
		log.Printf("inserted %d animes", len(animes))

		if opts.MappingPath != "" {
			if err := m.Export(opts.MappingPath); err != nil {
				return fmt.Errorf("error exporting id mapping: %w", err)
			}
		}

		return nil
	})
}
