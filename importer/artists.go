package importer

import (
	"context"
	"fmt"
	"log"

	"github.com/amonks/anisong/data"
	"github.com/amonks/anisong/db"
	"github.com/amonks/anisong/raw"
)

// insertArtists is the identity pass: one artist row per dump entry, one
// name row per alternate name, and a mapping entry for every raw id. After
// this pass every raw artist id resolves, even for artists with no songs or
// memberships.
func insertArtists(ctx context.Context, tx *db.Tx, artists map[string]raw.Artist, order []string, m *Mapping) error {
	for _, oldID := range order {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("canceled: %w", err)
		}

		entry := artists[oldID]

		kind := data.ArtistSolo
		if len(entry.Members) > 0 {
			kind = data.ArtistGroup
		}

		artist := data.Artist{Kind: kind}
		if err := tx.InsertArtist(&artist); err != nil {
			return err
		}
		m.AddArtist(oldID, artist.ID)

		for i, name := range entry.Names {
			if err := tx.InsertArtistName(&data.ArtistName{
				ArtistID: artist.ID,
				Name:     name,
				Position: int64(i + 1),
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// insertLineUps creates an empty line-up row per roster of every group
// artist, extending the mapping. It runs over all artists before any
// membership is inserted: rosters can reference line-ups of groups that
// appear later in the dump, so every shell has to exist first.
func insertLineUps(ctx context.Context, tx *db.Tx, artists map[string]raw.Artist, order []string, m *Mapping) error {
	for _, oldID := range order {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("canceled: %w", err)
		}

		entry := artists[oldID]
		if len(entry.Members) == 0 {
			continue
		}

		am, ok := m.Artist(oldID)
		if !ok {
			return fmt.Errorf("group %s: %w", oldID, ErrUnknownArtist)
		}

		for index := range entry.Members {
			lineUp := data.LineUp{ArtistID: am.NewID}
			if err := tx.InsertLineUp(&lineUp); err != nil {
				return err
			}
			am.LineUps[index] = lineUp.ID
		}
	}
	return nil
}

// insertMemberships fills the line-up shells: one membership row per
// (group, roster, member) triple.
//
// A member ref carries the member's own roster index, -1 when the member had
// no line-up of its own at the time. A known member naming a roster index it
// does not have is malformed data and fatal. A member id that is missing
// from the dump entirely is skipped with a warning unless strict is set; the
// legacy importer tolerated those.
func insertMemberships(ctx context.Context, tx *db.Tx, artists map[string]raw.Artist, order []string, m *Mapping, strict bool) (skipped int, err error) {
	for _, oldID := range order {
		if err := ctx.Err(); err != nil {
			return skipped, fmt.Errorf("canceled: %w", err)
		}

		entry := artists[oldID]
		if len(entry.Members) == 0 {
			continue
		}

		group, ok := m.Artist(oldID)
		if !ok {
			return skipped, fmt.Errorf("group %s: %w", oldID, ErrUnknownArtist)
		}

		for index, roster := range entry.Members {
			groupLineUpID, ok := group.LineUps[index]
			if !ok {
				return skipped, fmt.Errorf("group %s roster %d: %w", oldID, index, ErrUnknownLineUp)
			}

			for _, ref := range roster {
				member, ok := m.Artist(ref.ArtistID)
				if !ok {
					if strict {
						return skipped, fmt.Errorf("group %s roster %d member %s: %w",
							oldID, index, ref.ArtistID, ErrUnknownArtist)
					}
					log.Printf("skipping member %s of group %s roster %d: not in artist database",
						ref.ArtistID, oldID, index)
					skipped++
					continue
				}

				var memberLineUpID *int64
				if ref.LineUp != -1 {
					id, ok := member.LineUps[ref.LineUp]
					if !ok {
						return skipped, fmt.Errorf("member %s line-up %d (in group %s roster %d): %w",
							ref.ArtistID, ref.LineUp, oldID, index, ErrUnknownLineUp)
					}
					memberLineUpID = &id
				}

				if err := tx.InsertMembership(&data.Membership{
					MemberArtistID: member.NewID,
					MemberLineUpID: memberLineUpID,
					Role:           data.RoleVocalist,
					GroupArtistID:  group.NewID,
					GroupLineUpID:  groupLineUpID,
				}); err != nil {
					return skipped, err
				}
			}
		}
	}
	return skipped, nil
}
