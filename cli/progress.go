package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/amonks/anisong/db"
	"github.com/amonks/anisong/setflag"
	"github.com/amonks/anisong/subcmd"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var progressSections = []string{"artists", "animes", "songs"}

func progress(ctx context.Context, db *db.DB, args []string) error {
	subcmd := subcmd.New("progress", "report row counts from the catalog")
	only := setflag.New(progressSections...)
	subcmd.Var(only, "only", "comma-separated sections to report ('artists', 'animes', 'songs'; default all)")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if only.Has("artists") {
		artists, err := db.CountArtists()
		if err != nil {
			return err
		}
		groups, err := db.CountGroupArtists()
		if err != nil {
			return err
		}
		names, err := db.CountArtistNames()
		if err != nil {
			return err
		}
		lineUps, err := db.CountLineUps()
		if err != nil {
			return err
		}
		memberships, err := db.CountMemberships()
		if err != nil {
			return err
		}
		printSection("artists", artists, map[string]int{
			"groups":      groups,
			"names":       names,
			"line-ups":    lineUps,
			"memberships": memberships,
		})
	}

	if only.Has("animes") {
		animes, err := db.CountAnimes()
		if err != nil {
			return err
		}
		names, err := db.CountAnimeNames()
		if err != nil {
			return err
		}
		tags, err := db.CountTags()
		if err != nil {
			return err
		}
		genres, err := db.CountGenres()
		if err != nil {
			return err
		}
		printSection("animes", animes, map[string]int{
			"names":  names,
			"tags":   tags,
			"genres": genres,
		})
	}

	if only.Has("songs") {
		songs, err := db.CountSongs()
		if err != nil {
			return err
		}
		credits, err := db.CountSongCredits()
		if err != nil {
			return err
		}
		printSection("songs", songs, map[string]int{
			"credits": credits,
		})
	}

	return ctx.Err()
}

var humanPrinter = message.NewPrinter(language.English)

func printSection(name string, known int, related map[string]int) {
	humanPrinter.Printf("%s\n", strings.ToUpper(name))
	humanPrinter.Printf("  %d\tknown\n", known)
	for k, v := range related {
		humanPrinter.Printf("  %d\t%s\n", v, k)
	}
}
