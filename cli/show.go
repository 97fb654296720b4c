package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/amonks/anisong/db"
	"github.com/amonks/anisong/subcmd"
)

func show(ctx context.Context, db *db.DB, args []string) error {
	subcmd := subcmd.New("show", "print one anime with its names, tags, genres, songs, and credits").
		SetArg("ann-id", "int", "the anime's external ANN id")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	if subcmd.NArg() != 1 {
		subcmd.Usage()
		return fmt.Errorf("expected one ann id")
	}
	annID, err := strconv.ParseInt(subcmd.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("bad ann id '%s': %w", subcmd.Arg(0), err)
	}

	anime, err := db.GetAnime(ctx, annID)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(anime, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}
