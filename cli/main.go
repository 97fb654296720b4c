// this program maintains a sqlite3 database file holding a normalized
// anime-song catalog, seeded from the song_database.json and
// artist_database.json dumps.
//
// see db/schema.sql for info about the resulting database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/amonks/anisong/db"
	"github.com/amonks/anisong/sigctx"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var usage = strings.TrimSpace(`
usage: anisong $cmd
valid $cmd are 'import', 'progress', 'show'
for help: anisong $cmd -help
set ANISONG_DB to override the database file (default 'anisong.db')
`)

func run() error {
	ctx := sigctx.New()

	dbfile := os.Getenv("ANISONG_DB")
	if dbfile == "" {
		dbfile = "anisong.db"
	}

	db, err := db.Open(dbfile)
	if err != nil {
		return err
	}
	defer db.Close()

	if len(os.Args) < 2 {
		return errors.New(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "import":
		return runImport(ctx, db, args)

	case "progress":
		return progress(ctx, db, args)

	case "show":
		return show(ctx, db, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}
