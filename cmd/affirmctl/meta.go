package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	sqliteadapter "github.com/ericfisherdev/affirm/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/affirm/internal/domain/model"
	"github.com/ericfisherdev/affirm/internal/domain/port/driven"
)

func runMeta(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("meta", flag.ContinueOnError)
	fs.SetOutput(out)
	dbPath := fs.String("db", "", "Path to SQLite database file (default: the environment's db_path)")
	create := fs.Bool("create", false, "With set: fail if the key already exists instead of overwriting")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage: affirmctl meta <subcommand> [options] [args]

Subcommands:
  get <key>            Print the value stored under key
  set <key> <value>    Store value under key
  list                 Print every entry
  delete <key>         Remove key

Options:
`)
		fs.PrintDefaults()
	}

	if len(args) == 0 {
		fs.Usage()
		return fmt.Errorf("subcommand required: get, set, list or delete")
	}

	subcmd := args[0]
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	rest := fs.Args()

	want := map[string]int{"get": 1, "set": 2, "list": 0, "delete": 1}
	n, ok := want[subcmd]
	if !ok {
		fs.Usage()
		return fmt.Errorf("unknown meta subcommand: %s", subcmd)
	}
	if len(rest) != n {
		return fmt.Errorf("meta %s expects %d argument(s), got %d", subcmd, n, len(rest))
	}

	cfg, err := loadConfig(*dbPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := openLocal(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	store := sqliteadapter.Bind(db).Metadata
	return metaCommand(ctx, store, subcmd, rest, *create, out)
}

func metaCommand(ctx context.Context, store driven.MetadataStore, subcmd string, args []string, create bool, out io.Writer) error {
	switch subcmd {
	case "get":
		entry, err := store.Get(ctx, args[0])
		if errors.Is(err, driven.ErrMetadataNotFound) {
			return fmt.Errorf("no metadata entry %q", args[0])
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, entry.Value)
		return err

	case "set":
		entry := model.MetadataEntry{Key: args[0], Value: args[1]}
		if create {
			if err := store.Insert(ctx, entry); err != nil {
				if errors.Is(err, driven.ErrMetadataKeyExists) {
					return fmt.Errorf("metadata entry %q already exists", entry.Key)
				}
				return err
			}
			return nil
		}
		return store.Set(ctx, entry)

	case "list":
		entries, err := store.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			fmt.Fprintf(out, "%s=%s\n", entry.Key, entry.Value)
		}
		return nil

	case "delete":
		err := store.Delete(ctx, args[0])
		if errors.Is(err, driven.ErrMetadataNotFound) {
			return fmt.Errorf("no metadata entry %q", args[0])
		}
		return err
	}

	return fmt.Errorf("unknown meta subcommand: %s", subcmd)
}
