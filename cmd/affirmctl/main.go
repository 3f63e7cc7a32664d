// Command affirmctl manages the affirm database: schema migrations for the
// local sqlite file or the remote D1 database, and metadata entries.
package main

import (
	"fmt"
	"io"
	"os"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/affirm/internal/application"
	"github.com/ericfisherdev/affirm/internal/config"
)

var commands = map[string]func(args []string, out io.Writer) error{
	"migrate": runMigrate,
	"meta":    runMeta,
	"version": runVersion,
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `affirmctl - affirm database tooling (version %s)

Usage:
  affirmctl <command> [options]

Commands:
  migrate    Show or apply schema migrations (local sqlite or remote D1)
  meta       Read and write metadata entries (get, set, list, delete)
  version    Print the build version

Environment:
  AFFIRM_ENV               deployment environment (development, staging, production)
  CLOUDFLARE_ACCOUNT_ID    remote migrations only
  CLOUDFLARE_DATABASE_ID   remote migrations only (defaults to deploy.yaml database_id)
  CLOUDFLARE_D1_TOKEN      remote migrations only

Run 'affirmctl <command> -h' for command-specific help.
`, application.BuildVersion())
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		usage(os.Stdout)
		os.Exit(0)
	}

	fn, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		os.Exit(1)
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := fn(os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runVersion(_ []string, out io.Writer) error {
	_, err := fmt.Fprintln(out, application.BuildVersion())
	return err
}
