package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCommand builds a fresh command tree so tests can run commands in isolation.
func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "prefiction-web",
		Short: "PREFICTION marketing site",
		Long: `Serve the PREFICTION marketing site and inspect the catalogs it is built from.

Configuration is read from PREFICTION_WEB_* environment variables and an
optional .env file in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCommand(),
		newCatalogCommand(),
		newRoutesCommand(),
	)
	return root
}
