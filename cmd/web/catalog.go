package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hoodion/prefiction-2/internal/catalog"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the service, audience and product catalogs",
	}
	cmd.AddCommand(
		newCatalogValidateCommand(),
		newCatalogListCommand(),
		newCatalogFilterCommand(),
	)
	return cmd
}

func newCatalogValidateCommand() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate catalog data",
		Long:  "Validate the compiled-in catalogs, or the data/*.yaml files below --dir.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := loadCatalogs(dir)
			if err != nil {
				var verr *catalog.ValidationError
				if errors.As(err, &verr) {
					for _, p := range verr.Problems() {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", verr.Kind, p)
					}
				}
				return err
			}
			for _, kind := range catalog.Kinds {
				fmt.Fprintf(cmd.OutOrStdout(), "ok %-9s %d entries\n", kind, set.ByKind(kind).Len())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory containing data/services.yaml, data/audience.yaml and data/products.yaml")
	return cmd
}

func newCatalogListCommand() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := catalog.Load()
			if err != nil {
				return err
			}
			c := set.ByKind(catalog.Kind(kind))
			if c == nil {
				return fmt.Errorf("unknown catalog kind %q (want services, audience or products)", kind)
			}
			return writeEntries(cmd.OutOrStdout(), c.Entries())
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(catalog.KindServices), "catalog to list: services, audience or products")
	return cmd
}

func newCatalogFilterCommand() *cobra.Command {
	var query, category string
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Run the services search the listing page uses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := catalog.Load()
			if err != nil {
				return err
			}
			if category == "" {
				category = catalog.CategoryAll
			}
			return writeEntries(cmd.OutOrStdout(), catalog.Filter(set.Services.Entries(), query, category))
		},
	}
	cmd.Flags().StringVar(&query, "query", "", "free-text query matched against title and descriptions")
	cmd.Flags().StringVar(&category, "category", catalog.CategoryAll, "category token matched against id and title")
	return cmd
}

func loadCatalogs(dir string) (catalog.Set, error) {
	if dir == "" {
		return catalog.Load()
	}
	return catalog.LoadFS(os.DirFS(dir))
}

func writeEntries(w io.Writer, entries []catalog.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\n", e.ID, e.Title)
	}
	return tw.Flush()
}
