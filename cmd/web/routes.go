package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hoodion/prefiction-2/internal/catalog"
	"github.com/hoodion/prefiction-2/internal/config"
	"github.com/hoodion/prefiction-2/internal/httpserver"
	"github.com/hoodion/prefiction-2/internal/view"
)

func newRoutesCommand() *cobra.Command {
	var withHTTP bool
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print page keys and their URL paths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := catalog.Load()
			if err != nil {
				return err
			}
			if err := writePages(cmd.OutOrStdout(), set); err != nil {
				return err
			}
			if !withHTTP {
				return nil
			}
			cfg, err := config.Load(context.Background(), config.WithoutSystemEnv(), config.WithEnvFile(""))
			if err != nil {
				return err
			}
			srv, err := httpserver.New(cfg, httpserver.Deps{Catalogs: &set})
			if err != nil {
				return err
			}
			routes, err := httpserver.RouteTable(srv.Handler)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			for _, r := range routes {
				fmt.Fprintln(cmd.OutOrStdout(), r)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withHTTP, "http", false, "also print the HTTP route table")
	return cmd
}

func writePages(w io.Writer, set catalog.Set) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tPATH")
	for _, p := range view.TopLevel {
		fmt.Fprintf(tw, "%s\t%s\n", p.Key(), p.Path())
	}
	details := []struct {
		kind catalog.Kind
		page func(string) view.Page
	}{
		{catalog.KindServices, view.ServiceDetail},
		{catalog.KindAudience, view.AudienceDetail},
		{catalog.KindProducts, view.ProductDetail},
	}
	for _, d := range details {
		for _, e := range set.ByKind(d.kind).Entries() {
			p := d.page(e.ID)
			fmt.Fprintf(tw, "%s\t%s\n", p.Key(), p.Path())
		}
	}
	return tw.Flush()
}
