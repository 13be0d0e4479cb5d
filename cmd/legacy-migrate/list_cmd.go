package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iota-uz/legacy-migrate/modules/migration/services/importers"
)

func newListImportersCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list-importers",
		Short: "List importers in run order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				for _, e := range importers.Registry() {
					if err := writeJSONLine(cmd.OutOrStdout(), map[string]any{"key": e.Key, "phase": e.Phase, "description": e.Description}); err != nil {
						return err
					}
				}
				return nil
			}
			return printImporters(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "One JSON line per importer")
	return cmd
}

func printImporters(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPHASE\tKEY\tDESCRIPTION")
	for i, e := range importers.Registry() {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", i+1, e.Phase, e.Key, e.Description)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Examples:")
	fmt.Fprintln(tw, "  legacy-migrate import --start-at project\tstart from project onwards")
	fmt.Fprintln(tw, "  legacy-migrate import --stop-at partner\trun up to and including partner")
	fmt.Fprintln(tw, "  legacy-migrate import --only partner\trun only partner")
	if err := tw.Flush(); err != nil {
		return withCode(exitWrite, err)
	}
	return nil
}
