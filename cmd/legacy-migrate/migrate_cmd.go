package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/persistence"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the target schema used by the db strategy",
	}
	cmd.AddCommand(newMigrateUpCmd())
	cmd.AddCommand(newMigrateStatusCmd())
	return cmd
}

func newMigrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply pending target schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer cfg.Unload()
			db, err := connectTarget(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			applied, err := persistence.Migrate(cmd.Context(), db)
			if err != nil {
				return withCode(exitWrite, err)
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			}
			for _, v := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %d\n", v)
			}
			return nil
		},
	}
}

func newMigrateStatusCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show target schema migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer cfg.Unload()
			db, err := connectTarget(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			st, err := persistence.Status(cmd.Context(), db)
			if err != nil {
				return withCode(exitConnect, err)
			}
			for _, s := range st {
				if asJSON {
					if err := writeJSONLine(cmd.OutOrStdout(), s); err != nil {
						return err
					}
					continue
				}
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %d %s\n", state, s.Version, s.Path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "One JSON line per migration")
	return cmd
}
