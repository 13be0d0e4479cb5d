package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/iota-uz/legacy-migrate/pkg/configuration"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the legacy and target connections",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer cfg.Unload()
			return runValidate(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
}

type check struct {
	name string
	run  func(context.Context, *configuration.Configuration) error
}

var checks = []check{
	{"Legacy database", func(ctx context.Context, cfg *configuration.Configuration) error {
		db, err := connectLegacy(ctx, cfg)
		if err != nil {
			return err
		}
		return db.Close()
	}},
	{"Target", func(ctx context.Context, cfg *configuration.Configuration) error {
		_, release, err := openStrategy(ctx, cfg)
		if err != nil {
			return err
		}
		release()
		return nil
	}},
}

func runValidate(ctx context.Context, w io.Writer, cfg *configuration.Configuration) error {
	pterm.Fprintln(w, pterm.Cyan("Validating connections..."))
	failed := 0
	for _, c := range checks {
		if err := c.run(ctx, cfg); err != nil {
			failed++
			pterm.Fprintln(w, pterm.Red(fmt.Sprintf("✗ %s connection failed: %v", c.name, err)))
			continue
		}
		pterm.Fprintln(w, pterm.Green(fmt.Sprintf("✓ %s connection successful", c.name)))
	}
	if failed > 0 {
		return withCode(exitConnect, fmt.Errorf("validation failed: %d of %d connections unavailable", failed, len(checks)))
	}
	pterm.Fprintln(w, pterm.Green("All connections validated successfully."))
	return nil
}
