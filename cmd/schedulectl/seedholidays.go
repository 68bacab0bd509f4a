package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nightshift-health/shiftplan/internal/config"
	"github.com/nightshift-health/shiftplan/internal/holidaycal"
	"github.com/nightshift-health/shiftplan/internal/repository"
)

func newSeedHolidaysCmd() *cobra.Command {
	var tenantID string
	var year int
	var stateCode string

	cmd := &cobra.Command{
		Use:   "seed-holidays",
		Short: "Seed a tenant's holiday calendar for a year from a German Bundesland's public holidays",
		RunE: func(cmd *cobra.Command, args []string) error {
			tid, err := uuid.Parse(tenantID)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			state, err := holidaycal.ParseState(stateCode)
			if err != nil {
				return fmt.Errorf("invalid --state: %w", err)
			}
			defs, err := holidaycal.Generate(year, state)
			if err != nil {
				return fmt.Errorf("failed to generate holiday calendar: %w", err)
			}

			cfg := config.Load()
			db, err := repository.NewDB(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() { _ = db.Close() }()

			holidayRepo := repository.NewHolidayRepository(db)
			repoDefs := make([]repository.HolidayDefinition, len(defs))
			for i, d := range defs {
				repoDefs[i] = repository.HolidayDefinition{Date: d.Date, Name: d.Name}
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := holidayRepo.SeedYear(ctx, tid, repoDefs); err != nil {
				fatalf("seeding failed: %v", err)
				return nil
			}

			printSuccess("Seeded %d holidays for tenant %s, year %d (%s)", len(repoDefs), tid, year, state)
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant ID (required)")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "calendar year to seed")
	cmd.Flags().StringVar(&stateCode, "state", "", "Bundesland code, e.g. BY, NW, BE (required)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("state")

	return cmd
}
