package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/nightshift-health/shiftplan/internal/config"
	"github.com/nightshift-health/shiftplan/internal/repository"
)

func newShowCmd() *cobra.Command {
	var tenantID, serviceID string
	var year, month int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the draft/published/archived schedules for a period",
		RunE: func(cmd *cobra.Command, args []string) error {
			tid, err := uuid.Parse(tenantID)
			if err != nil {
				return fmt.Errorf("invalid --tenant: %w", err)
			}
			sid, err := uuid.Parse(serviceID)
			if err != nil {
				return fmt.Errorf("invalid --service: %w", err)
			}

			cfg := config.Load()
			db, err := repository.NewDB(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() { _ = db.Close() }()

			scheduleSvc := buildScheduleService(cfg, db)

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			schedules, err := scheduleSvc.ListByPeriod(ctx, tid, sid, year, month)
			if err != nil {
				fatalf("failed to list schedules: %v", err)
				return nil
			}
			if len(schedules) == 0 {
				fmt.Println("No schedules found for this period.")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"ID", "Version", "Status", "Score"})
			for _, s := range schedules {
				table.Append([]string{
					s.ID.String(), fmt.Sprintf("%d", s.Version), string(s.Status), fmt.Sprintf("%.1f", s.Score),
				})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant ID (required)")
	cmd.Flags().StringVar(&serviceID, "service", "", "service ID (required)")
	cmd.Flags().IntVar(&year, "year", time.Now().Year(), "target year")
	cmd.Flags().IntVar(&month, "month", int(time.Now().Month()), "target month (1-12)")
	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("service")

	return cmd
}
