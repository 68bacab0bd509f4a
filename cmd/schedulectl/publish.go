package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nightshift-health/shiftplan/internal/config"
	"github.com/nightshift-health/shiftplan/internal/repository"
)

func newPublishCmd() *cobra.Command {
	var draftID string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Promote a draft schedule to published",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(draftID)
			if err != nil {
				return fmt.Errorf("invalid --draft: %w", err)
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

			published, err := scheduleSvc.Publish(ctx, id)
			if err != nil {
				fatalf("publish failed: %v", err)
				return nil
			}

			printSuccess("Published schedule %s (version %d)", published.ID, published.Version)
			return nil
		},
	}

	cmd.Flags().StringVar(&draftID, "draft", "", "draft schedule ID (required)")
	_ = cmd.MarkFlagRequired("draft")

	return cmd
}
