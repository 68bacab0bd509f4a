// Package cronjob runs the monthly auto-generation sweep on a schedule
// (SPEC_FULL.md §6.3), grounded on the pack's robfig/cron-based scheduler
// managers rather than any teacher code (the teacher is request-driven only).
package cronjob

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/nightshift-health/shiftplan/internal/model"
	"github.com/nightshift-health/shiftplan/internal/service"
)

// serviceLister is the minimal dependency the daemon needs to enumerate the
// tenants and active services it auto-generates schedules for.
type serviceLister interface {
	ListDistinctTenantIDs(ctx context.Context) ([]uuid.UUID, error)
	ListActiveByTenant(ctx context.Context, tenantID uuid.UUID) ([]model.Service, error)
}

// Daemon periodically generates next month's draft schedule for every active
// service of every tenant with at least one active service.
type Daemon struct {
	cron       *cron.Cron
	schedules  *service.ScheduleService
	services   serviceLister
	jobTimeout time.Duration
}

// NewDaemon builds a Daemon that will, on each firing, discover every tenant
// with an active service and auto-generate next month's schedule for each.
func NewDaemon(schedules *service.ScheduleService, services serviceLister) *Daemon {
	return &Daemon{
		cron:       cron.New(),
		schedules:  schedules,
		services:   services,
		jobTimeout: 10 * time.Minute,
	}
}

// Start registers the generation sweep on spec and starts the cron scheduler.
// It returns an error if spec is not a valid 5-field cron expression.
func (d *Daemon) Start(spec string) error {
	_, err := d.cron.AddFunc(spec, d.runSweep)
	if err != nil {
		return err
	}
	d.cron.Start()
	return nil
}

// Stop halts the scheduler, waiting for any in-flight sweep to finish.
func (d *Daemon) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
}

func (d *Daemon) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), d.jobTimeout)
	defer cancel()

	nextYear, nextMonth := nextMonthFrom(time.Now())

	tenantIDs, err := d.services.ListDistinctTenantIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("cronjob: failed to list tenants")
		return
	}

	for _, tenantID := range tenantIDs {
		services, err := d.services.ListActiveByTenant(ctx, tenantID)
		if err != nil {
			log.Error().Err(err).Str("tenant_id", tenantID.String()).Msg("cronjob: failed to list active services")
			continue
		}
		for _, svc := range services {
			d.generateOne(ctx, tenantID, svc, nextYear, nextMonth)
		}
	}
}

func (d *Daemon) generateOne(ctx context.Context, tenantID uuid.UUID, svc model.Service, year, month int) {
	_, err := d.schedules.Generate(ctx, service.GenerateInput{
		TenantID:  tenantID,
		ServiceID: svc.ID,
		Year:      year,
		Month:     month,
	})
	if err != nil {
		log.Error().Err(err).
			Str("tenant_id", tenantID.String()).
			Str("service_id", svc.ID.String()).
			Int("year", year).Int("month", month).
			Msg("cronjob: auto-generation failed")
		return
	}
	log.Info().
		Str("tenant_id", tenantID.String()).
		Str("service_id", svc.ID.String()).
		Int("year", year).Int("month", month).
		Msg("cronjob: auto-generated draft schedule")
}

func nextMonthFrom(t time.Time) (int, int) {
	year, month := t.Year(), int(t.Month())+1
	if month > 12 {
		month = 1
		year++
	}
	return year, month
}
