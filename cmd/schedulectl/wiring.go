package main

import (
	"github.com/redis/go-redis/v9"

	"github.com/nightshift-health/shiftplan/internal/config"
	"github.com/nightshift-health/shiftplan/internal/repository"
	"github.com/nightshift-health/shiftplan/internal/service"
)

func mustRedisClient(redisURL string) *redis.Client {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		fatalf("invalid REDIS_URL: %v", err)
	}
	return redis.NewClient(opts)
}

// buildScheduleService wires a ScheduleService against real repositories and
// the Redis distributed lock, the same dependency graph cmd/server uses.
func buildScheduleService(cfg *config.Config, db *repository.DB) *service.ScheduleService {
	scheduleRepo := repository.NewScheduleRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	holidayRepo := repository.NewHolidayRepository(db)

	rdb := mustRedisClient(cfg.RedisURL)
	lock := service.NewGenerationLock(rdb)

	return service.NewScheduleService(
		scheduleRepo, employeeRepo, serviceRepo, holidayRepo, lock, cfg.GenerationLockTTL, nil,
	)
}
