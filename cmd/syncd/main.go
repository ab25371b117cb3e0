package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/funstay/leadsync/internal/config"
	"github.com/funstay/leadsync/internal/events"
	"github.com/funstay/leadsync/internal/repository"
	"github.com/funstay/leadsync/internal/services"
	"github.com/funstay/leadsync/internal/sheets"
	syncer "github.com/funstay/leadsync/internal/sync"
	"github.com/funstay/leadsync/pkg/logger"
	"github.com/funstay/leadsync/pkg/pg"
	"github.com/funstay/leadsync/pkg/prom"
	"github.com/funstay/leadsync/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	readConf := pg.Config{
		User:         config.Get().PostgresReadUser,
		Host:         config.Get().PostgresReadHost,
		Port:         config.Get().PostgresReadPort,
		Password:     config.Get().PostgresReadPassword,
		Database:     config.Get().PostgresReadDatabase,
		MaxOpenConns: config.Get().PostgresMaxOpenConns,
		MaxIdleConns: config.Get().PostgresMaxIdleConns,
	}
	writeConf := pg.Config{
		User:         config.Get().PostgresWriteUser,
		Host:         config.Get().PostgresWriteHost,
		Port:         config.Get().PostgresWritePort,
		Password:     config.Get().PostgresWritePassword,
		Database:     config.Get().PostgresWriteDatabase,
		MaxOpenConns: config.Get().PostgresMaxOpenConns,
		MaxIdleConns: config.Get().PostgresMaxIdleConns,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	sheetsClient, err := sheets.NewClient(context.Background(), sheets.Config{
		SpreadsheetID: config.Get().SpreadsheetID,
		Range:         config.Get().SheetRange,
		ClientEmail:   config.Get().GoogleClientEmail,
		PrivateKey:    config.Get().GooglePrivateKey,
		Endpoint:      config.Get().SheetsEndpoint,
		FetchTimeout:  config.Get().SheetsFetchTimeout,
	})
	if err != nil {
		logger.Error("failed to create sheets client", "error", err)
		return
	}

	publisher := events.NewPublisher(redisAdap, events.Config{
		EventStream:      config.Get().EventStream,
		DeadLetterStream: config.Get().DeadLetterStream,
		MaxLen:           config.Get().EventStreamMaxLen,
	})

	customerRepo := repository.NewCustomerRepository(db)
	leadRepo := repository.NewLeadRepository(db)

	resolver := services.NewCustomerResolver(customerRepo)
	upserter := services.NewLeadUpserter(leadRepo, publisher)

	orch := syncer.NewOrchestrator(sheetsClient, resolver, upserter, publisher, syncer.Config{
		Sources:       config.Get().Sources(),
		RunTimeout:    config.Get().SyncRunTimeout,
		RowMaxRetries: config.Get().SyncRowMaxRetries,
	})

	sched, err := syncer.NewScheduler(orch, config.Get().SyncIntervalMinutes)
	if err != nil {
		logger.Error("failed to create scheduler", "error", err)
		return
	}

	var hostname string
	hostname, err = os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	err = prom.Create(hostname, config.Get().AppEnv, config.Get().PromNamespace)
	if err != nil {
		logger.Error("failed to create prometheus metrics", "error", err)
		return
	}

	go func() {
		prom.ListenAndServer(config.Get().MetricsListenAddr, "/metrics")
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	sched.Start()
	logger.Info("lead sync daemon started",
		"interval_minutes", config.Get().SyncIntervalMinutes,
		"sources", len(config.Get().Sources()),
	)

	<-c
	logger.Info("shutting down, waiting for in-flight run")
	sched.Stop()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
