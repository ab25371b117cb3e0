package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/funstay/leadsync/internal/config"
	"github.com/funstay/leadsync/internal/handlers"
	"github.com/funstay/leadsync/internal/repository"
	"github.com/funstay/leadsync/internal/services"
	xhttp "github.com/funstay/leadsync/pkg/http"
	"github.com/funstay/leadsync/pkg/logger"
	"github.com/funstay/leadsync/pkg/pg"
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

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

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

	leadRepo := repository.NewLeadRepository(db)
	healthService := services.NewHealthService()

	enquiryHandler := handlers.NewEnquiryHandler(leadRepo)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterEnquiryRoutes(g, enquiryHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
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
