package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"studentrecords/internal/config"
	"studentrecords/internal/database"
	"studentrecords/internal/handler"
	"studentrecords/internal/logger"
	"studentrecords/internal/repository"
	"studentrecords/internal/service"
)

func main() {
	cfg, envLoaded := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if !envLoaded {
		log.Debug("no .env file found, using process environment")
	}

	// Initialize database
	db, err := database.InitDB(cfg, logger.NewGormLogger(log))
	if err != nil {
		log.WithError(err).Fatal("database initialization failed")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.WithError(err).Warn("error closing database")
		}
	}()
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("failed to get database handle")
	}

	// Initialize services and handlers
	studentRepo := repository.NewStudentRepository(db)
	studentService := service.NewStudentService(studentRepo, log.WithField("component", "students"))
	studentHandler := handler.NewStudentHandler(studentService)
	healthHandler := handler.NewHealthHandler(sqlDB)

	router := handler.NewRouter(studentHandler, healthHandler, log, handler.RouterOptions{
		StaticDir:   cfg.StaticDir,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":   srv.Addr,
			"driver": cfg.DBDriver,
		}).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	log.Info("server stopped")
}
