package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/listloop/backend/internal/config"
	"github.com/listloop/backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Server.LogLevel)

	gin.SetMode(cfg.Server.Mode)

	app, err := bootstrap(cfg)
	if err != nil {
		logger.Fatalf("bootstrap failed: %v", err)
	}

	router := gin.New()
	router.Use(logger.GinLogger(), logger.GinRecovery())
	registerRoutes(router, app)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("listloop server listening on %s", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- router.Run(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Errorf("server error: %v", err)
	case sig := <-quit:
		logger.Infof("received signal %s, shutting down", sig)
	}

	app.shutdown()
}
