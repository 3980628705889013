package cmd

import (
	"context"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"trading-assistant/internal/delivery/http"
	"trading-assistant/internal/repository"
	"trading-assistant/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the HTTP API and the periodic dashboard refresh",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo := repository.NewRepository(appDep.cfg, appDep.log, appDep.limiters)
	services := service.NewService(appDep.cfg, appDep.log, repo, appDep.cache)
	httpHandler := http.NewHttpAPIHandler(ctx, appDep.cfg, appDep.echo, appDep.validator, services)

	var refresher *DashboardRefresher
	if appDep.cfg.Refresh.Enabled {
		refresher, err = NewDashboardRefresher(appDep.log, services.DashboardService, appDep.cfg.Refresh.Spec, appDep.cfg.Refresh.Timeout)
		if err != nil {
			log.Fatalf("Failed to create dashboard refresher: %v", err)
		}
		refresher.Start()
	}

	apiServer := NewHTTPServer(ctx, appDep, httpHandler)
	go func() {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			appDep.log.Error("Failed to start HTTP server", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	if refresher != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		refresher.Stop(stopCtx)
		cancel()
	}

	if err := apiServer.Stop(); err != nil {
		log.Printf("Failed to stop HTTP server: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
