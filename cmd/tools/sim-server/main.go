// cmd/tools/sim-server/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"proposal-desk/internal/common/config"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/simulator"
	"proposal-desk/internal/simulator/server"
	"proposal-desk/pkg/registry"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (configs/config.yaml when empty)")
	routesPath := flag.String("routes", "", "Path to a route registry file (built-in table when empty)")
	addr := flag.String("addr", "", "Listen address, overrides server.address")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}

	bootLog := logger.New("info", "console", "stderr")
	defer bootLog.Sync()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	reg := registry.Default()
	if *routesPath != "" {
		reg, err = registry.LoadRegistry(*routesPath)
		if err == nil {
			err = reg.Validate()
		}
		if err != nil {
			zapLog.Fatal("route registry load failed", zap.String("path", *routesPath), zap.Error(err))
		}
	}

	opts := simulator.OptionsFromConfig(cfg.Simulator)
	opts.Registry = reg
	opts.Logger = log.WithFields(map[string]interface{}{"component": "simulator"})
	backend := simulator.New(opts)

	srv := server.New(backend, reg, cfg.Server, log.WithFields(map[string]interface{}{"component": "server"}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		zapLog.Error("simulated API stopped with error", zap.Error(err))
		os.Exit(1)
	}
	zapLog.Info("simulated API stopped")
}
