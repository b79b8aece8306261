// cmd/proposal-desk/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"proposal-desk/internal/common/config"
	"proposal-desk/internal/common/logger"
	"proposal-desk/internal/render"
	"proposal-desk/internal/views/action"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (configs/config.yaml when empty)")
	mock := flag.Bool("mock", false, "Use the simulated backend regardless of configuration")
	flag.Usage = func() { printUsage(os.Stderr) }
	flag.Parse()

	if flag.NArg() == 0 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

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
	if *mock {
		cfg.API.UseMockAPI = true
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := NewApp(ctx, AppOptions{
		Config:   cfg,
		Logger:   log,
		Out:      os.Stdout,
		Renderer: render.ForStdout(),
	})
	if err != nil {
		zapLog.Fatal("startup failed", zap.Error(err))
	}

	code := run(ctx, app, flag.Arg(0), flag.Args()[1:])
	if err := app.Close(); err != nil {
		zapLog.Warn("shutdown failed", zap.Error(err))
	}
	zapLog.Sync()
	os.Exit(code)
}

func run(ctx context.Context, app *App, name string, args []string) int {
	if name == "shell" {
		shell := NewShell(app)
		defer shell.Close()
		if err := shell.Run(ctx); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	if err := app.Dispatch(ctx, name, args); err != nil {
		fmt.Fprintln(os.Stderr, action.Message(err))
		return 1
	}
	return 0
}
